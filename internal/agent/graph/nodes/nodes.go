package nodes

// Graph node names. One decision point: after check_clarify the turn goes to
// exactly one of clarify or answer.
const (
	NodeRouter         = "router"
	NodeApplyChoice    = "apply_choice"
	NodeExtractProfile = "extract_profile"
	NodeCheckClarify   = "check_clarify"
	NodeClarify        = "clarify"
	NodeAnswer         = "answer"
)
