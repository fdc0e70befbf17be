package model

// ActionType tags the quick-reply affordances sent to the chat client.
type ActionType string

const (
	// ActionReply resubmits Value verbatim as the next user message.
	ActionReply ActionType = "reply"
	// ActionSetProfile lets the client apply Patch to its profile view directly.
	ActionSetProfile ActionType = "set_profile"
	ActionOpenProduct    ActionType = "open_product"
	ActionOpenCollection ActionType = "open_collection"
)

// Action is a tagged union; only the fields for its Type are populated.
// Actions are constructed fresh each turn and replace any prior turn's list.
type Action struct {
	Type  ActionType        `json:"type"`
	Label string            `json:"label"`
	Value string            `json:"value,omitempty"`
	Patch map[string]string `json:"patch,omitempty"`
	URL   string            `json:"url,omitempty"`
}

func ReplyAction(label, value string) Action {
	return Action{Type: ActionReply, Label: label, Value: value}
}

func SetProfileAction(label string, patch map[string]string) Action {
	return Action{Type: ActionSetProfile, Label: label, Patch: patch}
}

func OpenProductAction(label, url string) Action {
	return Action{Type: ActionOpenProduct, Label: label, URL: url}
}

func OpenCollectionAction(label, url string) Action {
	return Action{Type: ActionOpenCollection, Label: label, URL: url}
}
