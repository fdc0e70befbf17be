package nodes

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/compose"

	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

const (
	// vagueMessageLimit: product/other messages shorter than this with no key
	// profile info must be clarified.
	vagueMessageLimit = 25
	// policyMessageLimit: policy questions shorter than this must be clarified.
	policyMessageLimit = 15
)

// WantsOccasionSplit reports whether the guided gift-vs-keepsake flow
// applies: the user gave a budget but no occasion yet. Both the decider and
// the clarify node branch on this single helper.
func WantsOccasionSplit(profile model.Profile) bool {
	return profile.Has(model.ProfileKeyBudget) && !profile.Has(model.ProfileKeyOccasion)
}

// CheckClarify decides whether the turn pauses for a clarifying question.
func CheckClarify(ctx context.Context, state *model.TurnState) (*model.TurnState, error) {
	msg := strings.TrimSpace(state.UserMessage)
	msgLen := utf8.RuneCountInString(msg)

	state.NeedsClarification = false
	state.ClarificationQuestion = ""

	switch state.Intent {
	case model.IntentProduct, model.IntentOther:
		if WantsOccasionSplit(state.Profile) {
			state.NeedsClarification = true
			break
		}
		hasKeyInfo := state.Profile.Has(model.ProfileKeyBudget) ||
			state.Profile.Has(model.ProfileKeyStyle) ||
			state.Profile.Has(model.ProfileKeyOccasion) ||
			state.Profile.Has(model.ProfileKeyDeadline)
		if msgLen < vagueMessageLimit && !hasKeyInfo {
			state.NeedsClarification = true
		}

	case model.IntentCustomization:
		if !state.Profile.Has(model.ProfileKeyEngravingLanguage) ||
			!state.Profile.Has(model.ProfileKeyEngravingText) {
			state.NeedsClarification = true
		}

	case model.IntentPolicy:
		if msgLen < policyMessageLimit {
			state.NeedsClarification = true
		}
	}

	logx.Debug().
		Str("thread_id", state.ThreadID).
		Str("intent", state.Intent.String()).
		Bool("needs_clarification", state.NeedsClarification).
		Msg("clarification decision")
	return state, nil
}

// NewCheckClarifyNode creates the CheckClarify node.
func NewCheckClarifyNode() *compose.Lambda {
	return compose.InvokableLambda(CheckClarify)
}

// NewClarifyCondition routes the turn to the clarify node or the answer node
// based on the decider's verdict.
func NewClarifyCondition() func(context.Context, *model.TurnState) (string, error) {
	return func(ctx context.Context, state *model.TurnState) (string, error) {
		if state.NeedsClarification {
			return NodeClarify, nil
		}
		return NodeAnswer, nil
	}
}
