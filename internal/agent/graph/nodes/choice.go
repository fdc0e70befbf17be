package nodes

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

// choicePrefix is the reserved control-message convention used by quick-reply
// buttons. It must never surface in user-facing text.
const choicePrefix = "#choice:occasion="

var validOccasions = map[string]struct{}{
	"gift":  {},
	"self":  {},
	"other": {},
}

// ApplyChoice consumes a pending quick-reply selection. A recognised control
// token sets the occasion directly (bypassing extraction) and clears the
// message so later stages never treat the token as natural language.
func ApplyChoice(ctx context.Context, state *model.TurnState) (*model.TurnState, error) {
	msg := strings.ToLower(strings.TrimSpace(state.UserMessage))
	if !strings.HasPrefix(msg, choicePrefix) {
		return state, nil
	}

	val := strings.TrimSpace(strings.TrimPrefix(msg, choicePrefix))
	if _, ok := validOccasions[val]; ok {
		state.Profile[model.ProfileKeyOccasion] = val
		logx.Debug().Str("thread_id", state.ThreadID).Str("occasion", val).Msg("applied occasion choice")
	}

	state.UserMessage = ""
	return state, nil
}

// NewApplyChoiceNode creates the ApplyChoice node.
func NewApplyChoiceNode() *compose.Lambda {
	return compose.InvokableLambda(ApplyChoice)
}
