package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/ff-agent/server/internal/agent/graph/prompts"
	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

// Canonical quick-reply values; the client resubmits these verbatim as the
// next user message.
const (
	GiftReplyValue     = "It's a gift."
	KeepsakeReplyValue = "For myself / personal keepsake."
)

func containsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}

// Clarify produces the clarifying question and quick-reply actions for a
// turn the decider paused. The budget-without-occasion fast path emits a
// fixed bilingual gift-vs-keepsake question; anything else delegates to the
// completion model and attaches set_profile actions for the two occasions.
// Either way the answer is cleared and the actions replace any prior list.
func Clarify(ctx context.Context, completer model.Completer, temps model.TemperatureConfig, systemContext string, state *model.TurnState) (*model.TurnState, error) {
	if WantsOccasionSplit(state.Profile) {
		if containsCJK(state.UserMessage) {
			state.ClarificationQuestion = "这是送礼（Gift）还是给自己留作纪念（Personal keepsake）呢？"
			state.Actions = []model.Action{
				model.ReplyAction("🎁 送礼 Gift", GiftReplyValue),
				model.ReplyAction("🐾 自用纪念 Personal keepsake", KeepsakeReplyValue),
			}
		} else {
			state.ClarificationQuestion = "Is this for a gift, or for your own keepsake?"
			state.Actions = []model.Action{
				model.ReplyAction("🎁 Gift", GiftReplyValue),
				model.ReplyAction("🐾 Personal keepsake", KeepsakeReplyValue),
			}
		}
		state.Answer = ""

		logx.Debug().Str("thread_id", state.ThreadID).Msg("clarify fast path: gift vs keepsake")
		return state, nil
	}

	prompt, err := prompts.RenderClarify(ctx, systemContext, state.Intent, state.Profile, state.UserMessage)
	if err != nil {
		return nil, err
	}

	// Generation failures are not recovered here; they propagate to the
	// orchestrator boundary.
	resp, err := completer.Complete(ctx, prompt, temps.Clarify)
	if err != nil {
		return nil, err
	}

	state.ClarificationQuestion = resp
	state.Answer = ""
	state.Actions = []model.Action{
		model.SetProfileAction("🎁 Gift", map[string]string{model.ProfileKeyOccasion: "gift"}),
		model.SetProfileAction("🐾 Personal keepsake", map[string]string{model.ProfileKeyOccasion: "self"}),
	}
	return state, nil
}

// NewClarifyNode creates the Clarify node.
func NewClarifyNode(completer model.Completer, temps model.TemperatureConfig, systemContext string) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *model.TurnState) (*model.TurnState, error) {
		return Clarify(ctx, completer, temps, systemContext, state)
	})
}
