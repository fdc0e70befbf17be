package nodes

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

// Keyword lists for lightweight intent routing, first match wins in the
// order policy > customization > product. English matching is lower-cased
// substring; Chinese matching is substring on the raw message.
var (
	policyKeywords        = []string{"shipping", "return", "refund", "policy", "exchange", "warranty"}
	customizationKeywords = []string{"custom", "personal", "engrave", "engraving", "text", "wording", "message"}
	productKeywords       = []string{"price", "size", "material", "order", "product", "box", "recommend", "suggest", "gift"}

	policyKeywordsCN        = []string{"运费", "退换", "退款", "政策", "质保"}
	customizationKeywordsCN = []string{"定制", "刻字", "文字", "个性化"}
	productKeywordsCN       = []string{"推荐", "送人", "礼物", "价格", "尺寸", "材质", "下单", "产品", "盒子"}
)

func containsAny(haystack string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}

// ClassifyIntent routes a raw message to one of the four intents.
func ClassifyIntent(msg string) model.Intent {
	lower := strings.ToLower(msg)

	switch {
	case containsAny(lower, policyKeywords):
		return model.IntentPolicy
	case containsAny(lower, customizationKeywords):
		return model.IntentCustomization
	case containsAny(lower, productKeywords):
		return model.IntentProduct
	case containsAny(msg, policyKeywordsCN):
		return model.IntentPolicy
	case containsAny(msg, customizationKeywordsCN):
		return model.IntentCustomization
	case containsAny(msg, productKeywordsCN):
		return model.IntentProduct
	default:
		return model.IntentOther
	}
}

// RouteTurn opens the turn: it loads the thread's persisted profile, builds
// a fully initialised TurnState (every downstream node may assume all fields
// exist) and classifies the intent.
func RouteTurn(ctx context.Context, repo model.ProfileRepository, in model.TurnInput) (*model.TurnState, error) {
	profile, err := repo.Load(ctx, in.ThreadID)
	if err != nil {
		return nil, err
	}

	state := model.NewTurnState(in, profile)
	state.Intent = ClassifyIntent(in.UserMessage)

	logx.Debug().
		Str("thread_id", state.ThreadID).
		Str("intent", state.Intent.String()).
		Int("profile_keys", len(state.Profile)).
		Msg("routed turn")
	return state, nil
}

// NewRouterNode creates the Router node.
func NewRouterNode(repo model.ProfileRepository) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.TurnInput) (*model.TurnState, error) {
		return RouteTurn(ctx, repo, in)
	})
}
