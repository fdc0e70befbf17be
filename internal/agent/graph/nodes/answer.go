package nodes

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/ff-agent/server/internal/agent/budget"
	"github.com/ff-agent/server/internal/agent/graph/prompts"
	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

// Fixed deep links used by the binary-choice actions. The store currently
// sells exactly these two personalised products.
const (
	urnProductURL      = "https://foreverfurever.org/products/travelstar-companion-portable-pet-urn-for-travel-hand-engraved-memorial-for-ashes-personalized-keepsake-for-dogs-cats"
	keepsakeProductURL = "https://foreverfurever.org/products/personalized-pet-night-light-custom-relief-night-light-v2-0"
	allProductsURL     = "https://foreverfurever.org/collections/all"
)

const (
	productLabelLimit    = 40
	groundingWithinLimit = 3
	groundingOverLimit   = 1

	keywordLimit  = 6
	fallbackLimit = 12
)

var (
	memorialSignals     = []string{"ash", "ashes", "urn", "memorial", "tribute"}
	personalizedSignals = []string{"engrave", "engraving", "custom", "personal", "personalize", "text", "message"}
)

// SearchKeyword picks the catalog keyword from the message plus serialized
// profile: "memorial" beats "personalized"; no signal at all means an empty
// keyword, which makes the catalog fall back to its newest items.
func SearchKeyword(msg string, profile model.Profile) string {
	b, _ := json.Marshal(profile)
	haystack := strings.ToLower(msg + " " + string(b))

	if containsAny(haystack, memorialSignals) {
		return "memorial"
	}
	if containsAny(haystack, personalizedSignals) {
		return "personalized"
	}
	return ""
}

// groundingList bounds the products handed to the generation call: at most 3
// within budget followed by at most 1 over budget.
func groundingList(within, over []model.Product) []model.Product {
	out := make([]model.Product, 0, groundingWithinLimit+groundingOverLimit)
	for i := 0; i < len(within) && i < groundingWithinLimit; i++ {
		out = append(out, within[i])
	}
	for i := 0; i < len(over) && i < groundingOverLimit; i++ {
		out = append(out, over[i])
	}
	return out
}

func truncateLabel(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// DeriveActions builds the turn's UI actions from the generated answer, the
// user message and the grounding list. A detected urn-vs-keepsake choice
// yields the two fixed product links; otherwise up to two links from the
// grounding list. A browse-all-collection action is always appended.
func DeriveActions(answer, userMessage string, grounding []model.Product) []model.Action {
	content := strings.ToLower(answer)
	user := strings.ToLower(userMessage)

	needsChoice := (strings.Contains(content, "are you looking for") &&
		(strings.Contains(content, "urn") || strings.Contains(content, "keepsake") || strings.Contains(content, "night light"))) ||
		(strings.Contains(content, "urn") && strings.Contains(content, "night light")) ||
		(strings.Contains(content, "urn") && strings.Contains(content, "keepsake")) ||
		((strings.Contains(user, "urn") || strings.Contains(user, "ashes")) &&
			(strings.Contains(user, "under $") || strings.Contains(user, "budget") || strings.Contains(user, "cheap")))

	actions := []model.Action{}
	if needsChoice {
		actions = append(actions,
			model.OpenProductAction("Choose: Urn (engraving)", urnProductURL),
			model.OpenProductAction("Choose: Keepsake (night light)", keepsakeProductURL),
		)
	} else {
		for i := 0; i < len(grounding) && i < 2; i++ {
			p := grounding[i]
			if p.URL == "" {
				continue
			}
			title := p.Title
			if title == "" {
				title = "Product"
			}
			actions = append(actions, model.OpenProductAction(truncateLabel("View: "+title, productLabelLimit), p.URL))
		}
	}

	actions = append(actions, model.OpenCollectionAction("Browse all products", allProductsURL))
	return actions
}

// Answer orchestrates the grounded answer: catalog lookup keyed off the
// message and profile, budget filtering with an empty-keyword fallback when
// nothing fits the budget, a bounded grounding list for the generation call,
// and action derivation. Catalog failures degrade to an empty product list
// with the error recorded in ToolError; generation failures propagate.
func Answer(ctx context.Context, completer model.Completer, searcher model.ProductSearcher, temps model.TemperatureConfig, systemContext string, state *model.TurnState) (*model.TurnState, error) {
	var products []model.Product
	state.ToolError = ""

	switch state.Intent {
	case model.IntentProduct, model.IntentOther, model.IntentCustomization:
		kw := SearchKeyword(state.UserMessage, state.Profile)
		limit := keywordLimit
		if kw == "" {
			limit = fallbackLimit
		}

		var err error
		products, err = searcher.Search(ctx, kw, limit)
		if err != nil {
			products = nil
			state.ToolError = err.Error()
			logx.Warn().Err(err).Str("thread_id", state.ThreadID).Str("keyword", kw).Msg("catalog search failed; answering without products")
		}
	}

	ceiling, hasCeiling := budget.ParseCeiling(state.Profile[model.ProfileKeyBudget])
	within, over := budget.Partition(products, ceiling, hasCeiling)

	// Budget given but nothing affordable found: one more try without a
	// keyword. The refreshed result supersedes the earlier set either way.
	if hasCeiling && len(within) == 0 {
		fallback, err := searcher.Search(ctx, "", fallbackLimit)
		if err != nil {
			if state.ToolError == "" {
				state.ToolError = err.Error()
			}
			logx.Warn().Err(err).Str("thread_id", state.ThreadID).Msg("catalog fallback search failed")
		} else {
			within, over = budget.Partition(fallback, ceiling, hasCeiling)
		}
	}

	grounding := groundingList(within, over)
	state.ProductsDebug = grounding

	prompt, err := prompts.RenderAnswer(ctx, systemContext, state.Intent, state.UserMessage, state.Profile, grounding, ceiling, hasCeiling)
	if err != nil {
		return nil, err
	}

	// Generation failures are not recovered here; they propagate to the
	// orchestrator boundary.
	resp, err := completer.Complete(ctx, prompt, temps.Answer)
	if err != nil {
		return nil, err
	}
	state.Answer = resp

	if len(state.Actions) == 0 {
		state.Actions = DeriveActions(state.Answer, state.UserMessage, state.ProductsDebug)
	}

	logx.Debug().
		Str("thread_id", state.ThreadID).
		Int("grounding", len(grounding)).
		Bool("has_budget", hasCeiling).
		Msg("answer produced")
	return state, nil
}

// NewAnswerNode creates the Answer node.
func NewAnswerNode(completer model.Completer, searcher model.ProductSearcher, temps model.TemperatureConfig, systemContext string) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *model.TurnState) (*model.TurnState, error) {
		return Answer(ctx, completer, searcher, temps, systemContext, state)
	})
}
