package nodes

import (
	"context"
	"regexp"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/ff-agent/server/internal/agent/graph/parsers"
	"github.com/ff-agent/server/internal/agent/graph/prompts"
	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

// Deterministic budget extraction, tried in order; first match wins and only
// when budget is not already set.
var (
	budgetUnderRe  = regexp.MustCompile(`(under|below|less than)\s*\$?\s*(\d+(\.\d+)?)`)
	budgetDollarRe = regexp.MustCompile(`\$\s*(\d+(\.\d+)?)`)
	budgetBareRe   = regexp.MustCompile(`\b(\d+(\.\d+)?)\b`)

	budgetSignalWords = []string{"budget", "under", "below"}
)

// extractBudgetRules is the rule-based stage of profile extraction. It never
// overwrites an existing budget.
func extractBudgetRules(msg string, profile model.Profile) {
	lower := strings.ToLower(msg)

	if !profile.Has(model.ProfileKeyBudget) {
		if m := budgetUnderRe.FindStringSubmatch(lower); m != nil {
			profile[model.ProfileKeyBudget] = "under $" + m[2]
		}
	}
	if !profile.Has(model.ProfileKeyBudget) {
		if m := budgetDollarRe.FindStringSubmatch(msg); m != nil {
			profile[model.ProfileKeyBudget] = "$" + m[1]
		}
	}
	if !profile.Has(model.ProfileKeyBudget) &&
		containsAny(lower, budgetSignalWords) &&
		!strings.Contains(msg, "$") {
		if m := budgetBareRe.FindStringSubmatch(msg); m != nil {
			profile[model.ProfileKeyBudget] = "under $" + m[1]
		}
	}
}

// ExtractProfile runs the two-stage extraction: deterministic budget rules,
// then a best-effort structured extraction delegated to the completion
// model. Results merge under first-non-empty-wins; a failed or malformed
// delegated call degrades silently to the rule-based results.
func ExtractProfile(ctx context.Context, completer model.Completer, temps model.TemperatureConfig, state *model.TurnState) (*model.TurnState, error) {
	extractBudgetRules(state.UserMessage, state.Profile)

	if strings.TrimSpace(state.UserMessage) == "" {
		return state, nil
	}

	prompt, err := prompts.RenderExtract(ctx, state.UserMessage)
	if err != nil {
		return nil, err
	}

	resp, err := completer.Complete(ctx, prompt, temps.Extract)
	if err != nil {
		logx.Warn().Err(err).Str("thread_id", state.ThreadID).Msg("profile extraction call failed; keeping rule-based results")
		return state, nil
	}

	extracted, err := parsers.ParseProfileExtraction(resp)
	if err != nil {
		logx.Debug().Err(err).Str("thread_id", state.ThreadID).Msg("extraction response not parseable; keeping rule-based results")
		return state, nil
	}

	state.Profile.Merge(extracted)
	return state, nil
}

// NewExtractProfileNode creates the ExtractProfile node.
func NewExtractProfileNode(completer model.Completer, temps model.TemperatureConfig) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *model.TurnState) (*model.TurnState, error) {
		return ExtractProfile(ctx, completer, temps, state)
	})
}
