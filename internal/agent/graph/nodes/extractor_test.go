package nodes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ff-agent/server/internal/agent/model"
)

func TestExtractBudgetRules(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"under phrase", "I want something under $60", "under $60"},
		{"under without dollar", "keep it below 45 please", "under $45"},
		{"less than", "Less Than $19.99", "under $19.99"},
		{"plain dollar amount", "my budget is $47.50", "$47.50"},
		{"bare number with signal word", "my budget is 60", "under $60"},
		{"bare number without signal word", "I have 60 ideas", ""},
		{"no numbers", "no budget really", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := model.Profile{}
			extractBudgetRules(tt.msg, profile)
			assert.Equal(t, tt.want, profile[model.ProfileKeyBudget])
		})
	}
}

func TestExtractBudgetRulesNeverOverwrite(t *testing.T) {
	profile := model.Profile{model.ProfileKeyBudget: "under $30"}
	extractBudgetRules("under $200", profile)
	assert.Equal(t, "under $30", profile[model.ProfileKeyBudget])
}

func extractState(msg string, profile model.Profile) *model.TurnState {
	return model.NewTurnState(model.TurnInput{ThreadID: "t1", UserMessage: msg}, profile)
}

func TestExtractProfileMergesDelegatedResult(t *testing.T) {
	completer := &fakeCompleter{resp: `{"occasion": "gift", "style": "minimalist"}`}
	temps := model.TemperatureConfig{Extract: 0}

	state, err := ExtractProfile(context.Background(), completer, temps, extractState("a minimalist gift under $60", nil))
	require.NoError(t, err)

	assert.Equal(t, "under $60", state.Profile[model.ProfileKeyBudget])
	assert.Equal(t, "gift", state.Profile[model.ProfileKeyOccasion])
	assert.Equal(t, "minimalist", state.Profile[model.ProfileKeyStyle])
	require.Equal(t, 1, completer.calls())
	assert.Equal(t, float32(0), completer.temps[0])
}

func TestExtractProfileSkipsEmptyMessage(t *testing.T) {
	completer := &fakeCompleter{}

	state, err := ExtractProfile(context.Background(), completer, model.TemperatureConfig{}, extractState("   ", nil))
	require.NoError(t, err)

	assert.Empty(t, state.Profile)
	assert.Zero(t, completer.calls())
}

func TestExtractProfileDegradesOnCompleterError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("quota exceeded")}

	state, err := ExtractProfile(context.Background(), completer, model.TemperatureConfig{}, extractState("under $60 please", nil))
	require.NoError(t, err)

	// rule-based result survives the failed delegated call
	assert.Equal(t, "under $60", state.Profile[model.ProfileKeyBudget])
}

func TestExtractProfileDegradesOnMalformedResponse(t *testing.T) {
	completer := &fakeCompleter{resp: "I could not find any preferences."}

	state, err := ExtractProfile(context.Background(), completer, model.TemperatureConfig{}, extractState("something under $25", nil))
	require.NoError(t, err)

	assert.Equal(t, "under $25", state.Profile[model.ProfileKeyBudget])
}

func TestExtractProfileDelegatedResultNeverOverwrites(t *testing.T) {
	completer := &fakeCompleter{resp: `{"budget": "under $500"}`}
	state := extractState("anything nice", model.Profile{model.ProfileKeyBudget: "under $60"})

	out, err := ExtractProfile(context.Background(), completer, model.TemperatureConfig{}, state)
	require.NoError(t, err)

	assert.Equal(t, "under $60", out.Profile[model.ProfileKeyBudget])
}
