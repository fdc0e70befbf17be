package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ff-agent/server/internal/agent/model"
)

func TestWantsOccasionSplit(t *testing.T) {
	assert.True(t, WantsOccasionSplit(model.Profile{model.ProfileKeyBudget: "under $60"}))
	assert.False(t, WantsOccasionSplit(model.Profile{}))
	assert.False(t, WantsOccasionSplit(model.Profile{
		model.ProfileKeyBudget:   "under $60",
		model.ProfileKeyOccasion: "gift",
	}))
	assert.False(t, WantsOccasionSplit(model.Profile{model.ProfileKeyOccasion: "gift"}))
}

func checkClarify(t *testing.T, intent model.Intent, msg string, profile model.Profile) *model.TurnState {
	t.Helper()
	state := model.NewTurnState(model.TurnInput{ThreadID: "t1", UserMessage: msg}, profile)
	state.Intent = intent
	out, err := CheckClarify(context.Background(), state)
	require.NoError(t, err)
	return out
}

func TestCheckClarifyBudgetWithoutOccasion(t *testing.T) {
	// the occasion split fires regardless of message length
	long := "I would like to find a beautiful memorial item for my dog who passed away recently"
	state := checkClarify(t, model.IntentProduct, long, model.Profile{model.ProfileKeyBudget: "under $60"})
	assert.True(t, state.NeedsClarification)
}

func TestCheckClarifyVagueShortProductMessage(t *testing.T) {
	state := checkClarify(t, model.IntentProduct, "something nice", nil)
	assert.True(t, state.NeedsClarification)
}

func TestCheckClarifyShortMessageWithKeyInfoProceeds(t *testing.T) {
	state := checkClarify(t, model.IntentProduct, "something nice", model.Profile{
		model.ProfileKeyStyle:    "minimalist",
		model.ProfileKeyOccasion: "self",
	})
	assert.False(t, state.NeedsClarification)
}

func TestCheckClarifyLongProductMessageProceeds(t *testing.T) {
	state := checkClarify(t, model.IntentProduct, "I am looking for a keepsake box for my cat", nil)
	assert.False(t, state.NeedsClarification)
}

func TestCheckClarifyOtherIntentUsesSameRules(t *testing.T) {
	state := checkClarify(t, model.IntentOther, "hi", nil)
	assert.True(t, state.NeedsClarification)
}

func TestCheckClarifyCustomizationNeedsBothEngravingFields(t *testing.T) {
	long := "Please engrave a special message on the urn for my beloved companion"

	state := checkClarify(t, model.IntentCustomization, long, model.Profile{
		model.ProfileKeyEngravingLanguage: "en",
	})
	assert.True(t, state.NeedsClarification)

	state = checkClarify(t, model.IntentCustomization, long, model.Profile{
		model.ProfileKeyEngravingLanguage: "en",
		model.ProfileKeyEngravingText:     "Forever loved",
	})
	assert.False(t, state.NeedsClarification)
}

func TestCheckClarifyPolicyLengthBoundary(t *testing.T) {
	// 14 runes
	state := checkClarify(t, model.IntentPolicy, "Return policy?", nil)
	assert.True(t, state.NeedsClarification)

	// 15 runes
	state = checkClarify(t, model.IntentPolicy, "What is policy?", nil)
	assert.False(t, state.NeedsClarification)
}

func TestCheckClarifyResetsPriorDecision(t *testing.T) {
	state := model.NewTurnState(model.TurnInput{ThreadID: "t1", UserMessage: "I am looking for a keepsake box for my cat"}, nil)
	state.Intent = model.IntentProduct
	state.NeedsClarification = true
	state.ClarificationQuestion = "stale"

	out, err := CheckClarify(context.Background(), state)
	require.NoError(t, err)
	assert.False(t, out.NeedsClarification)
	assert.Empty(t, out.ClarificationQuestion)
}
