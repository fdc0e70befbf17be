package nodes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ff-agent/server/internal/agent/model"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		msg  string
		want model.Intent
	}{
		{"What's your shipping policy?", model.IntentPolicy},
		{"Can I get a REFUND?", model.IntentPolicy},
		{"Can you engrave her name on it?", model.IntentCustomization},
		{"I want a personalized gift", model.IntentCustomization}, // customization beats product
		{"Can you recommend something?", model.IntentProduct},
		{"What is the price of the box?", model.IntentProduct},
		{"运费多少？", model.IntentPolicy},
		{"可以刻字吗", model.IntentCustomization},
		{"有什么推荐的产品", model.IntentProduct},
		{"我想买一个60刀以内的纪念品", model.IntentOther},
		{"hello", model.IntentOther},
		{"", model.IntentOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyIntent(tt.msg), "msg %q", tt.msg)
	}
}

func TestRouteTurnLoadsProfile(t *testing.T) {
	repo := newMemRepo()
	repo.profiles["t1"] = model.Profile{model.ProfileKeyBudget: "under $60"}

	state, err := RouteTurn(context.Background(), repo, model.TurnInput{
		ThreadID:    "t1",
		UserMessage: "recommend something nice",
	})
	require.NoError(t, err)

	assert.Equal(t, "t1", state.ThreadID)
	assert.Equal(t, model.IntentProduct, state.Intent)
	assert.Equal(t, "under $60", state.Profile[model.ProfileKeyBudget])
	assert.NotNil(t, state.Actions)
	assert.NotNil(t, state.ProductsDebug)
}

func TestRouteTurnUnknownThreadGetsFreshProfile(t *testing.T) {
	state, err := RouteTurn(context.Background(), newMemRepo(), model.TurnInput{
		ThreadID:    "new",
		UserMessage: "hi",
	})
	require.NoError(t, err)

	assert.Empty(t, state.Profile)
	assert.Equal(t, model.IntentOther, state.Intent)
}

func TestRouteTurnPropagatesLoadError(t *testing.T) {
	repo := newMemRepo()
	repo.loadErr = errors.New("redis down")

	_, err := RouteTurn(context.Background(), repo, model.TurnInput{ThreadID: "t1", UserMessage: "hi"})
	assert.Error(t, err)
}
