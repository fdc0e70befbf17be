package graph

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ff-agent/server/internal/agent/model"
)

type scriptedCompleter struct{}

func (scriptedCompleter) Complete(_ context.Context, prompt string, _ float32) (string, error) {
	// extraction prompts ask for JSON; everything else gets canned prose
	if strings.Contains(prompt, "JSON") {
		return "{}", nil
	}
	return "Here are a few ideas that fit.", nil
}

type staticSearcher struct {
	products []model.Product
}

func (s staticSearcher) Search(_ context.Context, _ string, _ int) ([]model.Product, error) {
	return s.products, nil
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]model.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]model.Profile{}}
}

func (r *memProfileRepo) Load(_ context.Context, threadID string) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[threadID]; ok {
		return p.Clone(), nil
	}
	return model.Profile{}, nil
}

func (r *memProfileRepo) Save(_ context.Context, threadID string, profile model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[threadID] = profile.Clone()
	return nil
}

func (r *memProfileRepo) Clear(_ context.Context, threadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, threadID)
	return nil
}

func testRunner(t *testing.T, repo model.ProfileRepository) Runner {
	t.Helper()
	runner, err := BuildTurnGraph(context.Background(), Config{
		Completer: scriptedCompleter{},
		Searcher: staticSearcher{products: []model.Product{
			{Title: "Simple Urn", Price: "39.00 USD", URL: "https://shop/products/simple-urn"},
		}},
		ProfileRepo:   repo,
		Temperatures:  model.TemperatureConfig{Extract: 0, Clarify: 0.3, Answer: 0.4},
		SystemContext: "test store context",
	})
	require.NoError(t, err)
	return runner
}

func TestBuildTurnGraphValidatesConfig(t *testing.T) {
	_, err := BuildTurnGraph(context.Background(), Config{})
	assert.Error(t, err)

	_, err = BuildTurnGraph(context.Background(), Config{Completer: scriptedCompleter{}})
	assert.Error(t, err)
}

func TestProcessTurnOccasionSplitRoundTrip(t *testing.T) {
	repo := newMemProfileRepo()
	runner := testRunner(t, repo)
	ctx := context.Background()

	// turn 1: budget with no occasion pauses for the gift-vs-keepsake split
	state, err := runner.ProcessTurn(ctx, model.TurnInput{
		ThreadID:    "t1",
		UserMessage: "I want something under $60.",
	})
	require.NoError(t, err)

	assert.True(t, state.NeedsClarification)
	assert.Equal(t, "Is this for a gift, or for your own keepsake?", state.ClarificationQuestion)
	require.Len(t, state.Actions, 2)
	assert.Equal(t, model.ActionReply, state.Actions[0].Type)

	saved, err := repo.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "under $60", saved[model.ProfileKeyBudget])
	assert.False(t, saved.Has(model.ProfileKeyOccasion))

	// turn 2: the quick-reply control token resolves the split and the turn
	// proceeds to a grounded answer
	state, err = runner.ProcessTurn(ctx, model.TurnInput{
		ThreadID:    "t1",
		UserMessage: "#choice:occasion=gift",
	})
	require.NoError(t, err)

	assert.False(t, state.NeedsClarification)
	assert.Equal(t, "Here are a few ideas that fit.", state.Answer)
	assert.Equal(t, "gift", state.Profile[model.ProfileKeyOccasion])

	saved, err = repo.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "under $60", saved[model.ProfileKeyBudget])
	assert.Equal(t, "gift", saved[model.ProfileKeyOccasion])
}

func TestProcessTurnThreadsAreIsolated(t *testing.T) {
	repo := newMemProfileRepo()
	runner := testRunner(t, repo)
	ctx := context.Background()

	_, err := runner.ProcessTurn(ctx, model.TurnInput{ThreadID: "a", UserMessage: "I want something under $60."})
	require.NoError(t, err)

	state, err := runner.ProcessTurn(ctx, model.TurnInput{ThreadID: "b", UserMessage: "What is your full shipping policy for urns?"})
	require.NoError(t, err)

	assert.Equal(t, model.IntentPolicy, state.Intent)
	assert.False(t, state.Profile.Has(model.ProfileKeyBudget))
}
