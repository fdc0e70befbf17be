package nodes

import (
	"context"
	"sync"

	"github.com/ff-agent/server/internal/agent/model"
)

// fakeCompleter records every call; fn (when set) decides the response,
// otherwise resp/err are returned as-is.
type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	temps   []float32

	resp string
	err  error
	fn   func(prompt string, temperature float32) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, temperature float32) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.temps = append(f.temps, temperature)
	f.mu.Unlock()

	if f.fn != nil {
		return f.fn(prompt, temperature)
	}
	return f.resp, f.err
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type searchCall struct {
	Keyword string
	Limit   int
}

// fakeSearcher records calls; fn (when set) decides the result per call.
type fakeSearcher struct {
	mu    sync.Mutex
	calls []searchCall

	products []model.Product
	err      error
	fn       func(keyword string, limit int) ([]model.Product, error)
}

func (f *fakeSearcher) Search(_ context.Context, keyword string, limit int) ([]model.Product, error) {
	f.mu.Lock()
	f.calls = append(f.calls, searchCall{Keyword: keyword, Limit: limit})
	f.mu.Unlock()

	if f.fn != nil {
		return f.fn(keyword, limit)
	}
	return f.products, f.err
}

// memRepo is an in-memory ProfileRepository for router tests.
type memRepo struct {
	mu       sync.Mutex
	profiles map[string]model.Profile
	loadErr  error
}

func newMemRepo() *memRepo {
	return &memRepo{profiles: map[string]model.Profile{}}
}

func (r *memRepo) Load(_ context.Context, threadID string) (model.Profile, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[threadID]; ok {
		return p.Clone(), nil
	}
	return model.Profile{}, nil
}

func (r *memRepo) Save(_ context.Context, threadID string, profile model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[threadID] = profile.Clone()
	return nil
}

func (r *memRepo) Clear(_ context.Context, threadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, threadID)
	return nil
}
