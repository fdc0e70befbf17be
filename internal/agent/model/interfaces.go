package model

import "context"

// Completer is the opaque text completion collaborator. Implementations own
// their timeout; the core issues single-shot, non-cancelable calls and never
// retries.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// ProductSearcher is the opaque catalog collaborator. An empty keyword must
// return the most recently updated limit items.
type ProductSearcher interface {
	Search(ctx context.Context, keyword string, limit int) ([]Product, error)
}

// ProfileRepository persists the per-thread shopping profile. Load on an
// unknown thread returns a fresh empty profile, not an error.
type ProfileRepository interface {
	Load(ctx context.Context, threadID string) (Profile, error)
	Save(ctx context.Context, threadID string, profile Profile) error
	Clear(ctx context.Context, threadID string) error
}
