// Package store persists fitted transform state to durable storage and
// reloads it for inference without refitting. Every backend publishes
// atomically: a reader never observes a partially written state. The
// serialized form is a versioned JSON envelope, so corruption and
// unsupported-version failures are distinguishable on load.
//
// Save and Load are not safe to run concurrently against the same
// location; callers serialize fit/persist cycles. Load is expected once
// at process start, with the decoded state cached in memory.
package store

import (
	"context"

	"github.com/ahrav/go-featurize/internal/domain"
)

// Store persists and reloads fitted transform state. Implementations
// return domain.ErrStateNotFound when nothing was persisted,
// domain.ErrStateCorrupt when the persisted form cannot be parsed into a
// valid state, and domain.ErrStateVersion for unsupported format
// versions.
type Store interface {
	// Save atomically publishes the state, replacing any previous one.
	Save(ctx context.Context, state *domain.FittedState) error

	// Load reads back the most recently saved state.
	Load(ctx context.Context) (*domain.FittedState, error)
}
