// Package repository defines the snapshot store interface and errors.
package repository

import (
	"context"

	"github.com/okian/podium/internal/domain/model"
)

// Store holds the latest good leaderboard snapshot. Snapshots are replaced
// wholesale; a failed fetch cycle simply never calls Replace, leaving the
// previous snapshot visible.
type Store interface {
	// Replace installs snap as the latest snapshot if its sequence number
	// is newer than the one currently held. Returns false when snap is
	// stale, i.e. a slower fetch completed after a newer one.
	Replace(ctx context.Context, snap model.Snapshot) bool

	// Latest returns the current snapshot and whether one exists yet.
	Latest(ctx context.Context) (model.Snapshot, bool)

	// TopN returns up to n entries ordered by rank.
	TopN(ctx context.Context, n int) ([]model.Entry, error)

	// Rank returns the entry for a subject name.
	// Returns ErrNotFound when the subject is unknown.
	Rank(ctx context.Context, name string) (model.Entry, error)

	// Count returns the number of subjects in the current snapshot.
	Count(ctx context.Context) int
}
