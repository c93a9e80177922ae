package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/domain"
)

// WordProgressStore defines the interface for spaced-repetition
// progress persistence. One row exists per (learner, word) pair and is
// created lazily on the first review attempt.
type WordProgressStore interface {
	// Create saves a new progress entry.
	// Returns ErrDuplicate if the (learner, word) pair already has one.
	Create(ctx context.Context, progress *domain.WordProgress) error

	// Get retrieves progress for a learner and word without locking.
	// Returns ErrWordProgressNotFound if no entry exists. Do not use
	// this when you plan to update the row under concurrency.
	Get(ctx context.Context, learnerID, wordID uuid.UUID) (*domain.WordProgress, error)

	// GetForUpdate retrieves progress with a row-level lock using
	// SELECT FOR UPDATE. Use inside a transaction when the row will be
	// updated, so concurrent review submissions for the same word are
	// serialized by the database.
	// Returns ErrWordProgressNotFound if no entry exists.
	GetForUpdate(ctx context.Context, learnerID, wordID uuid.UUID) (*domain.WordProgress, error)

	// Update modifies an existing progress entry identified by its
	// learner and word IDs.
	// Returns ErrWordProgressNotFound if no entry exists.
	Update(ctx context.Context, progress *domain.WordProgress) error

	// WithTx returns a new WordProgressStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) WordProgressStore
}
