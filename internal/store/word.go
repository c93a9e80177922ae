package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/domain"
)

// WordStore defines the interface for vocabulary word persistence.
type WordStore interface {
	// Create saves a new vocabulary word.
	// Returns validation errors from the domain Word if data is invalid.
	Create(ctx context.Context, word *domain.Word) error

	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// ListDue retrieves up to limit words due for review by the given
	// learner. Words the learner has never reviewed come first, then
	// the hardest words (lowest ease factor), then the most overdue.
	ListDue(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.Word, error)

	// WithTx returns a new WordStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) WordStore
}
