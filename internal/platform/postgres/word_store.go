package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/domain"
	"github.com/bhashamitra/lingua-api/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the
// WordStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// Create implements store.WordStore.Create
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) error {
	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO words (id, language, text, romanization, translation,
			audio_url, expected_duration_ms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		word.ID,
		word.Language,
		word.Text,
		word.Romanization,
		word.Translation,
		word.AudioURL,
		word.ExpectedDurationMs,
		word.CreatedAt,
		word.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.WordStore.GetByID
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	query := `
		SELECT id, language, text, romanization, translation,
			audio_url, expected_duration_ms, created_at, updated_at
		FROM words
		WHERE id = $1`

	word, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrWordNotFound
		}
		return nil, MapError(err)
	}

	return word, nil
}

// ListDue implements store.WordStore.ListDue
//
// Ordering mirrors the review session priority: words the learner has
// never seen first, then the hardest words (lowest ease factor), then
// the most overdue.
func (s *PostgresWordStore) ListDue(
	ctx context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]*domain.Word, error) {
	query := `
		SELECT w.id, w.language, w.text, w.romanization, w.translation,
			w.audio_url, w.expected_duration_ms, w.created_at, w.updated_at
		FROM words w
		LEFT JOIN word_progress p
			ON p.word_id = w.id AND p.learner_id = $1
		WHERE p.word_id IS NULL OR p.next_review_at <= NOW()
		ORDER BY
			(p.word_id IS NULL) DESC,
			p.ease_factor ASC NULLS LAST,
			p.next_review_at ASC NULLS LAST
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, learnerID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows",
				slog.String("error", closeErr.Error()))
		}
	}()

	var words []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, MapError(err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return words, nil
}

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanWord reads one words row into a domain.Word.
func scanWord(row rowScanner) (*domain.Word, error) {
	var word domain.Word
	err := row.Scan(
		&word.ID,
		&word.Language,
		&word.Text,
		&word.Romanization,
		&word.Translation,
		&word.AudioURL,
		&word.ExpectedDurationMs,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &word, nil
}
