package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/domain"
	"github.com/bhashamitra/lingua-api/internal/store"
)

// PostgresWordProgressStore implements the store.WordProgressStore
// interface using a PostgreSQL database as the storage backend.
type PostgresWordProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordProgressStore creates a new PostgreSQL implementation
// of the WordProgressStore interface. It accepts a database connection
// or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordProgressStore(db store.DBTX, logger *slog.Logger) *PostgresWordProgressStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_progress_store")),
	}
}

// Ensure PostgresWordProgressStore implements store.WordProgressStore interface
var _ store.WordProgressStore = (*PostgresWordProgressStore)(nil)

const progressColumns = `learner_id, word_id, ease_factor, interval_days,
	repetitions, last_reviewed_at, next_review_at, times_reviewed,
	times_correct, best_pronunciation_score, mastered, mastered_at,
	created_at, updated_at`

// Create implements store.WordProgressStore.Create
// Returns store.ErrDuplicate if the (learner, word) pair already has a
// progress row.
func (s *PostgresWordProgressStore) Create(ctx context.Context, progress *domain.WordProgress) error {
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO word_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.db.ExecContext(ctx, query,
		progress.LearnerID,
		progress.WordID,
		progress.EaseFactor,
		progress.IntervalDays,
		progress.Repetitions,
		nullableTime(progress.LastReviewedAt),
		progress.NextReviewAt,
		progress.TimesReviewed,
		progress.TimesCorrect,
		progress.BestPronunciationScore,
		progress.Mastered,
		nullableTime(progress.MasteredAt),
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// Get implements store.WordProgressStore.Get
// Returns store.ErrWordProgressNotFound if no entry exists.
func (s *PostgresWordProgressStore) Get(
	ctx context.Context,
	learnerID, wordID uuid.UUID,
) (*domain.WordProgress, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM word_progress
		WHERE learner_id = $1 AND word_id = $2`

	return s.getWith(ctx, query, learnerID, wordID)
}

// GetForUpdate implements store.WordProgressStore.GetForUpdate
// It takes a row-level lock so concurrent review submissions for the
// same learner and word are serialized by the database.
func (s *PostgresWordProgressStore) GetForUpdate(
	ctx context.Context,
	learnerID, wordID uuid.UUID,
) (*domain.WordProgress, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM word_progress
		WHERE learner_id = $1 AND word_id = $2
		FOR UPDATE`

	return s.getWith(ctx, query, learnerID, wordID)
}

func (s *PostgresWordProgressStore) getWith(
	ctx context.Context,
	query string,
	learnerID, wordID uuid.UUID,
) (*domain.WordProgress, error) {
	var (
		progress       domain.WordProgress
		lastReviewedAt sql.NullTime
		masteredAt     sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, query, learnerID, wordID).Scan(
		&progress.LearnerID,
		&progress.WordID,
		&progress.EaseFactor,
		&progress.IntervalDays,
		&progress.Repetitions,
		&lastReviewedAt,
		&progress.NextReviewAt,
		&progress.TimesReviewed,
		&progress.TimesCorrect,
		&progress.BestPronunciationScore,
		&progress.Mastered,
		&masteredAt,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrWordProgressNotFound
		}
		return nil, MapError(err)
	}

	if lastReviewedAt.Valid {
		progress.LastReviewedAt = lastReviewedAt.Time
	}
	if masteredAt.Valid {
		progress.MasteredAt = masteredAt.Time
	}

	return &progress, nil
}

// Update implements store.WordProgressStore.Update
// Returns store.ErrWordProgressNotFound if no entry exists.
func (s *PostgresWordProgressStore) Update(ctx context.Context, progress *domain.WordProgress) error {
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE word_progress
		SET ease_factor = $3,
			interval_days = $4,
			repetitions = $5,
			last_reviewed_at = $6,
			next_review_at = $7,
			times_reviewed = $8,
			times_correct = $9,
			best_pronunciation_score = $10,
			mastered = $11,
			mastered_at = $12,
			updated_at = $13
		WHERE learner_id = $1 AND word_id = $2`

	result, err := s.db.ExecContext(ctx, query,
		progress.LearnerID,
		progress.WordID,
		progress.EaseFactor,
		progress.IntervalDays,
		progress.Repetitions,
		nullableTime(progress.LastReviewedAt),
		progress.NextReviewAt,
		progress.TimesReviewed,
		progress.TimesCorrect,
		progress.BestPronunciationScore,
		progress.Mastered,
		nullableTime(progress.MasteredAt),
		progress.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrWordProgressNotFound
	}

	return nil
}

// WithTx implements store.WordProgressStore.WithTx
func (s *PostgresWordProgressStore) WithTx(tx *sql.Tx) store.WordProgressStore {
	return &PostgresWordProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableTime converts a zero time to a SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
