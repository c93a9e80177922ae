package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/domain"
	"github.com/bhashamitra/lingua-api/internal/domain/srs"
	"github.com/bhashamitra/lingua-api/internal/pronunciation"
	"github.com/bhashamitra/lingua-api/internal/store"
)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db            *sql.DB
	wordStore     store.WordStore
	progressStore store.WordProgressStore
	srsService    srs.Service
	scorer        *pronunciation.Scorer
	analyzer      *pronunciation.Analyzer
	logger        *slog.Logger
}

// Ensure reviewServiceImpl implements ReviewService
var _ ReviewService = (*reviewServiceImpl)(nil)

// NewReviewService creates a new ReviewService. The analyzer may be nil,
// in which case pronunciation attempts are scored without acoustic
// analysis and neutral sub-scores apply.
func NewReviewService(
	db *sql.DB,
	wordStore store.WordStore,
	progressStore store.WordProgressStore,
	srsService srs.Service,
	scorer *pronunciation.Scorer,
	analyzer *pronunciation.Analyzer,
	logger *slog.Logger,
) ReviewService {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if wordStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("wordStore cannot be nil")
	}
	if progressStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressStore cannot be nil")
	}
	if srsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("srsService cannot be nil")
	}
	if scorer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scorer cannot be nil")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil")
	}

	return &reviewServiceImpl{
		db:            db,
		wordStore:     wordStore,
		progressStore: progressStore,
		srsService:    srsService,
		scorer:        scorer,
		analyzer:      analyzer,
		logger:        logger.With(slog.String("component", "review_service")),
	}
}

// GetDueWords implements ReviewService.GetDueWords
func (s *reviewServiceImpl) GetDueWords(
	ctx context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]*domain.Word, error) {
	log := s.logger.With(slog.String("learner_id", learnerID.String()))

	words, err := s.wordStore.ListDue(ctx, learnerID, limit)
	if err != nil {
		log.Error("failed to list due words", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list due words: %w", err)
	}

	if len(words) == 0 {
		log.Debug("no words due for review")
		return nil, ErrNoWordsDue
	}

	log.Debug("retrieved due words", slog.Int("count", len(words)))
	return words, nil
}

// SubmitReview implements ReviewService.SubmitReview
//
// The progress row is locked for the duration of the transaction so
// concurrent submissions for the same learner and word are serialized.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID uuid.UUID,
	quality int,
) (*domain.WordProgress, error) {
	log := s.logger.With(
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID.String()),
	)

	if quality < srs.MinQuality || quality > srs.MaxQuality {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}

	var updated *domain.WordProgress
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		wordStore := s.wordStore.WithTx(tx)
		progressStore := s.progressStore.WithTx(tx)

		if _, err := wordStore.GetByID(ctx, wordID); err != nil {
			if errors.Is(err, store.ErrWordNotFound) {
				return ErrWordNotFound
			}
			return fmt.Errorf("failed to get word: %w", err)
		}

		progress, created, err := getOrCreateProgress(ctx, progressStore, learnerID, wordID)
		if err != nil {
			return err
		}

		next, err := s.srsService.RecordReview(progress, quality, time.Now().UTC())
		if err != nil {
			if errors.Is(err, srs.ErrInvalidQuality) {
				return fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
			}
			return fmt.Errorf("failed to compute next review: %w", err)
		}

		if err := progressStore.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}

		if created {
			log.Debug("created progress on first review")
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("review recorded",
		slog.Int("quality", quality),
		slog.Int("interval_days", updated.IntervalDays),
		slog.Bool("mastered", updated.Mastered))
	return updated, nil
}

// ScorePronunciation implements ReviewService.ScorePronunciation
//
// Acoustic analysis runs before the transaction opens so no database
// locks are held while audio is fetched over the network.
func (s *reviewServiceImpl) ScorePronunciation(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID uuid.UUID,
	attempt PronunciationAttempt,
) (*pronunciation.Result, error) {
	log := s.logger.With(
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID.String()),
	)

	word, err := s.wordStore.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to get word: %w", err)
	}

	var acoustic *pronunciation.Analysis
	if s.analyzer != nil && attempt.AudioURL != "" {
		expected := time.Duration(word.ExpectedDurationMs) * time.Millisecond
		analysis := s.analyzer.Analyze(ctx, attempt.AudioURL, expected)
		acoustic = &analysis
	}

	var result pronunciation.Result
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		progressStore := s.progressStore.WithTx(tx)

		progress, _, err := getOrCreateProgress(ctx, progressStore, learnerID, wordID)
		if err != nil {
			return err
		}

		result = s.scorer.Score(pronunciation.Attempt{
			Transcription:        attempt.Transcription,
			ExpectedWord:         word.Text,
			ExpectedRomanization: word.Romanization,
			STTConfidence:        attempt.STTConfidence,
			Acoustic:             acoustic,
			PreviousBest:         progress.BestPronunciationScore,
		})

		if result.NewPersonalBest {
			progress.BestPronunciationScore = result.FinalScore
			progress.UpdatedAt = time.Now().UTC()
			if err := progressStore.Update(ctx, progress); err != nil {
				return fmt.Errorf("failed to save personal best: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("pronunciation scored",
		slog.Float64("final_score", result.FinalScore),
		slog.Int("stars", result.Stars),
		slog.Bool("new_personal_best", result.NewPersonalBest))
	return &result, nil
}

// PostponeWord implements ReviewService.PostponeWord
func (s *reviewServiceImpl) PostponeWord(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID uuid.UUID,
	days int,
) (*domain.WordProgress, error) {
	var updated *domain.WordProgress
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		progressStore := s.progressStore.WithTx(tx)

		progress, err := progressStore.GetForUpdate(ctx, learnerID, wordID)
		if err != nil {
			if errors.Is(err, store.ErrWordProgressNotFound) {
				return ErrWordNotFound
			}
			return fmt.Errorf("failed to get progress: %w", err)
		}

		next, err := s.srsService.PostponeReview(progress, days, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to postpone review: %w", err)
		}

		if err := progressStore.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review postponed",
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID.String()),
		slog.Int("days", days))
	return updated, nil
}

// getOrCreateProgress locks and returns the learner's progress for a
// word, creating the row with starting values on the first attempt.
// Must be called inside a transaction.
func getOrCreateProgress(
	ctx context.Context,
	progressStore store.WordProgressStore,
	learnerID, wordID uuid.UUID,
) (*domain.WordProgress, bool, error) {
	progress, err := progressStore.GetForUpdate(ctx, learnerID, wordID)
	if err == nil {
		return progress, false, nil
	}
	if !errors.Is(err, store.ErrWordProgressNotFound) {
		return nil, false, fmt.Errorf("failed to get progress: %w", err)
	}

	progress, err = domain.NewWordProgress(learnerID, wordID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build progress: %w", err)
	}

	if err := progressStore.Create(ctx, progress); err != nil {
		// Lost a race with a concurrent first review; take the lock on
		// the row the winner inserted.
		if errors.Is(err, store.ErrDuplicate) {
			progress, err = progressStore.GetForUpdate(ctx, learnerID, wordID)
			if err != nil {
				return nil, false, fmt.Errorf("failed to get progress after race: %w", err)
			}
			return progress, false, nil
		}
		return nil, false, fmt.Errorf("failed to create progress: %w", err)
	}

	return progress, true, nil
}
