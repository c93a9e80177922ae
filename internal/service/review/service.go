// Package review orchestrates vocabulary review sessions: fetching due
// words, applying the spaced-repetition scheduler to submitted recall
// qualities, and scoring pronunciation attempts.
package review

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/domain"
	"github.com/bhashamitra/lingua-api/internal/pronunciation"
)

// Common error types for ReviewService
var (
	// ErrNoWordsDue indicates that the learner has no words due for review.
	ErrNoWordsDue = errors.New("no words due for review")

	// ErrWordNotFound indicates that the word does not exist.
	ErrWordNotFound = errors.New("word not found")

	// ErrInvalidQuality indicates a recall quality outside [0, 5].
	ErrInvalidQuality = errors.New("invalid recall quality")

	// ErrInvalidAttempt indicates an invalid pronunciation attempt.
	ErrInvalidAttempt = errors.New("invalid pronunciation attempt")
)

// PronunciationAttempt carries a learner's pronunciation attempt as
// delivered by the client: the recognizer output plus an optional
// pointer to the recorded audio.
type PronunciationAttempt struct {
	// Transcription is the speech recognizer's output.
	Transcription string `json:"transcription"`

	// STTConfidence is the recognizer's confidence, nominally 0-1.
	STTConfidence float64 `json:"stt_confidence"`

	// AudioURL optionally points at the recording for acoustic
	// analysis. Analysis is best-effort; a bad URL degrades the
	// acoustic sub-scores instead of failing the attempt.
	AudioURL string `json:"audio_url,omitempty"`
}

// ReviewService provides vocabulary review operations backed by the
// SM-2 scheduler and the pronunciation scorer.
type ReviewService interface {
	// GetDueWords retrieves up to limit words due for review.
	// Returns ErrNoWordsDue when the learner has nothing to review.
	GetDueWords(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.Word, error)

	// SubmitReview applies a recall quality (0-5) to the learner's
	// progress for a word, creating the progress lazily on the first
	// attempt, and returns the updated progress.
	// Returns ErrWordNotFound if the word does not exist and
	// ErrInvalidQuality for a quality outside [0, 5].
	SubmitReview(
		ctx context.Context,
		learnerID uuid.UUID,
		wordID uuid.UUID,
		quality int,
	) (*domain.WordProgress, error)

	// ScorePronunciation scores a pronunciation attempt against the
	// word's expected form and persists a new personal best.
	// Returns ErrWordNotFound if the word does not exist.
	ScorePronunciation(
		ctx context.Context,
		learnerID uuid.UUID,
		wordID uuid.UUID,
		attempt PronunciationAttempt,
	) (*pronunciation.Result, error)

	// PostponeWord pushes the learner's next review of a word forward
	// by the given number of days.
	// Returns ErrWordNotFound if no progress exists for the pair.
	PostponeWord(
		ctx context.Context,
		learnerID uuid.UUID,
		wordID uuid.UUID,
		days int,
	) (*domain.WordProgress, error)
}
