package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for WordProgress
var (
	ErrEmptyProgressLearnerID = errors.New("word progress learner ID cannot be empty")
	ErrEmptyProgressWordID    = errors.New("word progress word ID cannot be empty")
	ErrInvalidInterval        = errors.New("interval must be greater than or equal to 1")
	ErrInvalidEaseFactor      = errors.New("ease factor must be greater than or equal to 1.3")
	ErrInvalidRepetitions     = errors.New("repetitions must be greater than or equal to 0")
)

// DefaultEaseFactor is the SM-2 starting ease factor for a new item.
const DefaultEaseFactor = 2.5

// MinEaseFactor is the SM-2 floor below which the ease factor never drops.
const MinEaseFactor = 1.3

// WordProgress tracks a learner's spaced-repetition state for a single
// vocabulary word. It carries the SM-2 scheduling fields (ease factor,
// interval, repetition streak), accuracy counters, the best
// pronunciation score seen so far, and a one-way mastery flag.
type WordProgress struct {
	LearnerID uuid.UUID `json:"learner_id"`
	WordID    uuid.UUID `json:"word_id"`

	// EaseFactor governs how quickly the review interval grows.
	// It starts at 2.5 and never drops below 1.3. There is no upper
	// bound: repeated perfect recall keeps raising it.
	EaseFactor float64 `json:"ease_factor"`

	// IntervalDays is the number of days until the next scheduled
	// review. Always at least 1.
	IntervalDays int `json:"interval_days"`

	// Repetitions counts consecutive successful recalls (quality >= 3).
	// It resets to 0 on any failed recall.
	Repetitions int `json:"repetitions"`

	LastReviewedAt time.Time `json:"last_reviewed_at"` // zero until first review
	NextReviewAt   time.Time `json:"next_review_at"`

	TimesReviewed int `json:"times_reviewed"`
	TimesCorrect  int `json:"times_correct"`

	// BestPronunciationScore is the highest pronunciation final score
	// (0-100) recorded for this word.
	BestPronunciationScore float64 `json:"best_pronunciation_score"`

	// Mastered transitions to true exactly once and never reverts.
	Mastered   bool      `json:"mastered"`
	MasteredAt time.Time `json:"mastered_at,omitempty"` // zero unless mastered

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWordProgress creates progress for a learner and word with SM-2
// starting values. The word is due immediately so it shows up in the
// next review session.
func NewWordProgress(learnerID, wordID uuid.UUID) (*WordProgress, error) {
	now := time.Now().UTC()
	progress := &WordProgress{
		LearnerID:    learnerID,
		WordID:       wordID,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: 1,
		Repetitions:  0,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the WordProgress has valid data.
// Returns an error if any field fails validation.
func (p *WordProgress) Validate() error {
	if p.LearnerID == uuid.Nil {
		return ErrEmptyProgressLearnerID
	}

	if p.WordID == uuid.Nil {
		return ErrEmptyProgressWordID
	}

	if p.IntervalDays < 1 {
		return ErrInvalidInterval
	}

	if p.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	if p.Repetitions < 0 {
		return ErrInvalidRepetitions
	}

	return nil
}

// Accuracy returns the learner's recall accuracy for this word as a
// percentage. Returns 0 before the first review.
func (p *WordProgress) Accuracy() float64 {
	if p.TimesReviewed == 0 {
		return 0
	}
	return float64(p.TimesCorrect) / float64(p.TimesReviewed) * 100
}

// Note: scheduling mutations live in the srs package, which follows
// immutability principles by returning new instances rather than
// modifying existing ones.
