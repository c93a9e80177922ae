package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewWordProgress(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	wordID := uuid.New()

	progress, err := NewWordProgress(learnerID, wordID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if progress.LearnerID != learnerID || progress.WordID != wordID {
		t.Error("Expected IDs to be carried through")
	}
	if progress.EaseFactor != DefaultEaseFactor {
		t.Errorf("Expected ease factor %v, got %v", DefaultEaseFactor, progress.EaseFactor)
	}
	if progress.IntervalDays != 1 {
		t.Errorf("Expected interval 1, got %d", progress.IntervalDays)
	}
	if progress.Repetitions != 0 {
		t.Errorf("Expected repetitions 0, got %d", progress.Repetitions)
	}
	if !progress.LastReviewedAt.IsZero() {
		t.Error("Expected LastReviewedAt to be zero before first review")
	}
	if progress.NextReviewAt.IsZero() {
		t.Error("Expected NextReviewAt to be set for immediate review")
	}
	if progress.Mastered {
		t.Error("Expected Mastered false")
	}
}

func TestWordProgressValidate(t *testing.T) {
	t.Parallel()

	valid, err := NewWordProgress(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testCases := []struct {
		name     string
		mutate   func(p *WordProgress)
		expected error
	}{
		{
			name:     "missing learner ID",
			mutate:   func(p *WordProgress) { p.LearnerID = uuid.Nil },
			expected: ErrEmptyProgressLearnerID,
		},
		{
			name:     "missing word ID",
			mutate:   func(p *WordProgress) { p.WordID = uuid.Nil },
			expected: ErrEmptyProgressWordID,
		},
		{
			name:     "interval below 1",
			mutate:   func(p *WordProgress) { p.IntervalDays = 0 },
			expected: ErrInvalidInterval,
		},
		{
			name:     "ease factor below floor",
			mutate:   func(p *WordProgress) { p.EaseFactor = 1.2 },
			expected: ErrInvalidEaseFactor,
		},
		{
			name:     "negative repetitions",
			mutate:   func(p *WordProgress) { p.Repetitions = -1 },
			expected: ErrInvalidRepetitions,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			progress := *valid
			tc.mutate(&progress)

			if err := progress.Validate(); !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestWordProgressAccuracy(t *testing.T) {
	t.Parallel()

	progress := &WordProgress{}
	if got := progress.Accuracy(); got != 0 {
		t.Errorf("Expected 0 accuracy before any review, got %v", got)
	}

	progress.TimesReviewed = 8
	progress.TimesCorrect = 6
	if got := progress.Accuracy(); got != 75 {
		t.Errorf("Expected 75, got %v", got)
	}
}
