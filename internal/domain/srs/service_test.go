package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/domain"
)

func TestRecordReviewValidation(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	t.Run("nil progress", func(t *testing.T) {
		_, err := service.RecordReview(nil, 3, now)
		if !errors.Is(err, ErrNilProgress) {
			t.Errorf("Expected ErrNilProgress, got %v", err)
		}
	})

	t.Run("quality out of range", func(t *testing.T) {
		progress := newTestProgress(t)
		for _, quality := range []int{-1, 6, 100} {
			_, err := service.RecordReview(progress, quality, now)
			if !errors.Is(err, ErrInvalidQuality) {
				t.Errorf("quality=%d: expected ErrInvalidQuality, got %v", quality, err)
			}
		}
	})

	t.Run("full quality range accepted", func(t *testing.T) {
		progress := newTestProgress(t)
		for quality := MinQuality; quality <= MaxQuality; quality++ {
			next, err := service.RecordReview(progress, quality, now)
			if err != nil {
				t.Errorf("quality=%d: unexpected error %v", quality, err)
			}
			if next == nil {
				t.Errorf("quality=%d: expected progress, got nil", quality)
			}
		}
	})
}

func TestRecordReviewConcreteScenario(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress, err := domain.NewWordProgress(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("failed to create progress: %v", err)
	}

	next, err := service.RecordReview(progress, 5, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next.Repetitions != 1 {
		t.Errorf("Expected Repetitions 1, got %d", next.Repetitions)
	}
	if next.IntervalDays != 1 {
		t.Errorf("Expected IntervalDays 1, got %d", next.IntervalDays)
	}
	if next.TimesReviewed != 1 || next.TimesCorrect != 1 {
		t.Errorf("Expected counters 1/1, got %d/%d", next.TimesReviewed, next.TimesCorrect)
	}
	if next.EaseFactor != 2.6 {
		t.Errorf("Expected EaseFactor 2.6, got %v", next.EaseFactor)
	}
	if next.Mastered {
		t.Error("Expected Mastered false")
	}
}

func TestPostponeReview(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pushes next review forward", func(t *testing.T) {
		progress := newTestProgress(t)
		progress.NextReviewAt = now

		next, err := service.PostponeReview(progress, 3, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := now.AddDate(0, 0, 3)
		if !next.NextReviewAt.Equal(expected) {
			t.Errorf("Expected NextReviewAt %v, got %v", expected, next.NextReviewAt)
		}

		// Scheduling state is untouched.
		if next.IntervalDays != progress.IntervalDays ||
			next.EaseFactor != progress.EaseFactor ||
			next.Repetitions != progress.Repetitions {
			t.Error("Expected scheduling state to be unchanged by postpone")
		}
	})

	t.Run("rejects days below 1", func(t *testing.T) {
		progress := newTestProgress(t)
		for _, days := range []int{0, -1} {
			_, err := service.PostponeReview(progress, days, now)
			if !errors.Is(err, ErrInvalidDays) {
				t.Errorf("days=%d: expected ErrInvalidDays, got %v", days, err)
			}
		}
	})

	t.Run("nil progress", func(t *testing.T) {
		_, err := service.PostponeReview(nil, 1, now)
		if !errors.Is(err, ErrNilProgress) {
			t.Errorf("Expected ErrNilProgress, got %v", err)
		}
	})
}
