package srs

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/domain"
)

func newTestProgress(t *testing.T) *domain.WordProgress {
	t.Helper()
	progress, err := domain.NewWordProgress(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("failed to create test progress: %v", err)
	}
	return progress
}

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		quality  int
		expected float64
	}{
		{
			name:     "perfect recall adds 0.1",
			current:  2.5,
			quality:  5,
			expected: 2.6,
		},
		{
			name:     "quality 4 adds 0",
			current:  2.5,
			quality:  4,
			expected: 2.5,
		},
		{
			name:     "quality 3 subtracts 0.14",
			current:  2.5,
			quality:  3,
			expected: 2.36,
		},
		{
			name:     "quality 0 subtracts 0.8",
			current:  2.5,
			quality:  0,
			expected: 1.7,
		},
		{
			name:     "floor applies at 1.3",
			current:  1.35,
			quality:  0,
			expected: 1.3,
		},
		{
			name:     "already at floor stays at floor",
			current:  1.3,
			quality:  1,
			expected: 1.3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newEF := calculateNewEaseFactor(tc.current, tc.quality, params)

			if math.Abs(newEF-tc.expected) > 1e-9 {
				t.Errorf("Expected ease factor %v, got %v", tc.expected, newEF)
			}
		})
	}
}

func TestEaseFactorNeverBelowFloor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// Property from the SM-2 contract: for every quality in [0,5] and
	// any starting ease factor, the result stays at or above the floor.
	for quality := 0; quality <= 5; quality++ {
		for _, ef := range []float64{1.3, 1.5, 2.5, 4.0} {
			newEF := calculateNewEaseFactor(ef, quality, params)
			if newEF < params.MinEaseFactor {
				t.Errorf("quality=%d ef=%v produced %v below floor %v",
					quality, ef, newEF, params.MinEaseFactor)
			}
		}
	}
}

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name        string
		current     int
		repetitions int
		ef          float64
		expected    int
	}{
		{
			name:        "first success yields 1 day",
			current:     1,
			repetitions: 0,
			ef:          2.5,
			expected:    1,
		},
		{
			name:        "second success yields 6 days regardless of previous interval",
			current:     3,
			repetitions: 1,
			ef:          2.5,
			expected:    6,
		},
		{
			name:        "third success multiplies by ease factor",
			current:     6,
			repetitions: 2,
			ef:          2.5,
			expected:    15, // round(6 * 2.5)
		},
		{
			name:        "rounds to nearest day",
			current:     6,
			repetitions: 2,
			ef:          2.42,
			expected:    15, // round(14.52)
		},
		{
			name:        "long streak keeps compounding",
			current:     38,
			repetitions: 4,
			ef:          2.6,
			expected:    99, // round(98.8)
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newInterval := calculateNewInterval(tc.current, tc.repetitions, tc.ef, params)

			if newInterval != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, newInterval)
			}
		})
	}
}

func TestCalculateNextProgressFirstReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)
	next := calculateNextProgress(progress, 5, now, params)

	if next.TimesReviewed != 1 {
		t.Errorf("Expected TimesReviewed 1, got %d", next.TimesReviewed)
	}
	if next.TimesCorrect != 1 {
		t.Errorf("Expected TimesCorrect 1, got %d", next.TimesCorrect)
	}
	if next.Repetitions != 1 {
		t.Errorf("Expected Repetitions 1, got %d", next.Repetitions)
	}
	// First-ever success schedules 1 day out, not 6.
	if next.IntervalDays != 1 {
		t.Errorf("Expected IntervalDays 1, got %d", next.IntervalDays)
	}
	if math.Abs(next.EaseFactor-2.6) > 1e-9 {
		t.Errorf("Expected EaseFactor 2.6, got %v", next.EaseFactor)
	}
	if next.Mastered {
		t.Error("Expected Mastered to be false after a single review")
	}
	if !next.NextReviewAt.Equal(now.AddDate(0, 0, 1)) {
		t.Errorf("Expected NextReviewAt %v, got %v", now.AddDate(0, 0, 1), next.NextReviewAt)
	}
	if !next.LastReviewedAt.Equal(now) {
		t.Errorf("Expected LastReviewedAt %v, got %v", now, next.LastReviewedAt)
	}
}

func TestCalculateNextProgressSuccessProgression(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)

	// First success: 1 day.
	progress = calculateNextProgress(progress, 4, now, params)
	if progress.IntervalDays != 1 {
		t.Fatalf("Expected interval 1 after first success, got %d", progress.IntervalDays)
	}

	// Second consecutive success: 6 days.
	progress = calculateNextProgress(progress, 4, now.AddDate(0, 0, 1), params)
	if progress.IntervalDays != 6 {
		t.Fatalf("Expected interval 6 after second success, got %d", progress.IntervalDays)
	}
	efAfterSecond := progress.EaseFactor

	// Third consecutive success: round(6 * EF after second review).
	progress = calculateNextProgress(progress, 4, now.AddDate(0, 0, 7), params)
	expected := int(math.Round(6 * efAfterSecond))
	if progress.IntervalDays != expected {
		t.Fatalf("Expected interval %d after third success, got %d", expected, progress.IntervalDays)
	}
}

func TestCalculateNextProgressFailureResets(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)
	progress.Repetitions = 4
	progress.IntervalDays = 30
	progress.EaseFactor = 2.8

	for quality := 0; quality < params.PassThreshold; quality++ {
		next := calculateNextProgress(progress, quality, now, params)

		if next.Repetitions != 0 {
			t.Errorf("quality=%d: expected Repetitions 0, got %d", quality, next.Repetitions)
		}
		if next.IntervalDays != 1 {
			t.Errorf("quality=%d: expected IntervalDays 1, got %d", quality, next.IntervalDays)
		}
		if next.TimesCorrect != progress.TimesCorrect {
			t.Errorf("quality=%d: expected TimesCorrect unchanged, got %d", quality, next.TimesCorrect)
		}
	}
}

func TestRepeatedBlackoutStaysAtFloor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)
	for i := 0; i < 20; i++ {
		progress = calculateNextProgress(progress, 0, now.AddDate(0, 0, i), params)
	}

	if progress.EaseFactor != params.MinEaseFactor {
		t.Errorf("Expected ease factor at floor %v, got %v", params.MinEaseFactor, progress.EaseFactor)
	}
	if progress.IntervalDays != 1 {
		t.Errorf("Expected interval pinned at 1, got %d", progress.IntervalDays)
	}
	if progress.Repetitions != 0 {
		t.Errorf("Expected repetitions pinned at 0, got %d", progress.Repetitions)
	}
	if progress.Mastered {
		t.Error("Expected item to never reach mastery through failures")
	}
}

func TestRepeatedPerfectRecallGrowsEaseFactor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)
	prevEF := progress.EaseFactor
	for i := 0; i < 10; i++ {
		progress = calculateNextProgress(progress, 5, now.AddDate(0, 0, i*30), params)
		if progress.EaseFactor <= prevEF {
			t.Fatalf("Expected ease factor to grow monotonically, got %v after %v",
				progress.EaseFactor, prevEF)
		}
		prevEF = progress.EaseFactor
	}

	// No ceiling: ten perfect recalls push it well past the 2.5 start.
	if progress.EaseFactor < 3.4 {
		t.Errorf("Expected unbounded growth past 3.4, got %v", progress.EaseFactor)
	}
}

func TestMastery(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("reached after long intervals with high accuracy", func(t *testing.T) {
		progress := newTestProgress(t)
		for i := 0; i < 6; i++ {
			progress = calculateNextProgress(progress, 5, now.AddDate(0, 0, i*40), params)
		}

		if !progress.Mastered {
			t.Fatalf("Expected mastery after 6 perfect reviews, interval=%d reviews=%d accuracy=%v",
				progress.IntervalDays, progress.TimesReviewed, progress.Accuracy())
		}
		if progress.MasteredAt.IsZero() {
			t.Error("Expected MasteredAt to be set")
		}
	})

	t.Run("blocked below accuracy gate", func(t *testing.T) {
		progress := newTestProgress(t)
		// Three early failures cap accuracy below 90% for a long time.
		for i := 0; i < 3; i++ {
			progress = calculateNextProgress(progress, 1, now, params)
		}
		for i := 0; i < 6; i++ {
			progress = calculateNextProgress(progress, 5, now.AddDate(0, 0, i*40), params)
		}

		// 6 correct out of 9 reviewed: 66.7%.
		if progress.Mastered {
			t.Errorf("Expected no mastery at accuracy %v", progress.Accuracy())
		}
	})

	t.Run("sticky across later failures", func(t *testing.T) {
		progress := newTestProgress(t)
		for i := 0; i < 6; i++ {
			progress = calculateNextProgress(progress, 5, now.AddDate(0, 0, i*40), params)
		}
		if !progress.Mastered {
			t.Fatal("Expected mastery before testing stickiness")
		}
		masteredAt := progress.MasteredAt

		for i := 0; i < 5; i++ {
			progress = calculateNextProgress(progress, 0, now.AddDate(1, 0, i), params)
		}

		if !progress.Mastered {
			t.Error("Expected mastery to survive subsequent failures")
		}
		if !progress.MasteredAt.Equal(masteredAt) {
			t.Error("Expected MasteredAt to be written exactly once")
		}
	})
}

func TestCalculateNextProgressDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)
	original := *progress

	_ = calculateNextProgress(progress, 5, now, params)

	if *progress != original {
		t.Error("Expected input progress to be unchanged")
	}
}
