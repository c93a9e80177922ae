package srs

import (
	"math"
	"time"

	"github.com/bhashamitra/lingua-api/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease factor update for a
// review of the given quality.
//
// The formula is the textbook SM-2 adjustment:
//
//	EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// A perfect recall (q=5) adds 0.1; a complete blackout (q=0) subtracts
// 0.8. The result is clamped to params.MinEaseFactor from below and is
// applied on every review, successful or not. There is no upper clamp,
// so sustained perfect recall keeps growing the ease factor and with it
// the review intervals.
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	q := float64(quality)
	newEF := currentEF + (0.1 - (5-q)*(0.08+(5-q)*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the next interval in days for a
// successful recall.
//
// The interval progression follows SM-2: the first success in a streak
// schedules 1 day out, the second 6 days, and every later success
// multiplies the previous interval by the ease factor. The ease factor
// used here is the value from before this review's ease update, which
// keeps the third-success interval equal to round(6 * EF) with the EF
// the learner earned on the second success.
func calculateNewInterval(
	currentInterval int,
	repetitions int,
	easeFactor float64,
	params *Params,
) int {
	switch {
	case repetitions == 0:
		return params.FirstInterval
	case repetitions == 1:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// qualifiesForMastery reports whether the updated progress clears the
// mastery gates: a long enough interval (strictly greater than the
// configured minimum), enough total reviews, and high enough accuracy.
func qualifiesForMastery(progress *domain.WordProgress, params *Params) bool {
	if progress.IntervalDays <= params.MasteryMinIntervalDays {
		return false
	}
	if progress.TimesReviewed < params.MasteryMinReviews {
		return false
	}
	return progress.Accuracy() >= params.MasteryMinAccuracy
}

// calculateNextProgress creates a new WordProgress with updated values
// for a review of the given quality.
//
// It follows the immutable update pattern: the input progress is never
// modified, a fresh copy carries the new state. The update order
// matters and is applied as:
//
//  1. Bump the review counter and last-reviewed timestamp.
//  2. Successful recall (quality >= pass threshold): bump the correct
//     counter, compute the next interval from the previous interval and
//     the pre-update ease factor, then extend the repetition streak.
//  3. Failed recall: reset the streak to 0 and the interval to 1 day.
//  4. Update the ease factor (success or failure alike).
//  5. Schedule the next review at now + interval days.
//  6. Check the mastery gates. Mastery is one-way: once set it is never
//     cleared, and the mastered-at timestamp is written exactly once.
func calculateNextProgress(
	progress *domain.WordProgress,
	quality int,
	now time.Time,
	params *Params,
) *domain.WordProgress {
	next := *progress

	next.TimesReviewed++
	next.LastReviewedAt = now

	if quality >= params.PassThreshold {
		next.TimesCorrect++
		next.IntervalDays = calculateNewInterval(
			progress.IntervalDays,
			progress.Repetitions,
			progress.EaseFactor,
			params,
		)
		next.Repetitions = progress.Repetitions + 1
	} else {
		next.Repetitions = 0
		next.IntervalDays = 1
	}

	next.EaseFactor = calculateNewEaseFactor(progress.EaseFactor, quality, params)

	next.NextReviewAt = now.AddDate(0, 0, next.IntervalDays)

	if !next.Mastered && qualifiesForMastery(&next, params) {
		next.Mastered = true
		next.MasteredAt = now
	}

	next.UpdatedAt = now

	return &next
}
