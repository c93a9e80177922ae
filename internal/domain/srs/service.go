// Package srs implements the SM-2 spaced-repetition scheduler that
// decides when a learner should next review a vocabulary word.
package srs

import (
	"errors"
	"time"

	"github.com/bhashamitra/lingua-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress    = errors.New("word progress cannot be nil")
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")
	ErrInvalidDays    = errors.New("postpone days must be at least 1")
)

// MinQuality and MaxQuality bound the self-assessed recall quality
// accepted by the scheduler. 0 is a complete blackout, 5 a perfect
// recall; 3 and above count as successful.
const (
	MinQuality = 0
	MaxQuality = 5
)

// Service defines the interface for spaced-repetition scheduling
// operations.
type Service interface {
	// RecordReview computes new progress for a review with the given
	// recall quality. The input progress is not modified.
	RecordReview(
		progress *domain.WordProgress,
		quality int,
		now time.Time,
	) (*domain.WordProgress, error)

	// PostponeReview pushes the next review time forward by a number
	// of days without affecting the scheduling state.
	PostponeReview(
		progress *domain.WordProgress,
		days int,
		now time.Time,
	) (*domain.WordProgress, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// RecordReview implements the Service interface for applying a review.
func (s *defaultService) RecordReview(
	progress *domain.WordProgress,
	quality int,
	now time.Time,
) (*domain.WordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}

	if quality < MinQuality || quality > MaxQuality {
		return nil, ErrInvalidQuality
	}

	return calculateNextProgress(progress, quality, now, s.params), nil
}

// PostponeReview implements the Service interface for postponing reviews.
func (s *defaultService) PostponeReview(
	progress *domain.WordProgress,
	days int,
	now time.Time,
) (*domain.WordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := *progress
	next.NextReviewAt = progress.NextReviewAt.AddDate(0, 0, days)
	next.UpdatedAt = now

	return &next, nil
}
