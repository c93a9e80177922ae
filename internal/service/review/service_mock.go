package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/domain"
	"github.com/bhashamitra/lingua-api/internal/pronunciation"
)

// MockReviewService is a test double for the ReviewService interface.
// Each method delegates to the corresponding function field when set
// and returns zero values otherwise.
type MockReviewService struct {
	GetDueWordsFunc        func(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.Word, error)
	SubmitReviewFunc       func(ctx context.Context, learnerID, wordID uuid.UUID, quality int) (*domain.WordProgress, error)
	ScorePronunciationFunc func(ctx context.Context, learnerID, wordID uuid.UUID, attempt PronunciationAttempt) (*pronunciation.Result, error)
	PostponeWordFunc       func(ctx context.Context, learnerID, wordID uuid.UUID, days int) (*domain.WordProgress, error)
}

// Ensure MockReviewService implements ReviewService
var _ ReviewService = (*MockReviewService)(nil)

// GetDueWords implements ReviewService.GetDueWords
func (m *MockReviewService) GetDueWords(
	ctx context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]*domain.Word, error) {
	if m.GetDueWordsFunc != nil {
		return m.GetDueWordsFunc(ctx, learnerID, limit)
	}
	return nil, nil
}

// SubmitReview implements ReviewService.SubmitReview
func (m *MockReviewService) SubmitReview(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID uuid.UUID,
	quality int,
) (*domain.WordProgress, error) {
	if m.SubmitReviewFunc != nil {
		return m.SubmitReviewFunc(ctx, learnerID, wordID, quality)
	}
	return nil, nil
}

// ScorePronunciation implements ReviewService.ScorePronunciation
func (m *MockReviewService) ScorePronunciation(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID uuid.UUID,
	attempt PronunciationAttempt,
) (*pronunciation.Result, error) {
	if m.ScorePronunciationFunc != nil {
		return m.ScorePronunciationFunc(ctx, learnerID, wordID, attempt)
	}
	return nil, nil
}

// PostponeWord implements ReviewService.PostponeWord
func (m *MockReviewService) PostponeWord(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID uuid.UUID,
	days int,
) (*domain.WordProgress, error) {
	if m.PostponeWordFunc != nil {
		return m.PostponeWordFunc(ctx, learnerID, wordID, days)
	}
	return nil, nil
}
