// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bhashamitra/lingua-api/internal/api/shared"
	"github.com/bhashamitra/lingua-api/internal/domain"
	"github.com/bhashamitra/lingua-api/internal/platform/logger"
	"github.com/bhashamitra/lingua-api/internal/redact"
	"github.com/bhashamitra/lingua-api/internal/service/review"
)

// Limits on the due-word batch size.
const (
	defaultDueLimit = 10
	maxDueLimit     = 50
)

// WordResponse represents the response data for a vocabulary word.
type WordResponse struct {
	ID                 string    `json:"id"`
	Language           string    `json:"language"`
	Text               string    `json:"text"`
	Romanization       string    `json:"romanization,omitempty"`
	Translation        string    `json:"translation,omitempty"`
	AudioURL           string    `json:"audio_url,omitempty"`
	ExpectedDurationMs int       `json:"expected_duration_ms,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// WordProgressResponse represents the response data for a learner's
// progress on a word.
type WordProgressResponse struct {
	LearnerID              string     `json:"learner_id"`
	WordID                 string     `json:"word_id"`
	EaseFactor             float64    `json:"ease_factor"`
	IntervalDays           int        `json:"interval_days"`
	Repetitions            int        `json:"repetitions"`
	LastReviewedAt         *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt           time.Time  `json:"next_review_at"`
	TimesReviewed          int        `json:"times_reviewed"`
	TimesCorrect           int        `json:"times_correct"`
	Accuracy               float64    `json:"accuracy"`
	BestPronunciationScore float64    `json:"best_pronunciation_score"`
	Mastered               bool       `json:"mastered"`
	MasteredAt             *time.Time `json:"mastered_at,omitempty"`
}

// SubmitReviewRequest represents the request body for submitting a
// recall quality.
type SubmitReviewRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

// PostponeRequest represents the request body for postponing a review.
type PostponeRequest struct {
	Days int `json:"days" validate:"required,min=1"`
}

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// GetDueWords handles GET /learners/{learnerID}/words/due requests.
// It retrieves the batch of words due for review, ordered new words
// first, then hardest, then most overdue. An optional limit query
// parameter caps the batch size.
func (h *ReviewHandler) GetDueWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := parsePathUUID(w, r, "learnerID", "Learner ID")
	if !ok {
		return
	}

	limit := defaultDueLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}
	if limit > maxDueLimit {
		limit = maxDueLimit
	}

	words, err := h.reviewService.GetDueWords(r.Context(), learnerID, limit)

	// Special case: nothing to review
	if errors.Is(err, review.ErrNoWordsDue) {
		log.Debug("no words due for review", slog.String("learner_id", learnerID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get due words"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := make([]WordResponse, 0, len(words))
	for _, word := range words {
		response = append(response, wordToResponse(word))
	}

	log.Debug("retrieved due words",
		slog.String("learner_id", learnerID.String()),
		slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// SubmitReview handles POST /learners/{learnerID}/words/{wordID}/review
// requests. It applies the recall quality to the learner's schedule for
// the word and returns the updated progress.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := parsePathUUID(w, r, "learnerID", "Learner ID")
	if !ok {
		return
	}
	wordID, ok := parsePathUUID(w, r, "wordID", "Word ID")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("word_id", wordID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("word_id", wordID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	progress, err := h.reviewService.SubmitReview(r.Context(), learnerID, wordID, *req.Quality)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review submitted",
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID.String()),
		slog.Int("quality", *req.Quality))
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}

// PostponeWord handles POST /learners/{learnerID}/words/{wordID}/postpone
// requests. It pushes the next review forward without changing the
// scheduling state.
func (h *ReviewHandler) PostponeWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := parsePathUUID(w, r, "learnerID", "Learner ID")
	if !ok {
		return
	}
	wordID, ok := parsePathUUID(w, r, "wordID", "Word ID")
	if !ok {
		return
	}

	var req PostponeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("word_id", wordID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	progress, err := h.reviewService.PostponeWord(r.Context(), learnerID, wordID, req.Days)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to postpone review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review postponed",
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID.String()),
		slog.Int("days", req.Days))
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}

// parsePathUUID extracts and parses a UUID path parameter, writing a
// 400 response and returning ok=false when it is missing or malformed.
func parsePathUUID(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	label string,
) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, label+" is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+label+" format")
		return uuid.Nil, false
	}

	return id, true
}

// wordToResponse converts a domain.Word to a WordResponse.
func wordToResponse(word *domain.Word) WordResponse {
	return WordResponse{
		ID:                 word.ID.String(),
		Language:           word.Language,
		Text:               word.Text,
		Romanization:       word.Romanization,
		Translation:        word.Translation,
		AudioURL:           word.AudioURL,
		ExpectedDurationMs: word.ExpectedDurationMs,
		CreatedAt:          word.CreatedAt,
		UpdatedAt:          word.UpdatedAt,
	}
}

// progressToResponse converts a domain.WordProgress to a
// WordProgressResponse. Zero timestamps become omitted fields.
func progressToResponse(progress *domain.WordProgress) WordProgressResponse {
	response := WordProgressResponse{
		LearnerID:              progress.LearnerID.String(),
		WordID:                 progress.WordID.String(),
		EaseFactor:             progress.EaseFactor,
		IntervalDays:           progress.IntervalDays,
		Repetitions:            progress.Repetitions,
		NextReviewAt:           progress.NextReviewAt,
		TimesReviewed:          progress.TimesReviewed,
		TimesCorrect:           progress.TimesCorrect,
		Accuracy:               progress.Accuracy(),
		BestPronunciationScore: progress.BestPronunciationScore,
		Mastered:               progress.Mastered,
	}

	if !progress.LastReviewedAt.IsZero() {
		t := progress.LastReviewedAt
		response.LastReviewedAt = &t
	}
	if !progress.MasteredAt.IsZero() {
		t := progress.MasteredAt
		response.MasteredAt = &t
	}

	return response
}
