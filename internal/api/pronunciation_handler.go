package api

import (
	"log/slog"
	"net/http"

	"github.com/bhashamitra/lingua-api/internal/api/shared"
	"github.com/bhashamitra/lingua-api/internal/platform/logger"
	"github.com/bhashamitra/lingua-api/internal/redact"
	"github.com/bhashamitra/lingua-api/internal/service/review"
)

// ScorePronunciationRequest represents the request body for scoring a
// pronunciation attempt. The transcription may legitimately be empty
// when the recognizer heard nothing; the attempt still scores, just
// poorly.
type ScorePronunciationRequest struct {
	Transcription string  `json:"transcription"`
	STTConfidence float64 `json:"stt_confidence"`
	AudioURL      string  `json:"audio_url,omitempty" validate:"omitempty,max=2048"`
}

// PronunciationHandler handles pronunciation scoring HTTP requests.
type PronunciationHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewPronunciationHandler creates a new PronunciationHandler.
func NewPronunciationHandler(
	reviewService review.ReviewService,
	logger *slog.Logger,
) *PronunciationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PronunciationHandler")
	}

	return &PronunciationHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "pronunciation_handler")),
	}
}

// ScorePronunciation handles
// POST /learners/{learnerID}/words/{wordID}/pronunciation requests.
// It scores the attempt against the word's expected form and returns
// the full scoring breakdown.
func (h *PronunciationHandler) ScorePronunciation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := parsePathUUID(w, r, "learnerID", "Learner ID")
	if !ok {
		return
	}
	wordID, ok := parsePathUUID(w, r, "wordID", "Word ID")
	if !ok {
		return
	}

	var req ScorePronunciationRequest
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

	result, err := h.reviewService.ScorePronunciation(
		r.Context(),
		learnerID,
		wordID,
		review.PronunciationAttempt{
			Transcription: req.Transcription,
			STTConfidence: req.STTConfidence,
			AudioURL:      req.AudioURL,
		},
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to score pronunciation"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("pronunciation scored",
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID.String()),
		slog.Float64("final_score", result.FinalScore))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
