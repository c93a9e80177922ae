package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bhashamitra/lingua-api/internal/api/shared"
	"github.com/bhashamitra/lingua-api/internal/platform/logger"
	"github.com/bhashamitra/lingua-api/internal/platform/tts"
	"github.com/bhashamitra/lingua-api/internal/store"
)

// AudioHandler serves reference audio for vocabulary words, falling
// back to on-demand speech synthesis when a word has no pre-recorded
// clip.
type AudioHandler struct {
	wordStore    store.WordStore
	synthesizer  tts.Provider
	defaultVoice string
	logger       *slog.Logger
}

// NewAudioHandler creates a new AudioHandler. The synthesizer may be
// nil, in which case words without pre-recorded audio return 404.
func NewAudioHandler(
	wordStore store.WordStore,
	synthesizer tts.Provider,
	defaultVoice string,
	logger *slog.Logger,
) *AudioHandler {
	if wordStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("wordStore cannot be nil for AudioHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AudioHandler")
	}

	return &AudioHandler{
		wordStore:    wordStore,
		synthesizer:  synthesizer,
		defaultVoice: defaultVoice,
		logger:       logger.With(slog.String("component", "audio_handler")),
	}
}

// GetWordAudio handles GET /words/{wordID}/audio requests.
// Words with a pre-recorded clip redirect to it; otherwise the audio is
// synthesized on demand. An optional voice query parameter selects the
// provider voice.
func (h *AudioHandler) GetWordAudio(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	wordID, ok := parsePathUUID(w, r, "wordID", "Word ID")
	if !ok {
		return
	}

	word, err := h.wordStore.GetByID(r.Context(), wordID)
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Word not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get word audio", err)
		return
	}

	if word.AudioURL != "" {
		log.Debug("redirecting to pre-recorded audio",
			slog.String("word_id", wordID.String()))
		http.Redirect(w, r, word.AudioURL, http.StatusFound)
		return
	}

	if h.synthesizer == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "No audio available for this word")
		return
	}

	voice := r.URL.Query().Get("voice")
	if voice == "" {
		voice = h.defaultVoice
	}

	clip, err := h.synthesizer.Synthesize(r.Context(), tts.SynthesisRequest{
		Text:     word.Text,
		Language: word.Language,
		Voice:    voice,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("serving synthesized audio",
		slog.String("word_id", wordID.String()),
		slog.String("provider", clip.Provider),
		slog.Int("bytes", len(clip.Audio)))

	w.Header().Set("Content-Type", clip.MIMEType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(clip.Audio); err != nil {
		log.Warn("failed to write audio response",
			slog.String("error", err.Error()))
	}
}
