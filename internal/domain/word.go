package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Word
var (
	ErrEmptyWordText     = errors.New("word text cannot be empty")
	ErrEmptyWordLanguage = errors.New("word language cannot be empty")
	ErrInvalidDuration   = errors.New("expected duration must be greater than or equal to 0")
)

// Word is a single vocabulary item a learner studies: the target-script
// text, an optional romanization, a translation, and optional reference
// audio used by pronunciation practice.
type Word struct {
	ID           uuid.UUID `json:"id"`
	Language     string    `json:"language"` // BCP-47 style tag, e.g. "hi-IN"
	Text         string    `json:"text"`     // target-script form, e.g. "कमल"
	Romanization string    `json:"romanization,omitempty"`
	Translation  string    `json:"translation,omitempty"`

	// AudioURL points at reference audio for the word, if any. It may be
	// an HTTP(S) URL or a local path; retrieval is best-effort.
	AudioURL string `json:"audio_url,omitempty"`

	// ExpectedDurationMs is how long a typical recording of this word
	// lasts, used by the duration sub-score. Zero means unknown.
	ExpectedDurationMs int `json:"expected_duration_ms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWord creates a new vocabulary word with a generated ID.
func NewWord(language, text, romanization, translation string) (*Word, error) {
	now := time.Now().UTC()
	w := &Word{
		ID:           uuid.New(),
		Language:     language,
		Text:         text,
		Romanization: romanization,
		Translation:  translation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks if the Word has valid data.
// Returns an error if any field fails validation.
func (w *Word) Validate() error {
	if w.Text == "" {
		return ErrEmptyWordText
	}

	if w.Language == "" {
		return ErrEmptyWordLanguage
	}

	if w.ExpectedDurationMs < 0 {
		return ErrInvalidDuration
	}

	return nil
}
