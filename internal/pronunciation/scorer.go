// Package pronunciation scores a learner's recorded pronunciation of a
// vocabulary word. It combines the speech recognizer's transcription
// and confidence with a text-similarity ratio and optional acoustic
// sub-scores into a 0-100 final score, a 0-3 star rating, a feedback
// category, and awarded points.
package pronunciation

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// FeedbackKey identifies the feedback message category shown to the
// learner for an attempt.
type FeedbackKey string

// Possible feedback categories
const (
	FeedbackPerfect  FeedbackKey = "perfect"
	FeedbackGood     FeedbackKey = "good"
	FeedbackTryAgain FeedbackKey = "try_again"
)

// Config holds the scoring weights and thresholds.
type Config struct {
	// Weights of the four sub-scores in the final score. They sum to 1.
	ConfidenceWeight float64
	TextMatchWeight  float64
	EnergyWeight     float64
	DurationWeight   float64

	// ExactMatchBonus is added when the normalized transcription equals
	// the expected word or its romanization. The final score stays
	// capped at 100.
	ExactMatchBonus float64

	// LowConfidenceCutoff and ConfidenceFloor implement the recognizer
	// confidence floor: a clamped confidence below the cutoff is raised
	// to the floor when the transcription is non-empty, so a valid but
	// underconfident recognition is not zeroed out.
	LowConfidenceCutoff float64
	ConfidenceFloor     float64

	// NeutralEnergyScore and NeutralDurationScore are used when no
	// audio analysis is available for the attempt.
	NeutralEnergyScore   float64
	NeutralDurationScore float64

	// Star thresholds, inclusive lower bounds on the final score.
	ThreeStarThreshold float64
	TwoStarThreshold   float64
	OneStarThreshold   float64

	// BasePoints awarded per star count (index = stars).
	BasePoints [4]int

	// PersonalBestBonus is added when the final score beats the
	// caller-supplied previous best.
	PersonalBestBonus int
}

// DefaultConfig returns the standard scoring configuration.
//
// Neutral acoustic defaults are 75 for both sub-scores; with a full
// text match and confidence 0.9 that places an unanalyzed attempt at
// 90 before the exact-match bonus.
func DefaultConfig() Config {
	return Config{
		ConfidenceWeight: 0.50,
		TextMatchWeight:  0.30,
		EnergyWeight:     0.15,
		DurationWeight:   0.05,

		ExactMatchBonus: 10,

		LowConfidenceCutoff: 0.10,
		ConfidenceFloor:     0.30,

		NeutralEnergyScore:   75.0,
		NeutralDurationScore: 75.0,

		ThreeStarThreshold: 85,
		TwoStarThreshold:   65,
		OneStarThreshold:   40,

		BasePoints: [4]int{5, 10, 15, 25},

		PersonalBestBonus: 10,
	}
}

// Attempt is one pronunciation attempt to score.
type Attempt struct {
	// Transcription is the recognizer's output for the recording.
	Transcription string

	// ExpectedWord is the target-script form the learner was asked to
	// say; ExpectedRomanization is its optional latin-script form.
	ExpectedWord         string
	ExpectedRomanization string

	// STTConfidence is the recognizer's confidence, nominally in
	// [0, 1]. Out-of-range values from upstream are clamped.
	STTConfidence float64

	// Acoustic carries the audio analysis sub-scores when a recording
	// was analyzed. Nil means no audio was available and neutral
	// defaults apply.
	Acoustic *Analysis

	// PreviousBest is the learner's best final score for this word so
	// far, used only for the personal-best bonus.
	PreviousBest float64
}

// Result is the outcome of scoring one attempt.
type Result struct {
	TextMatchScore     float64     `json:"text_match_score"`
	EnergyScore        float64     `json:"energy_score"`
	DurationMatchScore float64     `json:"duration_match_score"`
	FinalScore         float64     `json:"final_score"`
	Stars              int         `json:"stars"`
	FeedbackKey        FeedbackKey `json:"feedback_key"`
	ExactMatch         bool        `json:"exact_match"`
	Points             int         `json:"points"`
	NewPersonalBest    bool        `json:"new_personal_best"`
}

// Scorer computes pronunciation scores. It is stateless and safe for
// concurrent use.
type Scorer struct {
	config Config
}

// NewScorer creates a Scorer with the default configuration.
func NewScorer() *Scorer {
	return NewScorerWithConfig(DefaultConfig())
}

// NewScorerWithConfig creates a Scorer with a custom configuration.
func NewScorerWithConfig(config Config) *Scorer {
	return &Scorer{config: config}
}

// Score computes the full result for one attempt. It never fails: bad
// inputs only drag the score down.
func (s *Scorer) Score(attempt Attempt) Result {
	cfg := s.config

	transcription := Normalize(attempt.Transcription)
	expected := Normalize(attempt.ExpectedWord)
	romanization := Normalize(attempt.ExpectedRomanization)

	confidence := clamp01(attempt.STTConfidence)
	if confidence < cfg.LowConfidenceCutoff && transcription != "" {
		confidence = cfg.ConfidenceFloor
	}

	textMatch := similarityRatio(transcription, expected)
	if romanization != "" {
		if r := similarityRatio(transcription, romanization); r > textMatch {
			textMatch = r
		}
	}
	textMatchScore := textMatch * 100

	exactMatch := transcription != "" &&
		(transcription == expected || (romanization != "" && transcription == romanization))

	energyScore := cfg.NeutralEnergyScore
	durationScore := cfg.NeutralDurationScore
	if attempt.Acoustic != nil {
		energyScore = attempt.Acoustic.EnergyScore
		durationScore = attempt.Acoustic.DurationMatchScore
	}

	final := cfg.ConfidenceWeight*(confidence*100) +
		cfg.TextMatchWeight*textMatchScore +
		cfg.EnergyWeight*energyScore +
		cfg.DurationWeight*durationScore

	if exactMatch {
		final += cfg.ExactMatchBonus
	}
	if final > 100 {
		final = 100
	}

	stars, feedback := s.mapStars(final)

	points := cfg.BasePoints[stars]
	newBest := final > attempt.PreviousBest
	if newBest {
		points += cfg.PersonalBestBonus
	}

	return Result{
		TextMatchScore:     textMatchScore,
		EnergyScore:        energyScore,
		DurationMatchScore: durationScore,
		FinalScore:         final,
		Stars:              stars,
		FeedbackKey:        feedback,
		ExactMatch:         exactMatch,
		Points:             points,
		NewPersonalBest:    newBest,
	}
}

// mapStars converts a final score into a star count and feedback
// category. Thresholds are inclusive lower bounds.
func (s *Scorer) mapStars(final float64) (int, FeedbackKey) {
	cfg := s.config
	switch {
	case final >= cfg.ThreeStarThreshold:
		return 3, FeedbackPerfect
	case final >= cfg.TwoStarThreshold:
		return 2, FeedbackGood
	case final >= cfg.OneStarThreshold:
		return 1, FeedbackTryAgain
	default:
		return 0, FeedbackTryAgain
	}
}

// Normalize prepares text for comparison: lower-cased, trimmed,
// punctuation and symbols removed, runs of whitespace collapsed to a
// single space.
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))

	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, lowered)

	return strings.Join(strings.Fields(stripped), " ")
}

// similarityRatio computes a difflib SequenceMatcher ratio between two
// normalized strings, comparing rune by rune. Either side being empty
// degenerates to 0.
func similarityRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
