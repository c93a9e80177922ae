package pronunciation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases and trims", "  Kamal  ", "kamal"},
		{"strips punctuation", "kamal!?.", "kamal"},
		{"collapses whitespace", "nīla   kamal", "nīla kamal"},
		{"devanagari untouched", "कमल", "कमल"},
		{"empty", "", ""},
		{"only punctuation", "!?.,", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestSimilarityRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, similarityRatio("kamal", "kamal"))
	assert.Equal(t, 0.0, similarityRatio("", "kamal"), "empty side degenerates to 0")
	assert.Equal(t, 0.0, similarityRatio("kamal", ""))
	assert.InDelta(t, 2.0*5/11, similarityRatio("kamal", "kamala"), 1e-9)
}

func TestScoreExactMatchScenario(t *testing.T) {
	t.Parallel()
	scorer := NewScorer()

	// कमल at confidence 0.9 with neutral acoustics: weighted sum is
	// 45 + 30 + 11.25 + 3.75 = 90, exact-match bonus caps at 100.
	result := scorer.Score(Attempt{
		Transcription: "कमल",
		ExpectedWord:  "कमल",
		STTConfidence: 0.9,
	})

	assert.True(t, result.ExactMatch)
	assert.Equal(t, 100.0, result.TextMatchScore)
	assert.Equal(t, 100.0, result.FinalScore)
	assert.Equal(t, 3, result.Stars)
	assert.Equal(t, FeedbackPerfect, result.FeedbackKey)
}

func TestScoreConfidenceHandling(t *testing.T) {
	t.Parallel()
	scorer := NewScorer()

	t.Run("low confidence floored for non-empty transcription", func(t *testing.T) {
		// Unrelated transcription so the text score is 0; only the
		// confidence term and neutral acoustics contribute:
		// 0.5*30 + 0.15*75 + 0.05*75 = 30.
		result := scorer.Score(Attempt{
			Transcription: "xxxx",
			ExpectedWord:  "кмл",
			STTConfidence: 0.05,
		})

		assert.InDelta(t, 30.0, result.FinalScore, 1e-9)
	})

	t.Run("no floor for empty transcription", func(t *testing.T) {
		result := scorer.Score(Attempt{
			Transcription: "",
			ExpectedWord:  "kamal",
			STTConfidence: 0.05,
		})

		// 0.5*5 + 0 + 11.25 + 3.75 = 17.5
		assert.InDelta(t, 17.5, result.FinalScore, 1e-9)
		assert.False(t, result.ExactMatch)
	})

	t.Run("confidence above 1 clamped", func(t *testing.T) {
		withBug := scorer.Score(Attempt{
			Transcription: "kamal",
			ExpectedWord:  "kamal",
			STTConfidence: 37.5, // upstream bug
		})
		clean := scorer.Score(Attempt{
			Transcription: "kamal",
			ExpectedWord:  "kamal",
			STTConfidence: 1.0,
		})

		assert.Equal(t, clean.FinalScore, withBug.FinalScore)
	})
}

func TestScoreRomanizationMatch(t *testing.T) {
	t.Parallel()
	scorer := NewScorer()

	result := scorer.Score(Attempt{
		Transcription:        "kamal",
		ExpectedWord:         "कमल",
		ExpectedRomanization: "kamal",
		STTConfidence:        0.9,
	})

	assert.True(t, result.ExactMatch, "romanization equality counts as exact match")
	assert.Equal(t, 100.0, result.TextMatchScore)
	assert.Equal(t, 100.0, result.FinalScore)
}

func TestScoreTakesMaxOfWordAndRomanizationRatios(t *testing.T) {
	t.Parallel()
	scorer := NewScorer()

	withRomanization := scorer.Score(Attempt{
		Transcription:        "kamala",
		ExpectedWord:         "कमल",
		ExpectedRomanization: "kamal",
		STTConfidence:        0.9,
	})
	withoutRomanization := scorer.Score(Attempt{
		Transcription: "kamala",
		ExpectedWord:  "कमल",
		STTConfidence: 0.9,
	})

	assert.Greater(t, withRomanization.TextMatchScore, withoutRomanization.TextMatchScore)
	assert.False(t, withRomanization.ExactMatch)
}

func TestMapStarsBoundaries(t *testing.T) {
	t.Parallel()
	scorer := NewScorer()

	testCases := []struct {
		final    float64
		stars    int
		feedback FeedbackKey
	}{
		{100, 3, FeedbackPerfect},
		{85.0, 3, FeedbackPerfect},
		{84.99, 2, FeedbackGood},
		{65.0, 2, FeedbackGood},
		{64.99, 1, FeedbackTryAgain},
		{40.0, 1, FeedbackTryAgain},
		{39.9, 0, FeedbackTryAgain},
		{0, 0, FeedbackTryAgain},
	}

	for _, tc := range testCases {
		stars, feedback := scorer.mapStars(tc.final)
		assert.Equal(t, tc.stars, stars, "final=%v", tc.final)
		assert.Equal(t, tc.feedback, feedback, "final=%v", tc.final)
	}
}

func TestScorePoints(t *testing.T) {
	t.Parallel()
	scorer := NewScorer()

	t.Run("base points plus personal best bonus", func(t *testing.T) {
		result := scorer.Score(Attempt{
			Transcription: "kamal",
			ExpectedWord:  "kamal",
			STTConfidence: 0.9,
			PreviousBest:  80,
		})

		assert.Equal(t, 3, result.Stars)
		assert.True(t, result.NewPersonalBest)
		assert.Equal(t, 25+10, result.Points)
	})

	t.Run("no bonus when previous best stands", func(t *testing.T) {
		result := scorer.Score(Attempt{
			Transcription: "kamal",
			ExpectedWord:  "kamal",
			STTConfidence: 0.9,
			PreviousBest:  100,
		})

		assert.False(t, result.NewPersonalBest)
		assert.Equal(t, 25, result.Points)
	})

	t.Run("zero stars still award participation points", func(t *testing.T) {
		result := scorer.Score(Attempt{
			Transcription: "",
			ExpectedWord:  "kamal",
			STTConfidence: 0,
			Acoustic:      &Analysis{EnergyScore: 0, DurationMatchScore: 0, IsValid: true},
			PreviousBest:  50,
		})

		assert.Equal(t, 0, result.Stars)
		assert.Equal(t, 5, result.Points)
	})
}

func TestScoreUsesSuppliedAcousticScores(t *testing.T) {
	t.Parallel()
	scorer := NewScorer()

	result := scorer.Score(Attempt{
		Transcription: "kamal",
		ExpectedWord:  "kamal",
		STTConfidence: 1.0,
		Acoustic: &Analysis{
			EnergyScore:        100,
			DurationMatchScore: 100,
			IsValid:            true,
		},
	})

	assert.Equal(t, 100.0, result.EnergyScore)
	assert.Equal(t, 100.0, result.DurationMatchScore)
	assert.Equal(t, 100.0, result.FinalScore)
}

func TestScoreNeutralDefaultsWithoutAudio(t *testing.T) {
	t.Parallel()
	scorer := NewScorer()

	result := scorer.Score(Attempt{
		Transcription: "nila",
		ExpectedWord:  "kamal",
		STTConfidence: 0.5,
	})

	assert.Equal(t, 75.0, result.EnergyScore)
	assert.Equal(t, 75.0, result.DurationMatchScore)
}
