package pronunciation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-audio/wav"
)

// RMS amplitude bands for the energy sub-score. Below tooQuietRMS the
// recording is mostly silence; above optimalMaxRMS it is likely
// clipping.
const (
	tooQuietRMS   = 0.01
	audibleRMS    = 0.03
	optimalMaxRMS = 0.5
)

// durationTolerance is the relative deviation from the expected
// duration still considered a good match.
const durationTolerance = 0.30

// Analysis holds the acoustic sub-scores extracted from a recording.
type Analysis struct {
	// EnergyScore rates the recording loudness 0-100 from its RMS
	// amplitude.
	EnergyScore float64 `json:"energy_score"`

	// DurationMatchScore rates 0-100 how close the recording length is
	// to the expected duration for the word.
	DurationMatchScore float64 `json:"duration_match_score"`

	// IsValid is false when the audio could not be fetched or decoded
	// and the scores above are degraded defaults.
	IsValid bool `json:"is_valid"`
}

// failedAnalysis is returned whenever the audio cannot be fetched or
// decoded. Acoustic scoring is best-effort and must never block the
// rest of the scoring pipeline, so the defaults are mildly penalizing
// on energy and neutral on duration.
func failedAnalysis() Analysis {
	return Analysis{
		EnergyScore:        50,
		DurationMatchScore: 75,
		IsValid:            false,
	}
}

// Analyzer extracts acoustic sub-scores from recorded audio. The
// recording is fetched from an HTTP(S) URL or read from a local path
// and decoded as WAV.
type Analyzer struct {
	client *http.Client
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer. If client is nil a default client
// with a 10 second timeout is used; if logger is nil the default
// logger is used.
func NewAnalyzer(client *http.Client, logger *slog.Logger) *Analyzer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Analyzer{
		client: client,
		logger: logger.With(slog.String("component", "audio_analyzer")),
	}
}

// Analyze fetches and decodes the recording at audioRef and computes
// the acoustic sub-scores. expectedDuration is how long a typical
// recording of the word lasts; zero means unknown and yields a neutral
// duration score.
//
// Analyze never returns an error: any fetch or decode failure degrades
// to default sub-scores with IsValid=false.
func (a *Analyzer) Analyze(ctx context.Context, audioRef string, expectedDuration time.Duration) Analysis {
	data, err := a.fetch(ctx, audioRef)
	if err != nil {
		a.logger.Warn("audio fetch failed, using default sub-scores",
			slog.String("audio_ref", audioRef),
			slog.String("error", err.Error()))
		return failedAnalysis()
	}

	rms, actualDuration, err := decodeWAV(data)
	if err != nil {
		a.logger.Warn("audio decode failed, using default sub-scores",
			slog.String("audio_ref", audioRef),
			slog.String("error", err.Error()))
		return failedAnalysis()
	}

	return Analysis{
		EnergyScore:        energyScoreFromRMS(rms),
		DurationMatchScore: durationMatchScore(actualDuration, expectedDuration),
		IsValid:            true,
	}
}

// fetch retrieves the audio bytes from an HTTP(S) URL or a local path.
func (a *Analyzer) fetch(ctx context.Context, audioRef string) ([]byte, error) {
	if audioRef == "" {
		return nil, fmt.Errorf("empty audio reference")
	}

	if strings.HasPrefix(audioRef, "http://") || strings.HasPrefix(audioRef, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioRef, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build audio request: %w", err)
		}

		resp, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch audio: %w", err)
		}
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				a.logger.Warn("failed to close audio response body",
					slog.String("error", closeErr.Error()))
			}
		}()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d fetching audio", resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read audio body: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(audioRef)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return data, nil
}

// decodeWAV decodes a WAV recording and returns its RMS amplitude
// (samples normalized to [-1, 1]) and duration.
func decodeWAV(data []byte) (rms float64, duration time.Duration, err error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return 0, 0, fmt.Errorf("not a valid WAV file")
	}

	duration, err = decoder.Duration()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read WAV duration: %w", err)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode WAV samples: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return 0, 0, fmt.Errorf("WAV file contains no samples")
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	maxAmp := float64(int64(1) << (bitDepth - 1))

	var sumSquares float64
	for _, sample := range buf.Data {
		normalized := float64(sample) / maxAmp
		sumSquares += normalized * normalized
	}
	rms = math.Sqrt(sumSquares / float64(len(buf.Data)))

	return rms, duration, nil
}

// energyScoreFromRMS maps an RMS amplitude to a 0-100 loudness score:
//
//	[0, 0.01)    too quiet          scales 0 -> 30
//	[0.01, 0.03) quiet but audible  scales 30 -> 80
//	[0.03, 0.5]  optimal            scales 80 -> 100
//	(0.5, 1]     possible clipping  scales down from 80, floor 60
func energyScoreFromRMS(rms float64) float64 {
	switch {
	case rms < tooQuietRMS:
		return rms / tooQuietRMS * 30
	case rms < audibleRMS:
		return 30 + (rms-tooQuietRMS)/(audibleRMS-tooQuietRMS)*50
	case rms <= optimalMaxRMS:
		return 80 + (rms-audibleRMS)/(optimalMaxRMS-audibleRMS)*20
	default:
		score := 80 - (rms-optimalMaxRMS)/(1-optimalMaxRMS)*20
		if score < 60 {
			score = 60
		}
		return score
	}
}

// durationMatchScore maps the actual recording length against the
// expected one. Within the 30% tolerance the score scales 80 -> 100 as
// the deviation shrinks to 0; beyond tolerance it scales down from 80
// with a floor of 0. An unknown expected duration yields a neutral 75.
func durationMatchScore(actual, expected time.Duration) float64 {
	if expected <= 0 {
		return 75
	}

	deviation := 1 - actual.Seconds()/expected.Seconds()
	if deviation < 0 {
		deviation = -deviation
	}

	if deviation <= durationTolerance {
		return 80 + (1-deviation/durationTolerance)*20
	}

	score := 80 - (deviation-durationTolerance)*100
	if score < 0 {
		score = 0
	}
	return score
}
