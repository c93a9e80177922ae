package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultSarvamEndpoint = "https://api.sarvam.ai/text-to-speech"

// SarvamProvider synthesizes speech with the Sarvam AI text-to-speech
// API, which specializes in Indian languages.
type SarvamProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// Ensure SarvamProvider implements Provider
var _ Provider = (*SarvamProvider)(nil)

// NewSarvamProvider creates a SarvamProvider. If client is nil a
// default client with a 15 second timeout is used; if logger is nil the
// default logger is used.
func NewSarvamProvider(apiKey string, client *http.Client, logger *slog.Logger) (*SarvamProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sarvam API key cannot be empty")
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SarvamProvider{
		apiKey:   apiKey,
		endpoint: defaultSarvamEndpoint,
		client:   client,
		logger:   logger.With(slog.String("component", "sarvam_tts")),
	}, nil
}

// Name implements Provider.Name
func (p *SarvamProvider) Name() string { return "sarvam" }

type sarvamSynthesisRequest struct {
	Text               string `json:"text"`
	TargetLanguageCode string `json:"target_language_code"`
	Speaker            string `json:"speaker,omitempty"`
}

type sarvamSynthesisResponse struct {
	Audios []string `json:"audios"`
}

// Synthesize implements Provider.Synthesize
func (p *SarvamProvider) Synthesize(ctx context.Context, req SynthesisRequest) (*Clip, error) {
	if req.Text == "" {
		return nil, ErrEmptyText
	}

	payload, err := json.Marshal(sarvamSynthesisRequest{
		Text:               req.Text,
		TargetLanguageCode: req.Language,
		Speaker:            req.Voice,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrSynthesisFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", ErrSynthesisFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-subscription-key", p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrSynthesisFailed, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Warn("failed to close response body",
				slog.String("error", closeErr.Error()))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status %d: %s",
			ErrSynthesisFailed, resp.StatusCode, snippet)
	}

	var decoded sarvamSynthesisResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrSynthesisFailed, err)
	}
	if len(decoded.Audios) == 0 || decoded.Audios[0] == "" {
		return nil, fmt.Errorf("%w: response contains no audio", ErrSynthesisFailed)
	}

	audio, err := base64.StdEncoding.DecodeString(decoded.Audios[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode audio content: %v", ErrSynthesisFailed, err)
	}

	p.logger.Debug("synthesized clip",
		slog.String("language", req.Language),
		slog.Int("bytes", len(audio)))

	return &Clip{
		Audio:    audio,
		MIMEType: "audio/wav",
		Provider: p.Name(),
	}, nil
}
