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

const defaultGoogleEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// GoogleProvider synthesizes speech with the Google Cloud
// Text-to-Speech REST API.
type GoogleProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// Ensure GoogleProvider implements Provider
var _ Provider = (*GoogleProvider)(nil)

// NewGoogleProvider creates a GoogleProvider. If client is nil a
// default client with a 15 second timeout is used; if logger is nil the
// default logger is used.
func NewGoogleProvider(apiKey string, client *http.Client, logger *slog.Logger) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google TTS API key cannot be empty")
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GoogleProvider{
		apiKey:   apiKey,
		endpoint: defaultGoogleEndpoint,
		client:   client,
		logger:   logger.With(slog.String("component", "google_tts")),
	}, nil
}

// Name implements Provider.Name
func (p *GoogleProvider) Name() string { return "google" }

type googleSynthesisRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name,omitempty"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type googleSynthesisResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize implements Provider.Synthesize
func (p *GoogleProvider) Synthesize(ctx context.Context, req SynthesisRequest) (*Clip, error) {
	if req.Text == "" {
		return nil, ErrEmptyText
	}

	var body googleSynthesisRequest
	body.Input.Text = req.Text
	body.Voice.LanguageCode = req.Language
	body.Voice.Name = req.Voice
	body.AudioConfig.AudioEncoding = "MP3"

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrSynthesisFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.endpoint+"?key="+p.apiKey,
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", ErrSynthesisFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

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

	var decoded googleSynthesisResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrSynthesisFailed, err)
	}
	if decoded.AudioContent == "" {
		return nil, fmt.Errorf("%w: response contains no audio", ErrSynthesisFailed)
	}

	audio, err := base64.StdEncoding.DecodeString(decoded.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode audio content: %v", ErrSynthesisFailed, err)
	}

	p.logger.Debug("synthesized clip",
		slog.String("language", req.Language),
		slog.Int("bytes", len(audio)))

	return &Clip{
		Audio:    audio,
		MIMEType: "audio/mpeg",
		Provider: p.Name(),
	}, nil
}
