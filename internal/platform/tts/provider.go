// Package tts synthesizes reference audio for vocabulary words. It
// defines a Provider abstraction over external text-to-speech APIs and
// a Chain that tries providers in order, caching successful clips.
package tts

import (
	"context"
	"errors"
)

// Common errors for TTS providers
var (
	// ErrEmptyText indicates a synthesis request without text.
	ErrEmptyText = errors.New("synthesis text cannot be empty")

	// ErrSynthesisFailed indicates that a provider could not produce
	// audio for the request.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrNoProviders indicates that a chain has no providers configured.
	ErrNoProviders = errors.New("no speech providers configured")
)

// SynthesisRequest describes the audio to synthesize.
type SynthesisRequest struct {
	// Text is the target-script text to speak.
	Text string

	// Language is a BCP-47 style tag, e.g. "hi-IN".
	Language string

	// Voice names the provider voice to use. Providers fall back to a
	// sensible default when it is empty or unknown to them.
	Voice string
}

// Clip is a synthesized audio clip.
type Clip struct {
	// Audio holds the encoded audio bytes.
	Audio []byte

	// MIMEType describes the audio encoding, e.g. "audio/mpeg".
	MIMEType string

	// Provider names the provider that produced the clip.
	Provider string
}

// Provider synthesizes speech from text.
type Provider interface {
	// Name identifies the provider in logs and Clip metadata.
	Name() string

	// Synthesize produces an audio clip for the request.
	// Returns an error wrapping ErrSynthesisFailed when the upstream
	// API rejects the request or is unreachable.
	Synthesize(ctx context.Context, req SynthesisRequest) (*Clip, error)
}
