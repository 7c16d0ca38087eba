package voice

import (
	"context"
)

// VoiceMetadata describes a provider. Name and Version are required.
type VoiceMetadata struct {
	Name        string
	Version     string
	Description string
	Emoji       string
	Local       bool // false means the provider calls a remote service
}

// TTSVoice is a voice offered by a TTS provider. ID is required.
type TTSVoice struct {
	ID          string
	Name        string
	Gender      string
	Description string
}

// TranscribeOptions are passed to STTProvider.Transcribe.
type TranscribeOptions struct {
	// Format is the declared audio format, e.g. "wav" or "pcm_s16le".
	Format string

	// Language is an optional language hint such as "en".
	Language string
}

// TranscribeResult is returned by STTProvider.Transcribe.
type TranscribeResult struct {
	Text       string
	DurationMs float64
	Confidence *float64 // 0..1, nil when the provider does not report one
}

// SynthesizeOptions are passed to TTSProvider.Synthesize.
type SynthesizeOptions struct {
	Voice string
	Speed float64 // 0 means provider default
}

// SynthesizeResult is returned by TTSProvider.Synthesize.
type SynthesizeResult struct {
	Audio      []byte
	Format     string
	SampleRate int // 0 when unknown
	DurationMs float64
}

// STTProvider is the speech-to-text capability.
type STTProvider interface {
	Metadata() VoiceMetadata
	Transcribe(ctx context.Context, audio []byte, opts *TranscribeOptions) (*TranscribeResult, error)
}

// TTSProvider is the text-to-speech capability.
type TTSProvider interface {
	Metadata() VoiceMetadata
	Voices() []TTSVoice
	Synthesize(ctx context.Context, text string, opts *SynthesizeOptions) (*SynthesizeResult, error)
}
