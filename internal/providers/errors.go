package providers

import (
	"errors"
	"fmt"
)

// Common provider errors.
var (
	ErrNotConfigured  = errors.New("provider is not configured")
	ErrEmptyAudio     = errors.New("no audio provided")
	ErrEmptyText      = errors.New("no text provided")
	ErrUnknownVoice   = errors.New("unknown voice")
	ErrNoSpeech       = errors.New("no speech recognized")
	ErrEmptyResponse  = errors.New("provider returned an empty response")
	ErrUnsupportedFmt = errors.New("unsupported audio format")
)

// Operations reported in ProviderError.
const (
	OpDescribe   = "describe"
	OpTranscribe = "transcribe"
	OpSynthesize = "synthesize"
)

// ProviderError records which provider failed and during which operation.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failed", e.Provider, e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Wrap returns err as a ProviderError, or nil when err is nil.
func Wrap(provider, op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Provider == provider {
		return err
	}
	return &ProviderError{Provider: provider, Op: op, Err: err}
}
