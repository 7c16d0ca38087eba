package providers

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	if Wrap("piper", OpSynthesize, nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}

	err := Wrap("piper", OpSynthesize, ErrUnknownVoice)
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a *ProviderError", err)
	}
	if pe.Provider != "piper" || pe.Op != OpSynthesize {
		t.Errorf("ProviderError = %+v", pe)
	}
	if !errors.Is(err, ErrUnknownVoice) {
		t.Error("wrapped error lost its cause")
	}
	if err.Error() != "piper: unknown voice" {
		t.Errorf("Error() = %q", err.Error())
	}

	if again := Wrap("piper", OpSynthesize, err); again != err {
		t.Error("wrapping twice for the same provider should be a no-op")
	}
}
