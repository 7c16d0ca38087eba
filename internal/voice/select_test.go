package voice

import (
	"testing"
)

func TestFirstProvider_Empty(t *testing.T) {
	if _, ok := FirstProvider([]any{}, IsSTTProvider); ok {
		t.Error("FirstProvider([]) found a provider")
	}
	if _, ok := FirstProvider(nil, IsTTSProvider); ok {
		t.Error("FirstProvider(nil) found a provider")
	}
}

func TestFirstProvider_SkipsInvalidAndTakesFirstMatch(t *testing.T) {
	first := &fakeSTT{meta: validMeta("first")}
	second := &fakeSTT{meta: validMeta("second")}
	candidates := []any{
		struct{}{},
		&fakeSTT{meta: VoiceMetadata{Name: "no-version"}},
		first,
		second,
	}

	got, ok := FirstProvider(candidates, IsSTTProvider)
	if !ok {
		t.Fatal("FirstProvider() found nothing")
	}
	if got.Metadata().Name != "first" {
		t.Errorf("FirstProvider() = %q, want %q", got.Metadata().Name, "first")
	}
}

func TestFirstProvider_NoneValid(t *testing.T) {
	candidates := []any{"a", 1, &fakeTTS{meta: validMeta("tts")}}
	if _, ok := FirstProvider(candidates, IsSTTProvider); ok {
		t.Error("FirstProvider() accepted a non-conforming candidate")
	}
}
