package voice

import (
	"testing"
)

func TestIsVoiceMetadata(t *testing.T) {
	tests := []struct {
		name string
		meta VoiceMetadata
		want bool
	}{
		{name: "name and version", meta: VoiceMetadata{Name: "n", Version: "1"}, want: true},
		{name: "all fields", meta: VoiceMetadata{Name: "n", Version: "1", Description: "d", Emoji: "🎙", Local: true}, want: true},
		{name: "missing version", meta: VoiceMetadata{Name: "n"}, want: false},
		{name: "missing name", meta: VoiceMetadata{Version: "1"}, want: false},
		{name: "empty", meta: VoiceMetadata{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVoiceMetadata(tt.meta); got != tt.want {
				t.Errorf("IsVoiceMetadata(%+v) = %v, want %v", tt.meta, got, tt.want)
			}
		})
	}
}

func TestIsSTTProvider(t *testing.T) {
	var typedNil *fakeSTT

	tests := []struct {
		name string
		x    any
		want bool
	}{
		{name: "empty struct", x: struct{}{}, want: false},
		{name: "nil", x: nil, want: false},
		{name: "typed nil", x: typedNil, want: false},
		{name: "string", x: "stt", want: false},
		{name: "valid", x: &fakeSTT{meta: VoiceMetadata{Name: "n", Version: "1"}}, want: true},
		{name: "invalid metadata", x: &fakeSTT{meta: VoiceMetadata{Name: "n"}}, want: false},
		{name: "tts provider is not stt", x: &fakeTTS{meta: validMeta("tts")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, got := IsSTTProvider(tt.x)
			if got != tt.want {
				t.Errorf("IsSTTProvider() = %v, want %v", got, tt.want)
			}
			if got && p == nil {
				t.Error("IsSTTProvider() accepted but returned nil provider")
			}
		})
	}
}

func TestIsTTSProvider(t *testing.T) {
	tests := []struct {
		name string
		x    any
		want bool
	}{
		{
			name: "valid with voices",
			x: &fakeTTS{meta: validMeta("t"), voices: []TTSVoice{
				{ID: "v1", Name: "Voice1", Gender: "female", Description: "Test"},
				{ID: "v2"},
			}},
			want: true,
		},
		{name: "valid without voices", x: &fakeTTS{meta: validMeta("t")}, want: true},
		{
			name: "voice missing id",
			x:    &fakeTTS{meta: validMeta("t"), voices: []TTSVoice{{ID: "v1"}, {Name: "nameless"}}},
			want: false,
		},
		{name: "invalid metadata", x: &fakeTTS{meta: VoiceMetadata{Version: "1"}}, want: false},
		{name: "stt provider is not tts", x: &fakeSTT{meta: validMeta("s")}, want: false},
		{name: "panics describing voices", x: &panickyTTS{fakeTTS{meta: validMeta("t")}}, want: false},
		{name: "empty struct", x: struct{}{}, want: false},
		{name: "nil", x: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := IsTTSProvider(tt.x); got != tt.want {
				t.Errorf("IsTTSProvider() = %v, want %v", got, tt.want)
			}
		})
	}
}
