package voice

import (
	"context"
	"strings"
	"sync"

	"github.com/dgnsrekt/voicekit/internal/host"
)

// logEntry is one message captured by recordingLogger.
type logEntry struct {
	level string
	msg   string
}

// recordingLogger captures everything logged through it.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg})
}

func (l *recordingLogger) Info(msg string)  { l.add("info", msg) }
func (l *recordingLogger) Error(msg string) { l.add("error", msg) }
func (l *recordingLogger) Warn(msg string)  { l.add("warn", msg) }
func (l *recordingLogger) Debug(msg string) { l.add("debug", msg) }

// messages returns the messages logged at level, in order.
func (l *recordingLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

// output joins the info messages the way the console would print them.
func (l *recordingLogger) output() string {
	return strings.Join(l.messages("info"), "\n")
}

// fakeHost is a host.Context with fixed providers that counts lookups.
type fakeHost struct {
	log       *recordingLogger
	providers map[host.Kind][]any
	lookups   int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		log:       &recordingLogger{},
		providers: make(map[host.Kind][]any),
	}
}

func (h *fakeHost) Log() host.Logger { return h.log }

func (h *fakeHost) CapabilityProviders(kind host.Kind) []any {
	h.lookups++
	return h.providers[kind]
}

func (h *fakeHost) with(kind host.Kind, p any) *fakeHost {
	h.providers[kind] = append(h.providers[kind], p)
	return h
}

// fakeSTT is a configurable STTProvider.
type fakeSTT struct {
	meta   VoiceMetadata
	result *TranscribeResult
	err    error
	panic  any

	calls    int
	gotAudio []byte
	gotOpts  *TranscribeOptions
}

func (f *fakeSTT) Metadata() VoiceMetadata { return f.meta }

func (f *fakeSTT) Transcribe(_ context.Context, audio []byte, opts *TranscribeOptions) (*TranscribeResult, error) {
	f.calls++
	f.gotAudio = audio
	f.gotOpts = opts
	if f.panic != nil {
		panic(f.panic)
	}
	return f.result, f.err
}

// fakeTTS is a configurable TTSProvider.
type fakeTTS struct {
	meta   VoiceMetadata
	voices []TTSVoice
	result *SynthesizeResult
	err    error

	calls   int
	gotText string
	gotOpts *SynthesizeOptions
}

func (f *fakeTTS) Metadata() VoiceMetadata { return f.meta }
func (f *fakeTTS) Voices() []TTSVoice      { return f.voices }

func (f *fakeTTS) Synthesize(_ context.Context, text string, opts *SynthesizeOptions) (*SynthesizeResult, error) {
	f.calls++
	f.gotText = text
	f.gotOpts = opts
	return f.result, f.err
}

// panickyTTS panics while describing itself.
type panickyTTS struct{ fakeTTS }

func (p *panickyTTS) Voices() []TTSVoice { panic("voices unavailable") }

func validMeta(name string) VoiceMetadata {
	return VoiceMetadata{Name: name, Version: "1.0.0"}
}

func ptr[T any](v T) *T { return &v }
