package plugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/dgnsrekt/voicekit/internal/providers"
	"github.com/dgnsrekt/voicekit/internal/voice"
	"github.com/goccy/go-json"
)

// writePlugin creates an executable that answers describe with describe,
// and the other commands with reply after saving stdin to $PLUGIN_DIR/req.json.
func writePlugin(t *testing.T, describe, reply string) Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake plugins need a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "voice-plugin")
	script := "#!/bin/sh\n" +
		"case \"$1\" in\n" +
		"describe) printf '%s' '" + describe + "' ;;\n" +
		"*) cat > \"$PLUGIN_DIR/req.json\"; printf '%s' '" + reply + "' ;;\n" +
		"esac\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil { //nolint:gosec
		t.Fatal(err)
	}
	return Config{Name: "fake", Command: path, Env: []string{"PLUGIN_DIR=" + dir}, Timeout: 5 * time.Second}
}

func lastRequest(t *testing.T, cfg Config, v any) {
	t.Helper()
	dir := strings.TrimPrefix(cfg.Env[0], "PLUGIN_DIR=")
	data, err := os.ReadFile(filepath.Join(dir, "req.json"))
	if err != nil {
		t.Fatalf("plugin request not recorded: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("request is not json: %v", err)
	}
}

const validDescribe = `{"metadata":{"name":"echo","version":"0.1.0","description":"Echo plugin","local":true},"voices":[{"id":"robot","name":"Robot","gender":"neutral"}]}`

func TestLoad(t *testing.T) {
	cfg := writePlugin(t, validDescribe, `{}`)
	p, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Name() != "fake" {
		t.Errorf("Name() = %q", p.Name())
	}

	stt, ok := voice.IsSTTProvider(p.Transcriber())
	if !ok {
		t.Fatal("transcriber rejected by the validator")
	}
	if m := stt.Metadata(); m.Name != "echo" || m.Version != "0.1.0" || !m.Local {
		t.Errorf("metadata = %+v", m)
	}

	tts, ok := voice.IsTTSProvider(p.Synthesizer())
	if !ok {
		t.Fatal("synthesizer rejected by the validator")
	}
	if v := tts.Voices(); len(v) != 1 || v[0].ID != "robot" || v[0].Gender != "neutral" {
		t.Errorf("voices = %+v", v)
	}
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(t *testing.T) Config
	}{
		{name: "no command", cfg: func(*testing.T) Config { return Config{Name: "x"} }},
		{name: "missing binary", cfg: func(*testing.T) Config { return Config{Command: "/non/existent/plugin"} }},
		{name: "empty describe", cfg: func(t *testing.T) Config { return writePlugin(t, "", "") }},
		{name: "garbage describe", cfg: func(t *testing.T) Config { return writePlugin(t, "hello", "") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.cfg(t))
			var pe *providers.ProviderError
			if !errors.As(err, &pe) || pe.Op != providers.OpDescribe {
				t.Errorf("Load() error = %v, want a describe ProviderError", err)
			}
		})
	}
}

func TestUntrustedMetadataIsRejected(t *testing.T) {
	tests := []struct {
		name     string
		describe string
		stt, tts bool
	}{
		{name: "missing version", describe: `{"metadata":{"name":"x"}}`},
		{name: "missing name", describe: `{"metadata":{"version":"1"}}`},
		{name: "voice without id", describe: `{"metadata":{"name":"x","version":"1"},"voices":[{"name":"nameless"}]}`, stt: true},
		{name: "no voices", describe: `{"metadata":{"name":"x","version":"1"}}`, stt: true, tts: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Load(context.Background(), writePlugin(t, tt.describe, `{}`))
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := voice.IsSTTProvider(p.Transcriber()); ok != tt.stt {
				t.Errorf("IsSTTProvider() = %v, want %v", ok, tt.stt)
			}
			if _, ok := voice.IsTTSProvider(p.Synthesizer()); ok != tt.tts {
				t.Errorf("IsTTSProvider() = %v, want %v", ok, tt.tts)
			}
		})
	}
}

func TestTranscribe(t *testing.T) {
	cfg := writePlugin(t, validDescribe, `{"text":"from plugin","duration_ms":1200,"confidence":0.5}`)
	p, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	res, err := p.Transcriber().Transcribe(context.Background(), []byte{0, 1, 2, 3}, &voice.TranscribeOptions{Format: "wav", Language: "fr"})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if res.Text != "from plugin" || res.DurationMs != 1200 || res.Confidence == nil || *res.Confidence != 0.5 {
		t.Errorf("result = %+v", res)
	}

	var req map[string]any
	lastRequest(t, cfg, &req)
	if req["audio"] != "AAECAw==" || req["format"] != "wav" || req["language"] != "fr" {
		t.Errorf("request = %v", req)
	}
}

func TestSynthesize(t *testing.T) {
	cfg := writePlugin(t, validDescribe, `{"audio":"AAECAw==","format":"pcm_s16le","sample_rate":16000,"duration_ms":0.125}`)
	p, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	res, err := p.Synthesizer().Synthesize(context.Background(), "beep", &voice.SynthesizeOptions{Voice: "robot", Speed: 1.5})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(res.Audio) != "\x00\x01\x02\x03" || res.Format != "pcm_s16le" || res.SampleRate != 16000 {
		t.Errorf("result = %+v", res)
	}

	var req synthesizeRequest
	lastRequest(t, cfg, &req)
	if req.Text != "beep" || req.Voice != "robot" || req.Speed != 1.5 {
		t.Errorf("request = %+v", req)
	}
}

func TestReportedErrors(t *testing.T) {
	cfg := writePlugin(t, validDescribe, `{"error":"model not loaded"}`)
	p, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Transcriber().Transcribe(context.Background(), []byte{1}, nil)
	if err == nil || !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("Transcribe() error = %v", err)
	}
	_, err = p.Synthesizer().Synthesize(context.Background(), "x", nil)
	var pe *providers.ProviderError
	if !errors.As(err, &pe) || pe.Op != providers.OpSynthesize || pe.Provider != "fake" {
		t.Errorf("Synthesize() error = %v", err)
	}
}
