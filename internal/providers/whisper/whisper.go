// Package whisper provides speech-to-text through a whisper HTTP server
// exposing a multipart /transcribe endpoint.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dgnsrekt/voicekit/internal/audio"
	"github.com/dgnsrekt/voicekit/internal/providers"
	"github.com/dgnsrekt/voicekit/internal/voice"
	"github.com/goccy/go-json"
)

const (
	name    = "whisper"
	version = "1.0.0"

	maxErrorBody    = 4 << 10
	maxResponseBody = 1 << 20
)

// Config configures the provider.
type Config struct {
	// URL is the server root, e.g. http://localhost:8080.
	URL string

	// InputSampleRate is assumed for raw pcm_s16le input.
	InputSampleRate int
	Timeout         time.Duration
}

// transcribeResponse is the server's reply.
type transcribeResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// Provider implements voice.STTProvider.
type Provider struct {
	cfg    Config
	client *http.Client
}

// New creates a provider for the server at cfg.URL.
func New(cfg Config) (*Provider, error) {
	if cfg.URL == "" {
		return nil, providers.Wrap(name, providers.OpDescribe, fmt.Errorf("%w: missing server url", providers.ErrNotConfigured))
	}
	if cfg.InputSampleRate <= 0 {
		cfg.InputSampleRate = 16000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Provider{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}, nil
}

// Metadata describes the provider.
func (p *Provider) Metadata() voice.VoiceMetadata {
	return voice.VoiceMetadata{
		Name:        name,
		Version:     version,
		Description: "whisper server at " + p.cfg.URL,
		Emoji:       "🎙",
		Local:       true,
	}
}

// Transcribe uploads the audio and returns the server's transcript.
func (p *Provider) Transcribe(ctx context.Context, data []byte, opts *voice.TranscribeOptions) (*voice.TranscribeResult, error) {
	if len(data) == 0 {
		return nil, providers.Wrap(name, providers.OpTranscribe, providers.ErrEmptyAudio)
	}
	format := audio.FormatWAV
	var language string
	if opts != nil {
		if opts.Format != "" {
			format = opts.Format
		}
		language = opts.Language
	}
	if format == audio.FormatPCM {
		wav, err := audio.PCMToWAV(data, p.cfg.InputSampleRate, 1)
		if err != nil {
			return nil, providers.Wrap(name, providers.OpTranscribe, err)
		}
		data, format = wav, audio.FormatWAV
	}

	text, err := p.post(ctx, data, "audio."+format, language)
	if err != nil {
		return nil, providers.Wrap(name, providers.OpTranscribe, err)
	}

	result := &voice.TranscribeResult{Text: text}
	if d, err := audio.Duration(data, format, p.cfg.InputSampleRate); err == nil {
		result.DurationMs = float64(d.Milliseconds())
	}
	return result, nil
}

func (p *Provider) post(ctx context.Context, data []byte, filename, language string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return "", fmt.Errorf("write language: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL+"/transcribe", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out transcribeResponse
	decodeErr := json.Unmarshal(body, &out)
	if decodeErr == nil && out.Error != "" {
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, out.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, errorDetail(resp.StatusCode, body))
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", providers.ErrNoSpeech
	}
	return text, nil
}

// errorDetail describes a failed reply by its body, or by the status text
// when the body is empty.
func errorDetail(status int, body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if detail := strings.TrimSpace(string(body)); detail != "" {
		return detail
	}
	return http.StatusText(status)
}
