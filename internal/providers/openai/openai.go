// Package openai provides speech-to-text and text-to-speech backed by the
// OpenAI audio API.
package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/dgnsrekt/voicekit/internal/audio"
	"github.com/dgnsrekt/voicekit/internal/providers"
	"github.com/dgnsrekt/voicekit/internal/voice"
	goopenai "github.com/sashabaranov/go-openai"
)

const (
	name    = "openai"
	version = "1.0.0"

	// pcmSampleRate is the fixed rate of the API's raw pcm output.
	pcmSampleRate = 24000
)

// DefaultVoices are the speech voices offered by the API.
var DefaultVoices = []string{"alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"}

// Config configures the provider.
type Config struct {
	APIKey   string
	BaseURL  string // optional, for compatible gateways
	STTModel string
	TTSModel string

	// ResponseFormat is the synthesis output: pcm, mp3, wav, opus, flac or aac.
	ResponseFormat string
	Voices         []string

	// InputSampleRate is assumed for raw pcm_s16le sent for transcription.
	InputSampleRate int
	Timeout         time.Duration
}

// DefaultConfig returns the defaults for a key.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		STTModel:        goopenai.Whisper1,
		TTSModel:        string(goopenai.TTSModel1),
		ResponseFormat:  "pcm",
		Voices:          DefaultVoices,
		InputSampleRate: 16000,
		Timeout:         60 * time.Second,
	}
}

// Provider implements both voice.STTProvider and voice.TTSProvider.
type Provider struct {
	client *goopenai.Client
	cfg    Config
}

// New creates a provider. It fails when no API key is configured.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, providers.Wrap(name, providers.OpDescribe, fmt.Errorf("%w: missing API key", providers.ErrNotConfigured))
	}
	def := DefaultConfig(cfg.APIKey)
	if cfg.STTModel == "" {
		cfg.STTModel = def.STTModel
	}
	if cfg.TTSModel == "" {
		cfg.TTSModel = def.TTSModel
	}
	if cfg.ResponseFormat == "" {
		cfg.ResponseFormat = def.ResponseFormat
	}
	if len(cfg.Voices) == 0 {
		cfg.Voices = def.Voices
	}
	if cfg.InputSampleRate <= 0 {
		cfg.InputSampleRate = def.InputSampleRate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if _, ok := outputFormats[cfg.ResponseFormat]; !ok {
		return nil, providers.Wrap(name, providers.OpDescribe,
			fmt.Errorf("%w: response format %q", providers.ErrUnsupportedFmt, cfg.ResponseFormat))
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Provider{client: goopenai.NewClientWithConfig(clientCfg), cfg: cfg}, nil
}

// outputFormats maps API response formats to declared audio formats.
var outputFormats = map[string]string{
	"pcm":  audio.FormatPCM,
	"mp3":  audio.FormatMP3,
	"wav":  audio.FormatWAV,
	"opus": "opus",
	"flac": "flac",
	"aac":  "aac",
}

// Metadata describes the provider.
func (p *Provider) Metadata() voice.VoiceMetadata {
	return voice.VoiceMetadata{
		Name:        name,
		Version:     version,
		Description: fmt.Sprintf("OpenAI audio API (%s, %s)", p.cfg.STTModel, p.cfg.TTSModel),
		Emoji:       "🤖",
	}
}

// Voices lists the configured speech voices.
func (p *Provider) Voices() []voice.TTSVoice {
	voices := make([]voice.TTSVoice, 0, len(p.cfg.Voices))
	for _, id := range p.cfg.Voices {
		voices = append(voices, voice.TTSVoice{ID: id, Name: id, Description: "OpenAI " + p.cfg.TTSModel})
	}
	return voices
}

// Transcribe sends audio to the transcription endpoint.
func (p *Provider) Transcribe(ctx context.Context, data []byte, opts *voice.TranscribeOptions) (*voice.TranscribeResult, error) {
	if len(data) == 0 {
		return nil, providers.Wrap(name, providers.OpTranscribe, providers.ErrEmptyAudio)
	}

	format := audio.FormatWAV
	if opts != nil && opts.Format != "" {
		format = opts.Format
	}
	if format == audio.FormatPCM {
		wav, err := audio.PCMToWAV(data, p.cfg.InputSampleRate, 1)
		if err != nil {
			return nil, providers.Wrap(name, providers.OpTranscribe, err)
		}
		data, format = wav, audio.FormatWAV
	}

	req := goopenai.AudioRequest{
		Model:    p.cfg.STTModel,
		FilePath: "audio." + format,
		Reader:   bytes.NewReader(data),
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	}
	if opts != nil {
		req.Language = opts.Language
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	resp, err := p.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, providers.Wrap(name, providers.OpTranscribe, err)
	}

	durationMs := resp.Duration * 1000
	if durationMs == 0 && format == audio.FormatWAV {
		if d, err := audio.WAVDuration(data); err == nil {
			durationMs = float64(d.Milliseconds())
		}
	}
	return &voice.TranscribeResult{Text: resp.Text, DurationMs: durationMs}, nil
}

// Synthesize renders text with the speech endpoint.
func (p *Provider) Synthesize(ctx context.Context, text string, opts *voice.SynthesizeOptions) (*voice.SynthesizeResult, error) {
	if text == "" {
		return nil, providers.Wrap(name, providers.OpSynthesize, providers.ErrEmptyText)
	}
	var voiceID string
	var speed float64
	if opts != nil {
		voiceID, speed = opts.Voice, opts.Speed
	}
	if !slices.Contains(p.cfg.Voices, voiceID) {
		return nil, providers.Wrap(name, providers.OpSynthesize, fmt.Errorf("%w: %s", providers.ErrUnknownVoice, voiceID))
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	resp, err := p.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          goopenai.SpeechModel(p.cfg.TTSModel),
		Input:          text,
		Voice:          goopenai.SpeechVoice(voiceID),
		ResponseFormat: goopenai.SpeechResponseFormat(p.cfg.ResponseFormat),
		Speed:          speed,
	})
	if err != nil {
		return nil, providers.Wrap(name, providers.OpSynthesize, err)
	}
	defer resp.Close() //nolint:errcheck

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, providers.Wrap(name, providers.OpSynthesize, fmt.Errorf("unable to read audio: %w", err))
	}
	if len(data) == 0 {
		return nil, providers.Wrap(name, providers.OpSynthesize, providers.ErrEmptyResponse)
	}

	result := &voice.SynthesizeResult{Audio: data, Format: outputFormats[p.cfg.ResponseFormat]}
	switch result.Format {
	case audio.FormatPCM:
		result.SampleRate = pcmSampleRate
	case audio.FormatWAV:
		result.SampleRate, _ = audio.WAVSampleRate(data)
	}
	if d, err := audio.Duration(data, result.Format, result.SampleRate); err == nil {
		result.DurationMs = float64(d.Milliseconds())
	}
	return result, nil
}
