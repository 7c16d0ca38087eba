// Package google provides speech-to-text backed by Google Cloud Speech.
package google

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/dgnsrekt/voicekit/internal/audio"
	"github.com/dgnsrekt/voicekit/internal/providers"
	"github.com/dgnsrekt/voicekit/internal/voice"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

const (
	name    = "google"
	version = "1.0.0"
)

// Recognizer is the subset of the Cloud Speech client the provider uses.
type Recognizer interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
	Close() error
}

// Config configures the provider. Credentials come from
// CredentialsFile or, when empty, Application Default Credentials.
type Config struct {
	CredentialsFile string
	Endpoint        string
	LanguageCode    string
	Model           string

	// InputSampleRate is assumed for raw pcm_s16le input.
	InputSampleRate int
	Timeout         time.Duration
}

// DefaultConfig returns the provider defaults.
func DefaultConfig() Config {
	return Config{
		LanguageCode:    "en-US",
		InputSampleRate: 16000,
		Timeout:         60 * time.Second,
	}
}

// Provider implements voice.STTProvider. The Cloud Speech client is created
// on first use so that registering the provider never touches the network.
type Provider struct {
	cfg Config

	mu         sync.Mutex
	recognizer Recognizer
	dial       func(ctx context.Context) (Recognizer, error)
}

// Option configures a Provider.
type Option func(*Provider)

// WithRecognizer uses r instead of dialing Cloud Speech.
func WithRecognizer(r Recognizer) Option {
	return func(p *Provider) { p.recognizer = r }
}

// New creates the provider.
func New(cfg Config, opts ...Option) *Provider {
	def := DefaultConfig()
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = def.LanguageCode
	}
	if cfg.InputSampleRate <= 0 {
		cfg.InputSampleRate = def.InputSampleRate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	p := &Provider{cfg: cfg}
	p.dial = p.dialSpeech
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) dialSpeech(ctx context.Context) (Recognizer, error) {
	var opts []option.ClientOption
	if p.cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(p.cfg.CredentialsFile))
	}
	if p.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.cfg.Endpoint))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return client, nil
}

func (p *Provider) client(ctx context.Context) (Recognizer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.recognizer == nil {
		r, err := p.dial(ctx)
		if err != nil {
			return nil, err
		}
		p.recognizer = r
	}
	return p.recognizer, nil
}

// Close releases the Cloud Speech connection, if one was made.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.recognizer == nil {
		return nil
	}
	err := p.recognizer.Close()
	p.recognizer = nil
	return err
}

// Metadata describes the provider.
func (p *Provider) Metadata() voice.VoiceMetadata {
	return voice.VoiceMetadata{
		Name:        name,
		Version:     version,
		Description: "Google Cloud Speech-to-Text (" + p.cfg.LanguageCode + ")",
		Emoji:       "🌐",
	}
}

// Transcribe runs a synchronous recognition request.
func (p *Provider) Transcribe(ctx context.Context, data []byte, opts *voice.TranscribeOptions) (*voice.TranscribeResult, error) {
	if len(data) == 0 {
		return nil, providers.Wrap(name, providers.OpTranscribe, providers.ErrEmptyAudio)
	}
	format := audio.FormatWAV
	language := p.cfg.LanguageCode
	if opts != nil {
		if opts.Format != "" {
			format = opts.Format
		}
		if opts.Language != "" {
			language = opts.Language
		}
	}

	config, err := p.recognitionConfig(format, language)
	if err != nil {
		return nil, providers.Wrap(name, providers.OpTranscribe, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	client, err := p.client(ctx)
	if err != nil {
		return nil, providers.Wrap(name, providers.OpTranscribe, err)
	}
	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: config,
		Audio:  &speechpb.RecognitionAudio{AudioSource: &speechpb.RecognitionAudio_Content{Content: data}},
	})
	if err != nil {
		return nil, providers.Wrap(name, providers.OpTranscribe, err)
	}

	result, err := collect(resp)
	if err != nil {
		return nil, providers.Wrap(name, providers.OpTranscribe, err)
	}
	if d, err := audio.Duration(data, format, p.cfg.InputSampleRate); err == nil {
		result.DurationMs = float64(d.Milliseconds())
	} else if billed := resp.GetTotalBilledTime(); billed != nil {
		result.DurationMs = float64(billed.AsDuration().Milliseconds())
	}
	return result, nil
}

func (p *Provider) recognitionConfig(format, language string) (*speechpb.RecognitionConfig, error) {
	cfg := &speechpb.RecognitionConfig{
		LanguageCode:               language,
		Model:                      p.cfg.Model,
		EnableAutomaticPunctuation: true,
	}
	switch format {
	case audio.FormatWAV:
		// Encoding and rate are read from the header.
		cfg.Encoding = speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	case audio.FormatPCM:
		cfg.Encoding = speechpb.RecognitionConfig_LINEAR16
		cfg.SampleRateHertz = int32(p.cfg.InputSampleRate) //nolint:gosec
	case audio.FormatOGG:
		cfg.Encoding = speechpb.RecognitionConfig_OGG_OPUS
		cfg.SampleRateHertz = 48000
	case audio.FormatWebM:
		cfg.Encoding = speechpb.RecognitionConfig_WEBM_OPUS
		cfg.SampleRateHertz = 48000
	default:
		return nil, fmt.Errorf("%w: %s", providers.ErrUnsupportedFmt, format)
	}
	return cfg, nil
}

// collect joins the best alternative of every result and averages their
// confidence.
func collect(resp *speechpb.RecognizeResponse) (*voice.TranscribeResult, error) {
	var parts []string
	var sum float64
	var scored int
	for _, r := range resp.GetResults() {
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
			parts = append(parts, t)
		}
		if c := alts[0].GetConfidence(); c > 0 {
			sum += float64(c)
			scored++
		}
	}
	if len(parts) == 0 {
		return nil, providers.ErrNoSpeech
	}

	result := &voice.TranscribeResult{Text: strings.Join(parts, " ")}
	if scored > 0 {
		c := sum / float64(scored)
		result.Confidence = &c
	}
	return result, nil
}

