// Package plugin adapts external executables into capability providers.
//
// A plugin is any program that understands three subcommands:
//
//	<command> describe     prints {"metadata": {...}, "voices": [...]}
//	<command> transcribe   reads a transcribe request on stdin
//	<command> synthesize   reads a synthesize request on stdin
//
// Plugins are versioned independently of voicekit, so nothing they report is
// trusted: the values built here are handed to the host registry as-is and
// checked by the voice validators at selection time.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgnsrekt/voicekit/internal/providers"
	"github.com/dgnsrekt/voicekit/internal/subprocess"
	"github.com/dgnsrekt/voicekit/internal/voice"
	"github.com/goccy/go-json"
)

// Config describes one external plugin.
type Config struct {
	Name    string
	Command string
	Args    []string
	Env     []string
	Timeout time.Duration
}

// Plugin is a described external plugin.
type Plugin struct {
	cfg    Config
	runner *subprocess.Runner
	desc   describeResponse
}

// Load runs the plugin's describe command.
func Load(ctx context.Context, cfg Config) (*Plugin, error) {
	label := cfg.Name
	if label == "" {
		label = cfg.Command
	}
	if cfg.Command == "" {
		return nil, providers.Wrap(label, providers.OpDescribe, fmt.Errorf("%w: missing command", providers.ErrNotConfigured))
	}
	cfg.Name = label

	p := &Plugin{cfg: cfg, runner: subprocess.NewRunner(cfg.Timeout).WithEnv(cfg.Env...)}
	if err := p.call(ctx, providers.OpDescribe, nil, &p.desc); err != nil {
		return nil, err
	}
	return p, nil
}

// Name is the configured label of the plugin.
func (p *Plugin) Name() string { return p.cfg.Name }

// Transcriber returns the plugin as an STT capability.
func (p *Plugin) Transcriber() *Transcriber { return &Transcriber{p} }

// Synthesizer returns the plugin as a TTS capability.
func (p *Plugin) Synthesizer() *Synthesizer { return &Synthesizer{p} }

func (p *Plugin) metadata() voice.VoiceMetadata {
	m := p.desc.Metadata
	return voice.VoiceMetadata{
		Name:        m.Name,
		Version:     m.Version,
		Description: m.Description,
		Emoji:       m.Emoji,
		Local:       m.Local,
	}
}

// call runs one plugin command. A response carrying an "error" field is
// reported as a failure even when the process exits cleanly.
func (p *Plugin) call(ctx context.Context, op string, req, resp any) error {
	var stdin []byte
	if req != nil {
		b, err := json.Marshal(req)
		if err != nil {
			return providers.Wrap(p.cfg.Name, op, fmt.Errorf("encode request: %w", err))
		}
		stdin = b
	}

	args := append(append([]string(nil), p.cfg.Args...), op)
	out, err := p.runner.Run(ctx, stdin, p.cfg.Command, args...)
	if err != nil {
		return providers.Wrap(p.cfg.Name, op, err)
	}
	if len(strings.TrimSpace(string(out))) == 0 {
		return providers.Wrap(p.cfg.Name, op, providers.ErrEmptyResponse)
	}
	if err := json.Unmarshal(out, resp); err != nil {
		return providers.Wrap(p.cfg.Name, op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// Transcriber is the STT view of a plugin.
type Transcriber struct{ p *Plugin }

// Metadata returns what the plugin reported about itself.
func (t *Transcriber) Metadata() voice.VoiceMetadata { return t.p.metadata() }

// Transcribe sends the audio to the plugin.
func (t *Transcriber) Transcribe(ctx context.Context, data []byte, opts *voice.TranscribeOptions) (*voice.TranscribeResult, error) {
	req := transcribeRequest{Audio: data}
	if opts != nil {
		req.Format, req.Language = opts.Format, opts.Language
	}
	var resp transcribeResponse
	if err := t.p.call(ctx, providers.OpTranscribe, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, providers.Wrap(t.p.cfg.Name, providers.OpTranscribe, errors.New(resp.Error))
	}
	return &voice.TranscribeResult{Text: resp.Text, DurationMs: resp.DurationMs, Confidence: resp.Confidence}, nil
}

// Synthesizer is the TTS view of a plugin.
type Synthesizer struct{ p *Plugin }

// Metadata returns what the plugin reported about itself.
func (s *Synthesizer) Metadata() voice.VoiceMetadata { return s.p.metadata() }

// Voices returns the voices the plugin reported.
func (s *Synthesizer) Voices() []voice.TTSVoice {
	voices := make([]voice.TTSVoice, 0, len(s.p.desc.Voices))
	for _, v := range s.p.desc.Voices {
		voices = append(voices, voice.TTSVoice{ID: v.ID, Name: v.Name, Gender: v.Gender, Description: v.Description})
	}
	return voices
}

// Synthesize asks the plugin to render text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts *voice.SynthesizeOptions) (*voice.SynthesizeResult, error) {
	req := synthesizeRequest{Text: text}
	if opts != nil {
		req.Voice, req.Speed = opts.Voice, opts.Speed
	}
	var resp synthesizeResponse
	if err := s.p.call(ctx, providers.OpSynthesize, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, providers.Wrap(s.p.cfg.Name, providers.OpSynthesize, errors.New(resp.Error))
	}
	return &voice.SynthesizeResult{
		Audio:      resp.Audio,
		Format:     resp.Format,
		SampleRate: resp.SampleRate,
		DurationMs: resp.DurationMs,
	}, nil
}
