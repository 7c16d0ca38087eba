// Package piper provides offline text-to-speech by running the piper binary
// once per synthesis.
package piper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/dgnsrekt/voicekit/internal/audio"
	"github.com/dgnsrekt/voicekit/internal/providers"
	"github.com/dgnsrekt/voicekit/internal/subprocess"
	"github.com/dgnsrekt/voicekit/internal/voice"
	"github.com/goccy/go-json"
)

const (
	name    = "piper"
	version = "1.0.0"

	defaultBinary     = "piper"
	defaultSampleRate = 22050
	maxTextSize       = 5000
	maxAudioSize      = 10 << 20
)

// VoiceModel is a configured piper voice.
type VoiceModel struct {
	ID          string
	Name        string
	Gender      string
	Description string

	// Model is the .onnx file; Config defaults to Model + ".json".
	Model   string
	Config  string
	Speaker string // speaker id for multi-speaker models
}

// Config configures the provider.
type Config struct {
	Binary  string
	Voices  []VoiceModel
	Timeout time.Duration
}

// modelConfig is the part of a piper .onnx.json file the provider reads.
type modelConfig struct {
	Audio struct {
		SampleRate int `json:"sample_rate"`
	} `json:"audio"`
	Language struct {
		Code string `json:"code"`
	} `json:"language"`
}

// voiceEntry is a resolved voice model.
type voiceEntry struct {
	VoiceModel
	sampleRate int
	language   string
}

// Provider implements voice.TTSProvider.
type Provider struct {
	binary string
	runner *subprocess.Runner
	voices []voiceEntry // fixed after New
}

// New resolves every configured voice. Voices whose model is missing are
// rejected so that Voices never lists something Synthesize cannot render.
func New(cfg Config) (*Provider, error) {
	if len(cfg.Voices) == 0 {
		return nil, providers.Wrap(name, providers.OpDescribe, fmt.Errorf("%w: no voices configured", providers.ErrNotConfigured))
	}
	if cfg.Binary == "" {
		cfg.Binary = defaultBinary
	}

	p := &Provider{
		binary: cfg.Binary,
		runner: subprocess.NewRunner(cfg.Timeout),
	}
	for _, vm := range cfg.Voices {
		entry, err := resolveVoice(vm)
		if err != nil {
			return nil, providers.Wrap(name, providers.OpDescribe, err)
		}
		p.voices = append(p.voices, entry)
	}
	return p, nil
}

func resolveVoice(vm VoiceModel) (voiceEntry, error) {
	if vm.ID == "" {
		return voiceEntry{}, errors.New("voice id is required")
	}
	if vm.Model == "" {
		return voiceEntry{}, fmt.Errorf("voice %s: model path is required", vm.ID)
	}
	if _, err := os.Stat(vm.Model); err != nil {
		return voiceEntry{}, fmt.Errorf("voice %s: model file not found: %w", vm.ID, err)
	}
	if vm.Config == "" {
		vm.Config = vm.Model + ".json"
	}

	entry := voiceEntry{VoiceModel: vm, sampleRate: defaultSampleRate}
	data, err := os.ReadFile(vm.Config)
	if err != nil {
		return voiceEntry{}, fmt.Errorf("voice %s: unable to read model config: %w", vm.ID, err)
	}
	var mc modelConfig
	if err := json.Unmarshal(data, &mc); err != nil {
		return voiceEntry{}, fmt.Errorf("voice %s: invalid model config: %w", vm.ID, err)
	}
	if mc.Audio.SampleRate > 0 {
		entry.sampleRate = mc.Audio.SampleRate
	}
	entry.language = mc.Language.Code
	return entry, nil
}

// Validate checks that the piper binary can be found.
func (p *Provider) Validate() error {
	if _, err := exec.LookPath(p.binary); err != nil {
		return providers.Wrap(name, providers.OpDescribe, fmt.Errorf("%s not found in PATH: %w", p.binary, err))
	}
	return nil
}

// Metadata describes the provider.
func (p *Provider) Metadata() voice.VoiceMetadata {
	return voice.VoiceMetadata{
		Name:        name,
		Version:     version,
		Description: "Piper neural TTS (offline)",
		Emoji:       "🐦",
		Local:       true,
	}
}

// Voices lists the configured voices in configuration order.
func (p *Provider) Voices() []voice.TTSVoice {
	voices := make([]voice.TTSVoice, 0, len(p.voices))
	for _, v := range p.voices {
		desc := v.Description
		if desc == "" && v.language != "" {
			desc = v.language
		}
		voices = append(voices, voice.TTSVoice{ID: v.ID, Name: v.Name, Gender: v.Gender, Description: desc})
	}
	return voices
}

func (p *Provider) lookup(id string) (voiceEntry, bool) {
	for _, v := range p.voices {
		if v.ID == id {
			return v, true
		}
	}
	return voiceEntry{}, false
}

// Synthesize renders text to raw mono pcm_s16le.
func (p *Provider) Synthesize(ctx context.Context, text string, opts *voice.SynthesizeOptions) (*voice.SynthesizeResult, error) {
	if text == "" {
		return nil, providers.Wrap(name, providers.OpSynthesize, providers.ErrEmptyText)
	}
	if len(text) > maxTextSize {
		return nil, providers.Wrap(name, providers.OpSynthesize,
			fmt.Errorf("text too long: %d characters (max %d)", len(text), maxTextSize))
	}
	var voiceID string
	speed := 1.0
	if opts != nil {
		voiceID = opts.Voice
		if opts.Speed > 0 {
			speed = opts.Speed
		}
	}
	v, ok := p.lookup(voiceID)
	if !ok {
		return nil, providers.Wrap(name, providers.OpSynthesize, fmt.Errorf("%w: %s", providers.ErrUnknownVoice, voiceID))
	}

	// Speed 2.0 halves the phoneme length.
	args := []string{
		"--model", v.Model,
		"--config", v.Config,
		"--output-raw",
		"--length-scale", fmt.Sprintf("%.2f", 1.0/speed),
	}
	if v.Speaker != "" {
		args = append(args, "--speaker", v.Speaker)
	}

	pcm, err := p.runner.Run(ctx, []byte(text), p.binary, args...)
	if err != nil {
		return nil, providers.Wrap(name, providers.OpSynthesize, err)
	}
	if len(pcm) == 0 {
		return nil, providers.Wrap(name, providers.OpSynthesize, providers.ErrEmptyResponse)
	}
	if len(pcm) > maxAudioSize {
		return nil, providers.Wrap(name, providers.OpSynthesize,
			fmt.Errorf("piper output too large: %d bytes (max %d)", len(pcm), maxAudioSize))
	}

	result := &voice.SynthesizeResult{Audio: pcm, Format: audio.FormatPCM, SampleRate: v.sampleRate}
	if d, err := audio.PCMDuration(len(pcm), v.sampleRate, 1); err == nil {
		result.DurationMs = float64(d.Milliseconds())
	}
	return result, nil
}
