package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/voicekit/internal/config"
	"github.com/dgnsrekt/voicekit/internal/host"
	"github.com/dgnsrekt/voicekit/internal/providers/google"
	"github.com/dgnsrekt/voicekit/internal/providers/openai"
	"github.com/dgnsrekt/voicekit/internal/providers/piper"
	"github.com/dgnsrekt/voicekit/internal/providers/plugin"
	"github.com/dgnsrekt/voicekit/internal/providers/whisper"
)

// registerProviders builds every enabled provider and registers it with reg
// in selection order: external plugins, openai, google, whisper, piper.
// Providers that cannot be built are skipped with a warning. The returned
// closers must be closed on exit.
func registerProviders(ctx context.Context, reg *host.Registry, cfg *config.Config, logger host.Logger) []io.Closer {
	var closers []io.Closer
	register := func(kind host.Kind, name string, p any) {
		reg.Register(kind, p)
		log.Debug("Registered provider", "kind", kind, "name", name)
	}
	skip := func(name string, err error) {
		logger.Warn(fmt.Sprintf("Skipping %s provider: %v", name, err))
	}

	for _, pc := range cfg.Plugins {
		p, err := plugin.Load(ctx, plugin.Config{
			Name:    pc.Name,
			Command: pc.Command,
			Args:    pc.Args,
			Env:     pc.Env,
			Timeout: pc.Timeout,
		})
		if err != nil {
			skip("plugin", err)
			continue
		}
		if pc.Provides(config.KindSTT) {
			register(host.KindSTT, p.Name(), p.Transcriber())
		}
		if pc.Provides(config.KindTTS) {
			register(host.KindTTS, p.Name(), p.Synthesizer())
		}
	}

	prov := cfg.Providers

	// A missing API key is the normal state when OpenAI is not used.
	if prov.OpenAI.Enabled && prov.OpenAI.APIKey != "" {
		p, err := openai.New(openai.Config{
			APIKey:          prov.OpenAI.APIKey,
			BaseURL:         prov.OpenAI.BaseURL,
			STTModel:        prov.OpenAI.STTModel,
			TTSModel:        prov.OpenAI.TTSModel,
			ResponseFormat:  prov.OpenAI.ResponseFormat,
			Voices:          prov.OpenAI.Voices,
			InputSampleRate: cfg.InputSampleRate,
			Timeout:         prov.OpenAI.Timeout,
		})
		if err != nil {
			skip("openai", err)
		} else {
			register(host.KindSTT, "openai", p)
			register(host.KindTTS, "openai", p)
		}
	}

	if prov.Google.Enabled {
		p := google.New(google.Config{
			CredentialsFile: prov.Google.CredentialsFile,
			Endpoint:        prov.Google.Endpoint,
			LanguageCode:    prov.Google.Language,
			Model:           prov.Google.Model,
			InputSampleRate: cfg.InputSampleRate,
			Timeout:         prov.Google.Timeout,
		})
		register(host.KindSTT, "google", p)
		closers = append(closers, p)
	}

	if prov.Whisper.Enabled {
		p, err := whisper.New(whisper.Config{
			URL:             prov.Whisper.URL,
			InputSampleRate: cfg.InputSampleRate,
			Timeout:         prov.Whisper.Timeout,
		})
		if err != nil {
			skip("whisper", err)
		} else {
			register(host.KindSTT, "whisper", p)
		}
	}

	if prov.Piper.Enabled {
		voices := make([]piper.VoiceModel, 0, len(prov.Piper.Voices))
		for _, v := range prov.Piper.Voices {
			voices = append(voices, piper.VoiceModel{
				ID:          v.ID,
				Name:        v.Name,
				Gender:      v.Gender,
				Description: v.Description,
				Model:       v.Model,
				Config:      v.Config,
				Speaker:     v.Speaker,
			})
		}
		p, err := piper.New(piper.Config{Binary: prov.Piper.Binary, Voices: voices, Timeout: prov.Piper.Timeout})
		if err == nil {
			err = p.Validate()
		}
		if err != nil {
			skip("piper", err)
		} else {
			register(host.KindTTS, "piper", p)
		}
	}

	return closers
}
