package voice

import (
	"fmt"

	"github.com/dgnsrekt/voicekit/internal/host"
)

const (
	defaultSTTEmoji = "🎤"
	defaultTTSEmoji = "🔊"
)

func (v *Voice) providers(hc host.Context) Outcome {
	log := hc.Log()

	stt, hasSTT := FirstProvider(hc.CapabilityProviders(host.KindSTT), IsSTTProvider)
	tts, hasTTS := FirstProvider(hc.CapabilityProviders(host.KindTTS), IsTTSProvider)

	log.Info("Voice Providers")
	log.Info("")

	log.Info("STT (speech-to-text):")
	if hasSTT {
		describeProvider(log, stt.Metadata(), defaultSTTEmoji)
	} else {
		log.Info("  None installed")
	}
	log.Info("")

	log.Info("TTS (text-to-speech):")
	if hasTTS {
		describeProvider(log, tts.Metadata(), defaultTTSEmoji)
		log.Info(fmt.Sprintf("     Voices: %d", len(tts.Voices())))
	} else {
		log.Info("  None installed")
	}
	log.Info("")

	log.Info(fmt.Sprintf("Status: STT %s  TTS %s", mark(hasSTT), mark(hasTTS)))
	return succeeded()
}

func describeProvider(log host.Logger, meta VoiceMetadata, fallbackEmoji string) {
	emoji := meta.Emoji
	if emoji == "" {
		emoji = fallbackEmoji
	}
	local := "No (cloud)"
	if meta.Local {
		local = "Yes"
	}

	log.Info(fmt.Sprintf("  %s %s v%s", emoji, meta.Name, meta.Version))
	log.Info("     Description: " + meta.Description)
	log.Info("     Local: " + local)
}

func mark(present bool) string {
	if present {
		return "✓"
	}
	return "✗"
}
