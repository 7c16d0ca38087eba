package voice

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dgnsrekt/voicekit/internal/audio"
	"github.com/dgnsrekt/voicekit/internal/host"
	"github.com/dustin/go-humanize"
)

func (v *Voice) synthesize(ctx context.Context, hc host.Context, args []string) Outcome {
	log := hc.Log()
	parsed := ParseFlags(args)

	if len(parsed.Positional) < 2 {
		return fail(log, UsageError, synthesizeUsage)
	}
	voiceID := strings.TrimSpace(parsed.Positional[0])
	text := strings.Join(parsed.Positional[1:], " ")
	if voiceID == "" || strings.TrimSpace(text) == "" {
		return fail(log, UsageError, synthesizeUsage)
	}

	var speed float64
	if raw, ok := parsed.Flag("speed"); ok {
		s, err := strconv.ParseFloat(raw, 64)
		if err != nil || s <= 0 {
			return fail(log, UsageError, fmt.Sprintf("Invalid --speed value: %s", raw))
		}
		speed = s
	}

	provider, ok := FirstProvider(hc.CapabilityProviders(host.KindTTS), IsTTSProvider)
	if !ok {
		return missing(log, noTTSMessage, ttsHints)
	}

	meta := provider.Metadata()
	log.Info(fmt.Sprintf("Synthesizing with %s (voice: %s)...", meta.Name, voiceID))

	result, err := invoke(func() (*SynthesizeResult, error) {
		return provider.Synthesize(ctx, text, &SynthesizeOptions{Voice: voiceID, Speed: speed})
	})
	if err != nil {
		return fail(log, InvocationError, "Synthesis failed: "+err.Error())
	}

	log.Info(fmt.Sprintf("Audio: %d bytes (%s)", len(result.Audio), result.Format))
	log.Info(fmt.Sprintf("Duration: %.1fs", result.DurationMs/1000))
	log.Info("Sample rate: " + sampleRateLabel(result.SampleRate))

	output, ok := parsed.Flag("output")
	if !ok {
		output = defaultOutputStem + voiceID + ".pcm"
	}
	if err := os.WriteFile(v.resolve(output), result.Audio, 0o644); err != nil { //nolint:gosec
		return fail(log, IOError, fmt.Sprintf("Failed to write %s: %v", output, err))
	}
	log.Debug(fmt.Sprintf("wrote %s to %s", humanize.Bytes(uint64(len(result.Audio))), output))
	log.Info("Saved to " + output)

	if result.Format == audio.FormatPCM {
		log.Info(fmt.Sprintf("Play with: aplay -f S16_LE -r %d -c 1 %s", result.SampleRate, output))
	}

	if parsed.Bool("play") {
		v.play(ctx, log, result)
	}

	return succeeded()
}

func (v *Voice) play(ctx context.Context, log host.Logger, result *SynthesizeResult) {
	if result.Format != audio.FormatPCM || result.SampleRate <= 0 {
		log.Warn(fmt.Sprintf("Playback needs %s audio with a known sample rate, got %s", audio.FormatPCM, result.Format))
		return
	}
	if err := v.playPCM(ctx, result.Audio, result.SampleRate); err != nil {
		log.Warn(fmt.Sprintf("Playback failed: %v", err))
	}
}

func sampleRateLabel(rate int) string {
	if rate <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d Hz", rate)
}
