package voice

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dgnsrekt/voicekit/internal/host"
	"github.com/dustin/go-humanize"
)

func (v *Voice) transcribe(ctx context.Context, hc host.Context, args []string) Outcome {
	log := hc.Log()
	parsed := ParseFlags(args)

	if len(parsed.Positional) == 0 || strings.TrimSpace(parsed.Positional[0]) == "" {
		return fail(log, UsageError, transcribeUsage)
	}
	file := parsed.Positional[0]
	path := v.resolve(file)

	// The file is checked before any provider is looked up.
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(log, NotFound, "File not found: "+file)
		}
		return fail(log, IOError, fmt.Sprintf("Cannot access %s: %v", file, err))
	}

	provider, ok := FirstProvider(hc.CapabilityProviders(host.KindSTT), IsSTTProvider)
	if !ok {
		return missing(log, noSTTMessage, sttHints)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(log, IOError, fmt.Sprintf("Failed to read %s: %v", file, err))
	}

	format := FormatForPath(file)
	language, _ := parsed.Flag("language")
	meta := provider.Metadata()
	log.Debug(fmt.Sprintf("read %s (%s) from %s", humanize.Bytes(uint64(len(data))), format, path))
	log.Info(fmt.Sprintf("Transcribing %s with %s...", file, meta.Name))

	result, err := invoke(func() (*TranscribeResult, error) {
		return provider.Transcribe(ctx, data, &TranscribeOptions{Format: format, Language: language})
	})
	if err != nil {
		return fail(log, InvocationError, "Transcription failed: "+err.Error())
	}

	log.Info("")
	log.Info("Transcription:")
	log.Info(result.Text)
	log.Info("")
	log.Info(fmt.Sprintf("Duration: %.1fs", result.DurationMs/1000))
	if result.Confidence != nil {
		log.Info(fmt.Sprintf("Confidence: %.1f%%", *result.Confidence*100))
	}

	if output, ok := parsed.Flag("output"); ok {
		if err := os.WriteFile(v.resolve(output), []byte(result.Text), 0o644); err != nil { //nolint:gosec
			return fail(log, IOError, fmt.Sprintf("Failed to write %s: %v", output, err))
		}
		log.Info("Saved transcription to " + output)
	}

	if parsed.Bool("copy") {
		if err := v.copyText(result.Text); err != nil {
			log.Warn(fmt.Sprintf("Could not copy to clipboard: %v", err))
		} else {
			log.Info("Copied to clipboard")
		}
	}

	return succeeded()
}
