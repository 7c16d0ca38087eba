package voice

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/dgnsrekt/voicekit/internal/audio"
	"github.com/dgnsrekt/voicekit/internal/host"
	"github.com/mitchellh/go-homedir"
)

// PluginVersion is reported in the plugin descriptor.
var PluginVersion = "0.3.0"

const (
	commandName        = "voice"
	commandDescription = "Voice transcription and speech synthesis"

	usageText = `Usage: voice <subcommand> [options]

Subcommands:
  transcribe <file> [--output <path>] [--language <code>] [--copy]
  synthesize <voice> <text...> [--output <path>] [--speed <x>] [--play]
  list
  providers`

	usageHint         = "Usage: voice <transcribe|synthesize|list|providers> [options]"
	transcribeUsage   = "Usage: voice transcribe <file> [--output <path>]"
	synthesizeUsage   = "Usage: voice synthesize <voice> <text> [--output <path>]"
	defaultOutputStem = "output_"
)

// Voice holds the dependencies of the voice command. The zero value is not
// usable; create one with New.
type Voice struct {
	dir      string
	copyText func(text string) error
	playPCM  func(ctx context.Context, pcm []byte, sampleRate int) error
}

// Option configures a Voice.
type Option func(*Voice)

// WithDir resolves relative input and output paths against dir instead of
// the working directory.
func WithDir(dir string) Option {
	return func(v *Voice) { v.dir = dir }
}

// WithClipboard replaces the clipboard writer used by transcribe --copy.
func WithClipboard(fn func(text string) error) Option {
	return func(v *Voice) { v.copyText = fn }
}

// WithPlayer replaces the PCM player used by synthesize --play.
func WithPlayer(fn func(ctx context.Context, pcm []byte, sampleRate int) error) Option {
	return func(v *Voice) { v.playPCM = fn }
}

// New creates the voice command.
func New(opts ...Option) *Voice {
	v := &Voice{
		copyText: clipboard.WriteAll,
		playPCM:  audio.PlayPCM,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run dispatches args to a subcommand. It never returns an error: failures
// are logged through hc and described by the returned Outcome.
func (v *Voice) Run(ctx context.Context, hc host.Context, args []string) Outcome {
	if len(args) == 0 {
		hc.Log().Info(usageText)
		return succeeded()
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "transcribe":
		return v.transcribe(ctx, hc, rest)
	case "synthesize":
		return v.synthesize(ctx, hc, rest)
	case "list":
		return v.list(hc)
	case "providers":
		return v.providers(hc)
	case "help", "--help", "-h":
		hc.Log().Info(usageText)
		return succeeded()
	default:
		msg := "Unknown subcommand: " + sub
		hc.Log().Error(msg)
		hc.Log().Info(usageHint)
		return Outcome{Kind: UnknownSubcommand, Message: msg}
	}
}

// Command returns the descriptor registered with the host.
func (v *Voice) Command() host.Command {
	return host.Command{
		Name:        commandName,
		Description: commandDescription,
		Usage:       usageText,
		Handler: func(ctx context.Context, hc host.Context, args []string) {
			if o := v.Run(ctx, hc, args); !o.OK() {
				hc.Log().Debug(fmt.Sprintf("voice command ended with %s", o.Kind))
			}
		},
	}
}

// Plugin returns the plugin descriptor handed to the host.
func (v *Voice) Plugin() host.Plugin {
	return host.Plugin{
		Name:        "voice",
		Version:     PluginVersion,
		Description: "Speech-to-text and text-to-speech commands backed by capability providers",
		Commands:    []host.Command{v.Command()},
		Init: func(hc host.Context) error {
			hc.Log().Debug(fmt.Sprintf("voice plugin %s initialized (%d stt, %d tts candidates)",
				PluginVersion,
				len(hc.CapabilityProviders(host.KindSTT)),
				len(hc.CapabilityProviders(host.KindTTS))))
			return nil
		},
	}
}

// fail logs msg as an error and returns it as an outcome.
func fail(log host.Logger, kind OutcomeKind, msg string) Outcome {
	log.Error(msg)
	return Outcome{Kind: kind, Message: msg}
}

// missing reports an absent capability followed by remediation hints.
func missing(log host.Logger, msg string, hints []string) Outcome {
	log.Error(msg)
	for _, h := range hints {
		log.Info(h)
	}
	return Outcome{Kind: CapabilityMissing, Message: msg, Hints: hints}
}

// resolve expands ~ and anchors relative paths to the configured directory.
func (v *Voice) resolve(path string) string {
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	if v.dir != "" && !filepath.IsAbs(path) {
		return filepath.Join(v.dir, path)
	}
	return path
}

var errNoResult = errors.New("provider returned no result")

// panicError carries a value recovered from a panicking provider.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	if err, ok := e.value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.value)
}

// invoke calls a provider operation, turning panics and empty results into
// errors so that nothing escapes the handler.
func invoke[T any](fn func() (*T, error)) (res *T, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, &panicError{value: r}
		}
	}()

	res, err = fn()
	if err == nil && res == nil {
		err = errNoResult
	}
	return res, err
}
