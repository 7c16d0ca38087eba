package host

import (
	"context"
)

// Kind identifies a capability a provider can be registered under.
type Kind string

const (
	// KindSTT is the speech-to-text capability.
	KindSTT Kind = "stt"

	// KindTTS is the text-to-speech capability.
	KindTTS Kind = "tts"
)

// Logger is the logging sink the host hands to plugins.
type Logger interface {
	Info(msg string)
	Error(msg string)
	Warn(msg string)
	Debug(msg string)
}

// Context is what a plugin sees of the host during Init and command handling.
type Context interface {
	// Log returns the host's logging sink.
	Log() Logger

	// CapabilityProviders returns the providers registered for kind, in
	// registration order. The values are opaque: callers must check their
	// shape before use. A nil or empty slice means nothing is registered.
	CapabilityProviders(kind Kind) []any
}

// HandlerFunc runs a plugin command with the raw, unparsed arguments that
// followed the command name.
type HandlerFunc func(ctx context.Context, hc Context, args []string)

// Command describes a top-level command contributed by a plugin.
type Command struct {
	Name        string
	Description string
	Usage       string
	Handler     HandlerFunc
}

// Plugin describes a plugin and the commands it contributes.
type Plugin struct {
	Name        string
	Version     string
	Description string
	Commands    []Command

	// Init is called once before any command is mounted. May be nil.
	Init func(hc Context) error
}
