package host

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ConsoleLogger is the Logger used by the voicekit binary. Info messages are
// plugin output and go verbatim to out; everything else goes through a
// charmbracelet logger on errOut.
type ConsoleLogger struct {
	out    io.Writer
	logger *log.Logger
}

// ConsoleOptions configures a ConsoleLogger.
type ConsoleOptions struct {
	Level           log.Level
	ReportTimestamp bool
}

// NewConsoleLogger creates a console logger writing output to out and
// diagnostics to errOut.
func NewConsoleLogger(out, errOut io.Writer, opts ConsoleOptions) *ConsoleLogger {
	return &ConsoleLogger{
		out: out,
		logger: log.NewWithOptions(errOut, log.Options{
			Level:           opts.Level,
			ReportTimestamp: opts.ReportTimestamp,
			TimeFormat:      time.Kitchen,
		}),
	}
}

// Info writes msg followed by a newline to the output stream.
func (c *ConsoleLogger) Info(msg string) {
	_, _ = fmt.Fprintln(c.out, msg)
}

// Error logs msg at error level.
func (c *ConsoleLogger) Error(msg string) {
	c.logger.Error(msg)
}

// Warn logs msg at warn level.
func (c *ConsoleLogger) Warn(msg string) {
	c.logger.Warn(msg)
}

// Debug logs msg at debug level.
func (c *ConsoleLogger) Debug(msg string) {
	c.logger.Debug(msg)
}

// SetLevel changes the diagnostic log level.
func (c *ConsoleLogger) SetLevel(level log.Level) {
	c.logger.SetLevel(level)
}
