// Package notify reports terminal outcomes (no visits, bad index, failed
// save) to the user.
package notify

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mattn/go-isatty"
)

// bell is the terminal bell, the console stand-in for a system alert sound.
const bell = "\a"

// Reporter writes user-facing messages. In quiet mode only a bell is emitted,
// and only when the output is a terminal.
type Reporter struct {
	out        io.Writer
	quiet      bool
	isTerminal func() bool
	logger     *slog.Logger
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithQuiet replaces messages with a terminal bell.
func WithQuiet(quiet bool) Option {
	return func(r *Reporter) { r.quiet = quiet }
}

// WithTerminalCheck overrides terminal detection (for testing).
func WithTerminalCheck(f func() bool) Option {
	return func(r *Reporter) { r.isTerminal = f }
}

// WithLogger sets the logger for the Reporter.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:    out,
		logger: slog.Default(),
	}
	r.isTerminal = func() bool { return IsTerminal(r.out) }
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Show reports message to the user.
func (r *Reporter) Show(message string) {
	r.logger.Debug("report", "message", message, "quiet", r.quiet)
	if r.quiet {
		if r.isTerminal() {
			fmt.Fprint(r.out, bell)
		}
		return
	}
	fmt.Fprintln(r.out, message)
}

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS ptys).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
