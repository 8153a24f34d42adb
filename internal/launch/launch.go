package launch

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/graaaaa/vrcvisits/internal/instance"
)

// ErrKillUnsupported is returned when the client cannot be stopped on this platform.
var ErrKillUnsupported = errors.New("stopping the client is not supported on this platform")

// ClientProcessName is the executable name of the VRChat client.
const ClientProcessName = "VRChat.exe"

// Launcher opens launch URIs, optionally stopping a running client first.
type Launcher struct {
	open   func(uri string) error
	kill   func() error
	logger *slog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithOpener replaces the OS URI opener (for testing).
func WithOpener(open func(uri string) error) Option {
	return func(l *Launcher) { l.open = open }
}

// WithKiller replaces the client process killer (for testing).
func WithKiller(kill func() error) Option {
	return func(l *Launcher) { l.kill = kill }
}

// WithLogger sets the logger for the Launcher.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Launcher using the platform opener and killer.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		open:   openURI,
		kill:   killClient,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch opens the direct URI for inst. With killFirst, a running client is
// stopped before the URI is opened; failing to stop it is logged, not fatal.
func (l *Launcher) Launch(inst instance.Instance, killFirst bool) error {
	if killFirst {
		if err := l.kill(); err != nil {
			l.logger.Warn("failed to stop client", "process", ClientProcessName, "error", err)
		}
	}

	uri := DirectURI(inst)
	l.logger.Info("launching instance", "uri", uri)
	if err := l.open(uri); err != nil {
		return fmt.Errorf("open %q: %w", uri, err)
	}
	return nil
}
