// Package watch follows the live VRChat log through vrclog-go and emits a
// Visit each time the client joins a world.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vrclog/vrclog-go/pkg/vrclog"

	"github.com/graaaaa/vrcvisits/internal/instance"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

// TypeWorldJoin is the only vrclog-go event type that produces a Visit.
const TypeWorldJoin = vrclog.EventWorldJoin

// Default buffer sizes for channels.
const (
	DefaultVisitBufferSize = 16
	DefaultErrorBufferSize = 16
)

// ParseError wraps a log line vrclog-go could not parse.
type ParseError struct {
	Line string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReplaySince returns the replay start for a look-back of d from now.
// A non-positive d yields the zero time, which follows from now without replay.
func ReplaySince(now time.Time, d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return now.Add(-d)
}

// Source produces visits from the active log.
type Source struct {
	replaySince     time.Time
	logDir          string // optional override
	logger          *slog.Logger
	visitBufferSize int
	errorBufferSize int
}

// Option configures a Source.
type Option func(*Source)

// WithLogDir sets a custom log directory path.
// If not set, vrclog-go auto-detects the VRChat log directory.
func WithLogDir(dir string) Option {
	return func(s *Source) { s.logDir = dir }
}

// WithLogger sets the logger for the source.
// If logger is nil, it is ignored and the default logger is retained.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVisitBufferSize sets the visit channel buffer size.
func WithVisitBufferSize(size int) Option {
	return func(s *Source) { s.visitBufferSize = size }
}

// NewSource creates a Source that replays joins since replaySince before
// following new ones. A zero replaySince follows from now.
func NewSource(replaySince time.Time, opts ...Option) *Source {
	s := &Source{
		replaySince:     replaySince,
		logger:          slog.Default(),
		visitBufferSize: DefaultVisitBufferSize,
		errorBufferSize: DefaultErrorBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.visitBufferSize < 1 {
		s.visitBufferSize = 1
	}
	return s
}

func (s *Source) watchOptions() []vrclog.WatchOption {
	opts := []vrclog.WatchOption{
		vrclog.WithIncludeTypes(TypeWorldJoin),
		vrclog.WithIncludeRawLine(true),
		vrclog.WithLogger(s.logger),
	}
	if !s.replaySince.IsZero() {
		opts = append(opts, vrclog.WithReplaySinceTime(s.replaySince))
	}
	if s.logDir != "" {
		opts = append(opts, vrclog.WithLogDir(s.logDir))
	}
	return opts
}

// Start begins watching and returns visit and error channels.
// Both channels close when ctx is cancelled or the watcher stops.
func (s *Source) Start(ctx context.Context) (<-chan visit.Visit, <-chan error, error) {
	s.logger.Info("starting log watcher",
		"replay_since", s.replaySince,
		"log_dir", s.logDir,
	)

	watcher, err := vrclog.NewWatcherWithOptions(s.watchOptions()...)
	if err != nil {
		return nil, nil, err
	}

	vrcEvents, vrcErrs, err := watcher.Watch(ctx)
	if err != nil {
		_ = watcher.Close()
		return nil, nil, err
	}

	visitCh := make(chan visit.Visit, s.visitBufferSize)
	errCh := make(chan error, s.errorBufferSize)

	// Nil each input channel when closed; exit when both are nil.
	go func() {
		defer close(visitCh)
		defer close(errCh)
		defer watcher.Close()

		events := vrcEvents
		errs := vrcErrs
		var dropped int64
		defer func() {
			if dropped > 0 {
				s.logger.Warn("errors dropped due to full buffer", "count", dropped)
			}
		}()

		for events != nil || errs != nil {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				v, ok := convertEvent(ev)
				if !ok {
					continue
				}
				select {
				case visitCh <- v:
				case <-ctx.Done():
					return
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				select {
				case errCh <- convertError(err):
				case <-ctx.Done():
					return
				default:
					dropped++
				}
			}
		}
	}()

	return visitCh, errCh, nil
}

// convertEvent turns a world join into a Visit. Other events, and joins
// without a usable world id, are dropped.
func convertEvent(ev vrclog.Event) (visit.Visit, bool) {
	if ev.Type != TypeWorldJoin {
		return visit.Visit{}, false
	}
	raw := ev.WorldID
	if ev.InstanceID != "" {
		raw += ":" + ev.InstanceID
	}
	inst, err := instance.Decode(raw)
	if err != nil {
		return visit.Visit{}, false
	}
	return visit.Visit{Instance: inst, Timestamp: ev.Timestamp}, true
}

// convertError converts vrclog errors to our error types.
func convertError(err error) error {
	var parseErr *vrclog.ParseError
	if errors.As(err, &parseErr) {
		return &ParseError{Line: parseErr.Line, Err: parseErr.Err}
	}
	return err
}
