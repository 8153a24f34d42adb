package watch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/graaaaa/vrcvisits/internal/visit"
)

// VisitSource abstracts visit production for testing.
// Implementations should close both channels when ctx is cancelled or on fatal error.
type VisitSource interface {
	Start(ctx context.Context) (<-chan visit.Visit, <-chan error, error)
}

// Follower applies a filter to live visits and hands survivors to a callback.
type Follower struct {
	source VisitSource
	filter visit.Filter
	handle func(visit.Visit)
	clock  visit.Clock
	logger *slog.Logger
	// warn throttles source error warnings; a broken log can fail every line.
	warn   rate.Sometimes
}

// FollowerOption configures a Follower.
type FollowerOption func(*Follower)

// WithFilter sets the filter applied to each visit.
func WithFilter(f visit.Filter) FollowerOption {
	return func(fl *Follower) { fl.filter = f }
}

// WithClock sets the clock used for age filtering (for testing).
func WithClock(c visit.Clock) FollowerOption {
	return func(fl *Follower) {
		if c != nil {
			fl.clock = c
		}
	}
}

// WithFollowerLogger sets the logger for the Follower.
func WithFollowerLogger(logger *slog.Logger) FollowerOption {
	return func(fl *Follower) {
		if logger != nil {
			fl.logger = logger
		}
	}
}

// NewFollower creates a Follower that calls handle for each kept visit.
func NewFollower(source VisitSource, handle func(visit.Visit), opts ...FollowerOption) *Follower {
	fl := &Follower{
		source: source,
		handle: handle,
		clock:  visit.DefaultClock,
		logger: slog.Default(),
		warn:   rate.Sometimes{First: 3, Interval: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(fl)
	}
	return fl
}

// Run blocks until ctx is cancelled or the source closes.
// Returns ctx.Err() on context cancellation, nil on clean source shutdown.
func (fl *Follower) Run(ctx context.Context) error {
	visits, errs, err := fl.source.Start(ctx)
	if err != nil {
		return err
	}
	if visits == nil || errs == nil {
		return errors.New("source returned nil channel")
	}

	fl.logger.Info("following log")
	defer fl.logger.Info("stopped following log")

	for visits != nil || errs != nil {
		select {
		case v, ok := <-visits:
			if !ok {
				visits = nil
				continue
			}
			if kept := visit.Apply([]visit.Visit{v}, fl.filter, fl.clock.Now()); len(kept) == 1 {
				fl.handle(v)
			} else {
				fl.logger.Debug("visit filtered", "visit", v.String())
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fl.handleError(err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return ctx.Err()
}

func (fl *Follower) handleError(err error) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		fl.logger.Debug("unparsed log line", "line_length", len(parseErr.Line), "error", parseErr.Err)
		return
	}
	fl.warn.Do(func() {
		fl.logger.Warn("source error", "error", err)
	})
}
