// Package logscan extracts instance visits from VRChat client log files.
package logscan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/graaaaa/vrcvisits/internal/instance"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

// DestinationMarker identifies the log line written when the client picks
// the next instance to join.
const DestinationMarker = "[VRCFlowManagerVRC] Destination set: "

var timestampPattern = regexp.MustCompile(`\d{4}(\.\d{2}){2} \d{2}(:\d{2}){2}`)

// Stats counts what a Scanner has seen across all Scan calls.
type Stats struct {
	Lines     int
	Markers   int
	Visits    int
	Skipped   int
	ReadError bool
}

// Scanner turns log lines into visits.
type Scanner struct {
	location *time.Location
	logger   *slog.Logger
	stats    Stats
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLocation sets the location timestamps are interpreted in.
// Defaults to time.Local, matching the client which logs local wall time.
func WithLocation(loc *time.Location) Option {
	return func(s *Scanner) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger sets the logger for the Scanner.
// If logger is nil, it is ignored and the default logger is retained.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner creates a new Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		location: time.Local,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the counters accumulated so far.
func (s *Scanner) Stats() Stats {
	return s.stats
}

// Scan streams r line by line and yields a visit for every destination line
// carrying both an identifier and a timestamp. Lines that do not qualify are
// skipped. A read error other than io.EOF is yielded once, as the last
// element, with a zero Visit.
func (s *Scanner) Scan(r io.Reader) iter.Seq2[visit.Visit, error] {
	return func(yield func(visit.Visit, error) bool) {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				s.stats.Lines++
				if v, ok := s.parseLine(line); ok {
					s.stats.Visits++
					if !yield(v, nil) {
						return
					}
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					s.stats.ReadError = true
					yield(visit.Visit{}, fmt.Errorf("read log: %w", err))
				}
				return
			}
		}
	}
}

func (s *Scanner) parseLine(line string) (visit.Visit, bool) {
	if !strings.Contains(line, DestinationMarker) {
		return visit.Visit{}, false
	}
	s.stats.Markers++

	inst, err := instance.Decode(line)
	if err != nil {
		s.skip("no identifier", line)
		return visit.Visit{}, false
	}

	stamp := timestampPattern.FindString(line)
	if stamp == "" {
		s.skip("no timestamp", line)
		return visit.Visit{}, false
	}
	ts, err := time.ParseInLocation(visit.TimeLayout, stamp, s.location)
	if err != nil {
		s.skip("bad timestamp", line)
		return visit.Visit{}, false
	}

	return visit.Visit{Instance: inst, Timestamp: ts}, true
}

func (s *Scanner) skip(reason, line string) {
	s.stats.Skipped++
	s.logger.Debug("destination line skipped",
		"reason", reason,
		"line_length", len(line),
	)
}
