// Package app provides application use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/graaaaa/vrcvisits/internal/logscan"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

// HistoryUsecase loads the filtered visit history.
type HistoryUsecase interface {
	Load(ctx context.Context, req HistoryRequest) (HistoryResult, error)
}

// LogScanner scans log files into a history.
type LogScanner interface {
	ScanFiles(paths []string) (*visit.History, error)
}

// HistoryRequest selects the logs to read and the filter to apply.
// Paths wins over LogDir; with neither, the client's default log directory is used.
type HistoryRequest struct {
	Paths  []string
	LogDir string
	Filter visit.Filter
}

// HistoryResult is a filtered history together with what produced it.
type HistoryResult struct {
	Visits    visit.Sorted
	Files     []string
	Total     int   // visits before filtering
	SourceErr error // joined failures of unreadable sources; the rest are still in Visits
}

// HistoryService implements HistoryUsecase.
type HistoryService struct {
	scanner       LogScanner
	clock         visit.Clock
	logger        *slog.Logger
	defaultLogDir func() (string, error)
	findLogFiles  func(dir string) ([]string, error)
}

// HistoryOption configures a HistoryService.
type HistoryOption func(*HistoryService)

// WithClock sets the clock used for age filtering (for testing).
func WithClock(c visit.Clock) HistoryOption {
	return func(s *HistoryService) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) HistoryOption {
	return func(s *HistoryService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultLogDir overrides the default log directory lookup.
func WithDefaultLogDir(f func() (string, error)) HistoryOption {
	return func(s *HistoryService) { s.defaultLogDir = f }
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(scanner LogScanner, opts ...HistoryOption) *HistoryService {
	s := &HistoryService{
		scanner:       scanner,
		clock:         visit.DefaultClock,
		logger:        slog.Default(),
		defaultLogDir: logscan.DefaultLogDir,
		findLogFiles:  logscan.FindLogFiles,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load scans the requested logs, then filters and sorts the visits.
// When no visit was read and a source failed, the source error is returned.
// Otherwise it returns visit.ErrNoVisits alongside the result when nothing
// survives.
func (s *HistoryService) Load(ctx context.Context, req HistoryRequest) (HistoryResult, error) {
	paths, err := s.resolvePaths(req)
	if err != nil {
		return HistoryResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return HistoryResult{}, err
	}

	h, scanErr := s.scanner.ScanFiles(paths)
	if scanErr != nil {
		s.logger.Warn("some logs could not be read", "error", scanErr)
	}

	result := HistoryResult{
		Files:     paths,
		SourceErr: scanErr,
	}
	if h != nil {
		all := h.Visits()
		result.Total = len(all)
		result.Visits = visit.Apply(all, req.Filter, s.clock.Now())
	}
	s.logger.Debug("history loaded",
		"files", len(paths),
		"total", result.Total,
		"kept", len(result.Visits),
	)

	if result.Total == 0 && scanErr != nil {
		return result, scanErr
	}
	if len(result.Visits) == 0 {
		return result, visit.ErrNoVisits
	}
	return result, nil
}

func (s *HistoryService) resolvePaths(req HistoryRequest) ([]string, error) {
	if len(req.Paths) > 0 {
		return req.Paths, nil
	}
	dir := req.LogDir
	if dir == "" {
		var err error
		if dir, err = s.defaultLogDir(); err != nil {
			return nil, err
		}
	}
	return s.findLogFiles(dir)
}
