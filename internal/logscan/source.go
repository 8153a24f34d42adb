package logscan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/graaaaa/vrcvisits/internal/appinfo"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

// Sentinel errors for locating and opening log sources.
var (
	// ErrSourceUnavailable is returned when a log file cannot be opened.
	ErrSourceUnavailable = errors.New("log source unavailable")

	// ErrLogDirNotFound is returned when the log directory does not exist.
	ErrLogDirNotFound = errors.New("log directory not found")

	// ErrNoLogFiles is returned when the log directory holds no log files.
	ErrNoLogFiles = errors.New("no log files found")
)

// SourceError wraps a failure to open or read one log source.
type SourceError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("log source %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is reports ErrSourceUnavailable for every SourceError.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// ScanFiles scans each path in order and collects the visits into a new
// History. Each file is closed before the next one is opened. A file that
// cannot be opened or read is reported in the returned error (one
// *SourceError per failure, joined) and does not stop the remaining files.
func (s *Scanner) ScanFiles(paths []string) (*visit.History, error) {
	h := visit.NewHistory()
	var errs []error
	for _, path := range paths {
		if err := s.scanFile(path, h); err != nil {
			s.logger.Warn("log source failed", "path", path, "error", err)
			errs = append(errs, &SourceError{Path: path, Err: err})
		}
	}
	return h, errors.Join(errs...)
}

func (s *Scanner) scanFile(path string, h *visit.History) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	before := s.stats.Visits
	for v, err := range s.Scan(f) {
		if err != nil {
			return err
		}
		h.Add(v)
	}
	s.logger.Debug("log source scanned", "path", path, "visits", s.stats.Visits-before)
	return nil
}

// FindLogFiles returns the regular files in dir matching appinfo.LogFileGlob,
// sorted by name. The client names logs by start time, so name order is
// chronological.
func FindLogFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLogDirNotFound, dir)
		}
		return nil, fmt.Errorf("stat log dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrLogDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read log dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(appinfo.LogFileGlob, e.Name()); !ok {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLogFiles, dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// DefaultLogDir returns the VRChat client log directory.
// On Windows: %AppData%\..\LocalLow\VRChat\VRChat
// Other platforms have no standard location and need an explicit directory.
func DefaultLogDir() (string, error) {
	if runtime.GOOS != "windows" {
		return "", fmt.Errorf("%w: no default on %s, set a log directory", ErrLogDirNotFound, runtime.GOOS)
	}
	roaming, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLogDirNotFound, err)
	}
	return filepath.Join(filepath.Dir(roaming), "LocalLow", "VRChat", "VRChat"), nil
}
