package shortcut

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/graaaaa/vrcvisits/internal/visit"
)

// Linker performs the file operations behind an Action.
type Linker interface {
	// Touch updates the modification time of an existing shortcut.
	Touch(path string, t time.Time) error
	// Create writes a new shortcut for v at path.
	Create(path string, v visit.Visit, variant Variant) error
}

// ListArtifacts returns the names of the regular shortcut files in dir.
// A missing directory holds no shortcuts.
func ListArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read save dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Saver stores quick-save shortcuts in a directory without duplicating them.
type Saver struct {
	dir    string
	linker Linker
	clock  visit.Clock
	logger *slog.Logger
}

// SaverOption configures a Saver.
type SaverOption func(*Saver)

// WithLinker replaces the default FileLinker.
func WithLinker(l Linker) SaverOption {
	return func(s *Saver) { s.linker = l }
}

// WithClock sets the clock used for touch times (for testing).
func WithClock(c visit.Clock) SaverOption {
	return func(s *Saver) { s.clock = c }
}

// WithLogger sets the logger for the Saver.
func WithLogger(logger *slog.Logger) SaverOption {
	return func(s *Saver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSaver creates a Saver writing to dir.
func NewSaver(dir string, opts ...SaverOption) *Saver {
	s := &Saver{
		dir:    dir,
		linker: FileLinker{},
		clock:  visit.DefaultClock,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory shortcuts are saved in.
func (s *Saver) Dir() string {
	return s.dir
}

// Save makes sure a shortcut of the given variant exists for v. The directory
// is listed once; an existing shortcut for the same key is touched, otherwise
// a new one is created. Returns the action taken.
func (s *Saver) Save(v visit.Visit, variant Variant) (Action, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return Action{}, fmt.Errorf("make save dir: %w", err)
	}

	existing, err := ListArtifacts(s.dir)
	if err != nil {
		return Action{}, err
	}

	action := Resolve(v, variant, existing)
	if err := ValidateName(action.Name); err != nil {
		return Action{}, err
	}
	path := filepath.Join(s.dir, action.Name)

	switch action.Kind {
	case Touch:
		if err := s.linker.Touch(path, s.clock.Now()); err != nil {
			return action, fmt.Errorf("touch shortcut: %w", err)
		}
	case Create:
		if err := s.linker.Create(path, v, variant); err != nil {
			return action, fmt.Errorf("create shortcut: %w", err)
		}
	}

	s.logger.Info("quick save",
		"action", action.Kind.String(),
		"variant", variant.String(),
		"name", action.Name,
	)
	return action, nil
}
