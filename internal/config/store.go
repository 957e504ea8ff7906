package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/smazurov/audiobridge/internal/logging"
)

// DefaultPath returns the location of RS_ASIO.ini: the directory holding the
// running executable joined with FileName.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	dir := filepath.Dir(exe)
	if dir == "" || dir == "." {
		return "", fmt.Errorf("executable path %q has no directory", exe)
	}
	return filepath.Join(dir, FileName), nil
}

// LoadResult is the outcome of reading RS_ASIO.ini.
type LoadResult struct {
	Path        string
	Settings    Settings
	Found       bool
	Diagnostics []Diagnostic
}

// DiagnosticCounts groups the diagnostics by kind.
func (r LoadResult) DiagnosticCounts() map[string]int {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, d := range r.Diagnostics {
		counts[string(d.Kind)]++
	}
	return counts
}

// Load reads the INI file at path on top of the defaults.
// A missing or unreadable file is logged and yields the defaults; it is never an error.
func Load(path string, logger *slog.Logger) LoadResult {
	if logger == nil {
		logger = logging.GetLogger("config")
	}
	result := LoadResult{Path: path, Settings: Defaults()}
	if path == "" {
		logger.Info("No config file location, using defaults")
		return result
	}

	settings, err := ParseFile(path, logger, WithObserver(func(d Diagnostic) {
		result.Diagnostics = append(result.Diagnostics, d)
	}))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			logger.Info("Failed to open config file, using defaults", "path", path, "error", err)
			return result
		}
		// read failed midway: keep whatever was applied before the error
		logger.Warn("Failed to read config file", "path", path, "error", err)
	}

	result.Settings = settings
	result.Found = true
	logger.Debug("Config file loaded", "path", path, "diagnostics", len(result.Diagnostics))
	return result
}

// Store holds the settings for one config file, computed at most once.
// It is safe for concurrent use.
type Store struct {
	path   string
	logger *slog.Logger
	once   sync.Once
	result LoadResult
}

// NewStore creates a store for the file at path. Nothing is read until first access.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger("config")
	}
	return &Store{path: path, logger: logger}
}

func (s *Store) load() {
	s.once.Do(func() {
		s.result = Load(s.path, s.logger)
	})
}

// Settings returns a copy of the loaded settings.
func (s *Store) Settings() Settings {
	s.load()
	return s.result.Settings.Clone()
}

// Result returns the full outcome of loading the file.
func (s *Store) Result() LoadResult {
	s.load()
	out := s.result
	out.Settings = out.Settings.Clone()
	out.Diagnostics = append([]Diagnostic(nil), s.result.Diagnostics...)
	return out
}

var globalStore = sync.OnceValue(func() *Store {
	logger := logging.GetLogger("config")
	path, err := DefaultPath()
	if err != nil {
		logger.Info("Failed to locate config file", "error", err)
	}
	return NewStore(path, logger)
})

// Global returns the process-wide settings read from the file next to the executable.
// Prefer passing a Store or Settings explicitly; Global is for callers that cannot be wired.
func Global() Settings {
	return globalStore().Settings()
}
