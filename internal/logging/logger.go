package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// historySize is the number of recent entries kept for GET /api/logs.
const historySize = 500

// Config represents logging configuration.
type Config struct {
	Level   string            `toml:"level"`
	Format  string            `toml:"format"`
	Modules map[string]string `toml:"modules"`
}

var (
	mu          sync.RWMutex
	current     = Config{Level: "info", Format: "text"}
	initialized bool
	loggers     = make(map[string]*slog.Logger)
	levels      = make(map[string]*slog.LevelVar)
	rootLevel   = &slog.LevelVar{}
	history     = NewRingBuffer(historySize)
)

// Initialize applies config to the default logger and re-levels every module
// logger, including loggers handed out before this call. Loggers created
// earlier keep their original output format.
func Initialize(config Config) {
	mu.Lock()
	defer mu.Unlock()

	current = config
	initialized = true

	rootLevel.Set(levelOr(config.Level, slog.LevelInfo))
	for module, lv := range levels {
		lv.Set(moduleLevel(module))
	}

	slog.SetDefault(slog.New(newHandler(config.Format, rootLevel)))
}

// GetLogger returns the logger for module, creating it on first use.
// Its level follows the module override or the global level and is updated
// in place by later Initialize calls.
func GetLogger(module string) *slog.Logger {
	mu.RLock()
	logger, ok := loggers[module]
	mu.RUnlock()
	if ok {
		return logger
	}

	mu.Lock()
	defer mu.Unlock()
	if logger, ok := loggers[module]; ok {
		return logger
	}

	lv := &slog.LevelVar{}
	lv.Set(moduleLevel(module))

	format := "text"
	if initialized {
		format = current.Format
	}
	logger = slog.New(newHandler(format, lv)).With("module", module)
	loggers[module] = logger
	levels[module] = lv
	return logger
}

// History returns the buffer holding recent log entries.
func History() *RingBuffer {
	return history
}

// moduleLevel must be called with mu held.
func moduleLevel(module string) slog.Level {
	if !initialized {
		return slog.LevelInfo
	}
	level := levelOr(current.Level, slog.LevelInfo)
	if override, ok := current.Modules[module]; ok {
		level = levelOr(override, level)
	}
	return level
}

// newHandler builds the output chain: stdout when attached, the systemd
// journal when running under it, and always the in-memory history.
func newHandler(format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var stdout slog.Handler
	if format == "json" {
		stdout = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		stdout = slog.NewTextHandler(os.Stdout, opts)
	}

	var handlers []slog.Handler
	if stdoutAttached() {
		handlers = append(handlers, stdout)
	}
	if JournalAvailable() {
		handlers = append(handlers, NewJournalHandler(level))
	}
	handlers = append(handlers, NewBufferHandler(history, level))

	if len(handlers) == 1 {
		return handlers[0]
	}
	return NewMultiHandler(handlers...)
}

// stdoutAttached reports whether stdout goes to a terminal, pipe, socket or file.
func stdoutAttached() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	mode := fi.Mode()
	return mode&os.ModeCharDevice != 0 || mode&os.ModeNamedPipe != 0 ||
		mode&os.ModeSocket != 0 || mode.IsRegular()
}

// parseLevel converts a level name to slog.Level.
func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

func levelOr(level string, fallback slog.Level) slog.Level {
	if l, ok := parseLevel(level); ok {
		return l
	}
	return fallback
}
