package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func reset() {
	mu.Lock()
	defer mu.Unlock()
	loggers = make(map[string]*slog.Logger)
	levels = make(map[string]*slog.LevelVar)
	initialized = false
	current = Config{Level: "info", Format: "text"}
}

func TestModuleLevelOverride(t *testing.T) {
	reset()
	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"config":  "debug",
			"api":     "warn",
			"devices": "bogus",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"config", true, true, true},
		{"api", false, false, true},
		{"devices", false, true, true},
		{"other", false, true, true},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			h := GetLogger(tt.module).Handler()
			if got := h.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := h.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("info enabled = %v, want %v", got, tt.wantInfo)
			}
			if got := h.Enabled(ctx, slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("warn enabled = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	reset()

	before := GetLogger("config")
	if before.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("logger created before Initialize should not have debug enabled")
	}

	Initialize(Config{Level: "info", Modules: map[string]string{"config": "debug"}})

	after := GetLogger("config")
	if before != after {
		t.Error("GetLogger should return the cached logger")
	}
	if !before.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("cached logger should have debug enabled after Initialize")
	}
}

func TestLoggerRecordsHistory(t *testing.T) {
	reset()
	Initialize(Config{Level: "debug"})

	GetLogger("history-test").Warn("Backend failed", "backend", "system", "error", errors.New("boom"))

	var found *LogEntry
	for _, e := range History().Recent(0) {
		if e.Message == "Backend failed" {
			found = &e
		}
	}
	if found == nil {
		t.Fatal("entry not recorded in history")
	}
	if found.Module != "history-test" || found.Level != "warn" {
		t.Errorf("entry = %+v, want module history-test level warn", found)
	}
	if found.Attributes["error"] != "boom" || found.Attributes["backend"] != "system" {
		t.Errorf("attributes = %v", found.Attributes)
	}
}

func TestMultiHandlerRespectsEachLevel(t *testing.T) {
	var buf bytes.Buffer
	debug := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	info := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(NewMultiHandler(debug, info)).With("module", "test")
	logger.Debug("debug only message")
	logger.Info("both message")

	out := buf.String()
	if n := strings.Count(out, "debug only message"); n != 1 {
		t.Errorf("debug message written %d times, want 1", n)
	}
	if n := strings.Count(out, "both message"); n != 2 {
		t.Errorf("info message written %d times, want 2", n)
	}
	if n := strings.Count(out, "module=test"); n != 3 {
		t.Errorf("module attr written %d times, want 3", n)
	}
}

func TestBufferHandlerGroups(t *testing.T) {
	rb := NewRingBuffer(4)
	logger := slog.New(NewBufferHandler(rb, slog.LevelInfo)).
		With("module", "devices").
		WithGroup("slot").
		With("index", 1)

	logger.Info("Input configured", "driver", "Focusrite", slog.Group("range", "lo", 0, "hi", 7))
	logger.Debug("dropped")

	entries := rb.Recent(0)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Module != "devices" {
		t.Errorf("module = %q, want devices", e.Module)
	}
	want := map[string]any{
		"slot.index":    int64(1),
		"slot.driver":   "Focusrite",
		"slot.range.lo": int64(0),
		"slot.range.hi": int64(7),
	}
	for k, v := range want {
		if e.Attributes[k] != v {
			t.Errorf("attr %q = %v (%T), want %v", k, e.Attributes[k], e.Attributes[k], v)
		}
	}
}

func TestRingBufferWraps(t *testing.T) {
	rb := NewRingBuffer(3)
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		rb.Write(LogEntry{Message: m})
	}

	if rb.Len() != 3 {
		t.Errorf("Len() = %d, want 3", rb.Len())
	}

	var got []string
	for _, e := range rb.Recent(0) {
		got = append(got, e.Message)
	}
	if strings.Join(got, "") != "cde" {
		t.Errorf("Recent(0) = %v, want [c d e]", got)
	}

	last := rb.Recent(2)
	if len(last) != 2 || last[0].Message != "d" || last[1].Message != "e" {
		t.Errorf("Recent(2) = %+v, want d, e", last)
	}
}

func TestFormatLogLine(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	line := FormatLogLine(LogEntry{
		Timestamp:  ts,
		Level:      "error",
		Module:     "config",
		Message:    "Malformed ini section",
		Attributes: map[string]any{"line": 6, "section": "Asio"},
	})
	want := "2024-01-02T03:04:05Z ERROR [config] Malformed ini section line=6 section=Asio"
	if line != want {
		t.Errorf("FormatLogLine() = %q, want %q", line, want)
	}
}

func TestJournalKey(t *testing.T) {
	tests := map[string]string{
		"module":         "MODULE",
		"slot_index":     "SLOT_INDEX",
		"buffer-mode.v2": "BUFFER_MODE_V2",
	}
	for in, want := range tests {
		if got := journalKey(in); got != want {
			t.Errorf("journalKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"DEBUG", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"invalid", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseLevel(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseLevel(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
