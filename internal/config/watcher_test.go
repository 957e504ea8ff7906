package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func loadSettings(path string) (Settings, error) {
	return ParseFile(path, newTestLogger())
}

func startWatcher(t *testing.T, w *Watcher[Settings]) {
	t.Helper()
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := w.Stop(); err != nil {
			t.Errorf("watcher.Stop failed: %v", err)
		}
	})
	// let the watch settle before the first write
	time.Sleep(100 * time.Millisecond)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[Config]\nEnableAsio=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	received := make(chan Settings, 1)
	w := NewWatcher(path, loadSettings, newTestLogger(), WithDebounce[Settings](50*time.Millisecond))
	w.OnReload(func(s Settings) {
		select {
		case received <- s:
		default:
		}
	})
	startWatcher(t, w)

	if err := os.WriteFile(path, []byte("[Config]\nEnableAsio=0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-received:
		if s.EnableAsio {
			t.Error("EnableAsio = true after reload, want false")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
}

func TestWatcherPicksUpCreatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	received := make(chan Settings, 1)
	w := NewWatcher(path, loadSettings, newTestLogger(), WithDebounce[Settings](50*time.Millisecond))
	w.OnReload(func(s Settings) {
		select {
		case received <- s:
		default:
		}
	})
	startWatcher(t, w)

	if err := os.WriteFile(path, []byte("[Asio.Output]\nDriver=New\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-received:
		if s.Asio.Output.DriverName != "New" {
			t.Errorf("output driver = %q, want %q", s.Asio.Output.DriverName, "New")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w := NewWatcher(path, loadSettings, newTestLogger(), WithDebounce[Settings](50*time.Millisecond))
	w.OnReload(func(Settings) { calls.Add(1) })
	startWatcher(t, w)

	if err := os.WriteFile(filepath.Join(dir, "other.ini"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("handler called %d times for an unrelated file", got)
	}
}

func TestWatcherDebounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	last := make(chan Settings, 10)
	w := NewWatcher(path, loadSettings, newTestLogger(), WithDebounce[Settings](200*time.Millisecond))
	w.OnReload(func(s Settings) {
		calls.Add(1)
		last <- s
	})
	startWatcher(t, w)

	for _, driver := range []string{"a", "b", "c", "d"} {
		if err := os.WriteFile(path, []byte("[Asio.Output]\nDriver="+driver+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("handler called %d times, want 1", got)
	}
	s := <-last
	if s.Asio.Output.DriverName != "d" {
		t.Errorf("output driver = %q, want %q", s.Asio.Output.DriverName, "d")
	}
}

func TestWatcherUnsubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	var removed, kept atomic.Int32
	done := make(chan struct{}, 1)
	w := NewWatcher(path, loadSettings, newTestLogger(), WithDebounce[Settings](50*time.Millisecond))
	unsub := w.OnReload(func(Settings) { removed.Add(1) })
	w.OnReload(func(Settings) {
		kept.Add(1)
		select {
		case done <- struct{}{}:
		default:
		}
	})
	unsub()
	startWatcher(t, w)

	if err := os.WriteFile(path, []byte("[Config]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}

	if removed.Load() != 0 {
		t.Error("unsubscribed handler was called")
	}
	if kept.Load() != 1 {
		t.Errorf("remaining handler called %d times, want 1", kept.Load())
	}
}

func TestWatcherErrorHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	errLoad := errors.New("load failed")
	errs := make(chan error, 1)
	var handled atomic.Int32
	w := NewWatcher(path,
		func(string) (Settings, error) { return Settings{}, errLoad },
		newTestLogger(),
		WithDebounce[Settings](50*time.Millisecond),
		WithErrorHandler[Settings](func(err error) {
			select {
			case errs <- err:
			default:
			}
		}),
	)
	w.OnReload(func(Settings) { handled.Add(1) })
	startWatcher(t, w)

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errs:
		if !errors.Is(err, errLoad) {
			t.Errorf("got error %v, want %v", err, errLoad)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for error handler")
	}
	if handled.Load() != 0 {
		t.Error("reload handler called after loader error")
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), FileName), loadSettings, newTestLogger())
	if err := w.Stop(); err != nil {
		t.Errorf("Stop without Start returned %v", err)
	}
}
