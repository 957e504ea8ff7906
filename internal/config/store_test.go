package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	logger, buf := newCaptureLogger()
	result := Load(filepath.Join(t.TempDir(), FileName), logger)

	if result.Found {
		t.Error("Found = true for missing file")
	}
	if diff := cmp.Diff(Defaults(), result.Settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "Failed to open config file") {
		t.Errorf("expected missing file to be logged, got %q", buf.String())
	}
}

func TestLoadEmptyPath(t *testing.T) {
	logger, _ := newCaptureLogger()
	result := Load("", logger)
	if result.Found {
		t.Error("Found = true for empty path")
	}
	if diff := cmp.Diff(Defaults(), result.Settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCollectsDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	text := "[Asio]\nBufferSizeMode=fast\n[Asio.Input.0\n[Asio.Input.1]\nChannel=x\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	logger, _ := newCaptureLogger()
	result := Load(path, logger)
	if !result.Found {
		t.Fatal("Found = false for existing file")
	}

	var lines []int
	for _, d := range result.Diagnostics {
		lines = append(lines, d.Line)
	}
	if diff := cmp.Diff([]int{2, 3, 5}, lines); diff != "" {
		t.Errorf("diagnostic lines mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreLoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[Asio.Output]\nDriver=First\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger, _ := newCaptureLogger()
	store := NewStore(path, logger)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = store.Settings().Asio.Output.DriverName
		}(i)
	}
	wg.Wait()

	for i, name := range results {
		if name != "First" {
			t.Errorf("goroutine %d saw driver %q, want %q", i, name, "First")
		}
	}

	// later edits are not observed by the same store
	if err := os.WriteFile(path, []byte("[Asio.Output]\nDriver=Second\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := store.Settings().Asio.Output.DriverName; got != "First" {
		t.Errorf("driver after edit = %q, want %q", got, "First")
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[Asio.Input.0]\nChannel=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger, _ := newCaptureLogger()
	store := NewStore(path, logger)

	first := store.Settings()
	*first.Asio.Inputs[0].Channel = 9
	first.EnableAsio = false

	second := store.Settings()
	if got := second.Asio.Inputs[0].ChannelOr(0); got != 2 {
		t.Errorf("channel = %d, want 2", got)
	}
	if !second.EnableAsio {
		t.Error("EnableAsio was mutated through a returned copy")
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath failed: %v", err)
	}
	if filepath.Base(path) != FileName {
		t.Errorf("DefaultPath() = %q, want file name %q", path, FileName)
	}
	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != filepath.Dir(exe) {
		t.Errorf("DefaultPath() dir = %q, want %q", filepath.Dir(path), filepath.Dir(exe))
	}
}

func TestDiagnosticCounts(t *testing.T) {
	r := LoadResult{Diagnostics: []Diagnostic{
		{Kind: DiagnosticMalformedSection},
		{Kind: DiagnosticInvalidValue},
		{Kind: DiagnosticInvalidValue},
	}}
	want := map[string]int{"malformed_section": 1, "invalid_value": 2}
	if diff := cmp.Diff(want, r.DiagnosticCounts()); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	if (LoadResult{}).DiagnosticCounts() != nil {
		t.Error("empty result should have nil counts")
	}
}

func TestGlobalConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]Settings, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Global()
		}(i)
	}
	wg.Wait()

	// the test binary has no RS_ASIO.ini beside it
	for i, s := range results {
		if diff := cmp.Diff(Defaults(), s); diff != "" {
			t.Errorf("goroutine %d settings mismatch (-want +got):\n%s", i, diff)
		}
	}
	if globalStore() != globalStore() {
		t.Error("Global should share one store")
	}

	results[0].EnableAsio = false
	if !Global().EnableAsio {
		t.Error("Global returned a shared value")
	}
}
