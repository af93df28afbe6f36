// file: internal/watcher/watcher_test.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7890-abcd-ef1234567890

package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebounceSingleEvent(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	var got atomic.Value
	w := New(func(d string) {
		got.Store(d)
		calls.Add(1)
	}, 100*time.Millisecond)

	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "parts.json"), []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)

	if c := calls.Load(); c != 1 {
		t.Errorf("expected 1 callback, got %d", c)
	}
	if d, _ := got.Load().(string); d != dir {
		t.Errorf("expected callback with %q, got %q", dir, d)
	}
}

func TestDebounceMultipleEvents(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	w := New(func(string) {
		calls.Add(1)
	}, 200*time.Millisecond)

	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	names := []string{"parts.json", "colors.yaml", "fuses.yml", "parts.json", "colors.yaml"}
	for _, name := range names {
		_ = os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0644)
		time.Sleep(30 * time.Millisecond)
	}

	time.Sleep(400 * time.Millisecond)

	if c := calls.Load(); c != 1 {
		t.Errorf("expected exactly 1 debounced callback, got %d", c)
	}
}

func TestNonCatalogFilesIgnored(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	w := New(func(string) {
		calls.Add(1)
	}, 100*time.Millisecond)

	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	_ = os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0644)
	_ = os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0644)
	_ = os.WriteFile(filepath.Join(dir, "parts.csv"), []byte("a,b"), 0644)

	time.Sleep(300 * time.Millisecond)

	if c := calls.Load(); c != 0 {
		t.Errorf("expected 0 callbacks for non-catalog files, got %d", c)
	}
}

func TestStartMissingDir(t *testing.T) {
	w := New(func(string) {}, 100*time.Millisecond)
	if err := w.Start(filepath.Join(t.TempDir(), "missing")); err == nil {
		w.Stop()
		t.Fatal("expected error for missing directory")
	}
	w.Stop() // not running, must not block
}

func TestStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := New(func(string) {}, 100*time.Millisecond)
	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop() // should not panic
}

func TestStartIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := New(func(string) {}, 100*time.Millisecond)
	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteTriggers(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "fuses.json")
	_ = os.WriteFile(f, []byte("[]"), 0644)

	var mu sync.Mutex
	var called bool
	w := New(func(string) {
		mu.Lock()
		called = true
		mu.Unlock()
	}, 100*time.Millisecond)

	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)

	_ = os.Remove(f)
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if !called {
		t.Error("expected callback on file deletion")
	}
}
