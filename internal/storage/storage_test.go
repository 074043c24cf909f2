package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
)

func TestFileCache_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewFileCache(filepath.Join(tmpDir, "last_status.txt"))
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	// Missing file means no previous observation.
	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() on missing file error: %v", err)
	}
	if got != availability.None {
		t.Errorf("Load() on missing file = %v, want None", got)
	}

	// Each save overwrites the previous value.
	sequence := []availability.Status{
		availability.Full,
		availability.Limited,
		availability.Unknown,
		availability.Available,
	}
	for _, status := range sequence {
		if err := cache.Save(status); err != nil {
			t.Fatalf("Save(%v) error: %v", status, err)
		}
		got, err := cache.Load()
		if err != nil {
			t.Fatalf("Load() after Save(%v) error: %v", status, err)
		}
		if got != status {
			t.Errorf("Load() = %v, want %v", got, status)
		}
	}

	// The file holds exactly the status string.
	data, err := os.ReadFile(filepath.Join(tmpDir, "last_status.txt"))
	if err != nil {
		t.Fatalf("reading cache file: %v", err)
	}
	if string(data) != string(availability.Available) {
		t.Errorf("cache file holds %q, want %q", data, availability.Available)
	}
}

func TestFileCache_CreatesParentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "state", "fumo", "last_status.txt")

	cache, err := NewFileCache(nested)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	if err := cache.Save(availability.Limited); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := os.Stat(nested); err != nil {
		t.Errorf("cache file not created: %v", err)
	}
}

func TestFileCache_GarbageIsUnknown(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "last_status.txt")
	if err := os.WriteFile(path, []byte("not-a-status"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	cache, err := NewFileCache(path)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != availability.Unknown {
		t.Errorf("Load() of garbage = %v, want Unknown", got)
	}
}

func TestArtifactWriter(t *testing.T) {
	tmpDir := t.TempDir()
	w := NewArtifactWriter(filepath.Join(tmpDir, "html_dump"), filepath.Join(tmpDir, "shots"))

	htmlPath, err := w.SaveCellHTML(`<span class="mark">△</span> 残1`)
	if err != nil {
		t.Fatalf("SaveCellHTML() error: %v", err)
	}
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("reading cell HTML artifact: %v", err)
	}
	if string(data) != `<span class="mark">△</span> 残1` {
		t.Errorf("cell HTML artifact content mismatch: %q", data)
	}

	shotPath, err := w.SaveScreenshot([]byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("SaveScreenshot() error: %v", err)
	}
	if _, err := os.Stat(shotPath); err != nil {
		t.Errorf("screenshot artifact not written: %v", err)
	}

	icsPath, err := w.SaveReminder("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	if err != nil {
		t.Fatalf("SaveReminder() error: %v", err)
	}
	if filepath.Dir(icsPath) != filepath.Dir(htmlPath) {
		t.Errorf("reminder written to %s, want same directory as cell HTML", icsPath)
	}
}
