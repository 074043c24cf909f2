package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	cellHTMLFilename   = "target_cell.html"
	screenshotFilename = "calendar.png"
	reminderFilename   = "reservation.ics"
)

// ArtifactWriter dumps per-run debug artifacts for workflow inspection.
type ArtifactWriter struct {
	htmlDir string
	shotDir string
}

// NewArtifactWriter creates a writer for the given dump directories.
func NewArtifactWriter(htmlDir, shotDir string) *ArtifactWriter {
	return &ArtifactWriter{
		htmlDir: htmlDir,
		shotDir: shotDir,
	}
}

// SaveCellHTML writes the matched cell's inner HTML and returns the path.
func (w *ArtifactWriter) SaveCellHTML(html string) (string, error) {
	if err := os.MkdirAll(w.htmlDir, 0755); err != nil {
		return "", fmt.Errorf("creating html dump directory: %w", err)
	}
	path := filepath.Join(w.htmlDir, cellHTMLFilename)
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("writing cell HTML: %w", err)
	}
	return path, nil
}

// SaveReminder writes the iCalendar reminder generated for a notification.
func (w *ArtifactWriter) SaveReminder(ics string) (string, error) {
	if err := os.MkdirAll(w.htmlDir, 0755); err != nil {
		return "", fmt.Errorf("creating html dump directory: %w", err)
	}
	path := filepath.Join(w.htmlDir, reminderFilename)
	if err := os.WriteFile(path, []byte(ics), 0644); err != nil {
		return "", fmt.Errorf("writing reminder: %w", err)
	}
	return path, nil
}

// SaveScreenshot writes the rendered page screenshot and returns the path.
func (w *ArtifactWriter) SaveScreenshot(png []byte) (string, error) {
	if err := os.MkdirAll(w.shotDir, 0755); err != nil {
		return "", fmt.Errorf("creating screenshot directory: %w", err)
	}
	path := filepath.Join(w.shotDir, screenshotFilename)
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	return path, nil
}
