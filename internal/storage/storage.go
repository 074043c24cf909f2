package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
)

// Cache stores the last observed status across runs. Implementations hold a
// single value, overwritten on every save.
type Cache interface {
	Load() (availability.Status, error)
	Save(status availability.Status) error
}

// FileCache keeps the status in a one-line text file.
type FileCache struct {
	path string
}

// NewFileCache creates a FileCache at the given path, creating the parent
// directory if needed.
func NewFileCache(path string) (*FileCache, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	return &FileCache{path: path}, nil
}

// Load reads the cached status. A missing file means no previous observation.
func (c *FileCache) Load() (availability.Status, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return availability.None, nil
		}
		return availability.None, fmt.Errorf("reading cache: %w", err)
	}
	return availability.ParseStatus(string(data)), nil
}

// Save overwrites the cache with the given status string.
func (c *FileCache) Save(status availability.Status) error {
	if err := os.WriteFile(c.path, []byte(status), 0644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
