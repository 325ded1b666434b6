package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	pagesDir     = "pages"
	responsesDir = "responses"
	metaSuffix   = ".meta.json"
	bodySuffix   = ".body"
)

func ensureDir(dir string, strict bool) error {
	perm := os.FileMode(0o755)
	if strict {
		perm = 0o700
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return err
	}
	if strict {
		// MkdirAll leaves an existing directory untouched.
		return os.Chmod(dir, 0o700)
	}
	return nil
}

func fileMode(strict bool) os.FileMode {
	if strict {
		return 0o600
	}
	return 0o644
}

// Clear removes everything under dir and recreates it empty.
func Clear(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("empty dir")
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// Purge deletes cache entries older than maxAge and reports how many were
// removed. Pages age by their recorded SavedAt, responses by modification
// time (which Get refreshes). A missing cache directory is not an error.
func Purge(dir string, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-maxAge)
	removed := 0

	err := walkFiles(filepath.Join(dir, pagesDir), func(path string, _ fs.DirEntry) {
		if !strings.HasSuffix(path, metaSuffix) {
			return
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return
		}
		var e PageEntry
		if json.Unmarshal(b, &e) != nil || !e.SavedAt.Before(cutoff) {
			return
		}
		_ = os.Remove(path)
		_ = os.Remove(strings.TrimSuffix(path, metaSuffix) + bodySuffix)
		removed++
	})
	if err != nil {
		return removed, err
	}

	err = walkFiles(filepath.Join(dir, responsesDir), func(path string, d fs.DirEntry) {
		info, err := d.Info()
		if err != nil || !info.ModTime().UTC().Before(cutoff) {
			return
		}
		_ = os.Remove(path)
		removed++
	})
	return removed, err
}

func walkFiles(root string, fn func(path string, d fs.DirEntry)) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			fn(path, d)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
