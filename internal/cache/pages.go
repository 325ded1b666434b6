package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PageEntry is the metadata stored next to a cached page body. ETag and
// LastModified drive conditional revalidation.
type PageEntry struct {
	URL          string    `json:"url"`
	ContentType  string    `json:"content_type"`
	ETag         string    `json:"etag"`
	LastModified string    `json:"last_modified"`
	SavedAt      time.Time `json:"saved_at"`
}

// PageCache keeps fetched pages on disk under Dir/pages as <sha256(url)>.body
// and <sha256(url)>.meta.json.
type PageCache struct {
	Dir         string
	StrictPerms bool
}

func (c *PageCache) root() (string, error) {
	if c == nil || c.Dir == "" {
		return "", errors.New("cache dir not configured")
	}
	dir := filepath.Join(c.Dir, pagesDir)
	return dir, ensureDir(dir, c.StrictPerms)
}

func pageKey(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:])
}

// Meta returns the stored metadata for url.
func (c *PageCache) Meta(_ context.Context, url string) (*PageEntry, error) {
	dir, err := c.root()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(dir, pageKey(url)+metaSuffix))
	if err != nil {
		return nil, err
	}
	var e PageEntry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}
	return &e, nil
}

// Body returns the stored body for url.
func (c *PageCache) Body(_ context.Context, url string) ([]byte, error) {
	dir, err := c.root()
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(dir, pageKey(url)+bodySuffix))
}

// Save writes body first and then swaps the metadata in atomically, so a
// reader never sees metadata for a body that is not on disk.
func (c *PageCache) Save(_ context.Context, e PageEntry, body []byte) error {
	dir, err := c.root()
	if err != nil {
		return err
	}
	key := pageKey(e.URL)
	if err := os.WriteFile(filepath.Join(dir, key+bodySuffix), body, fileMode(c.StrictPerms)); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if e.SavedAt.IsZero() {
		e.SavedAt = time.Now().UTC()
	}
	meta, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	final := filepath.Join(dir, key+metaSuffix)
	if err := os.WriteFile(final+".tmp", meta, fileMode(c.StrictPerms)); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return os.Rename(final+".tmp", final)
}
