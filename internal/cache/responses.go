package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ResponseCache stores raw model answers under Dir/responses, keyed by model
// and prompt so that re-reviewing an unchanged page is free.
type ResponseCache struct {
	Dir         string
	StrictPerms bool
}

// KeyFor digests the model name and the full prompt text.
func KeyFor(model, system, user string) string {
	h := sha256.Sum256([]byte(model + "\n\n" + system + "\n\n" + user))
	return hex.EncodeToString(h[:])
}

func (c *ResponseCache) path(key string) (string, error) {
	if c == nil || c.Dir == "" {
		return "", errors.New("cache dir not configured")
	}
	dir := filepath.Join(c.Dir, responsesDir)
	if err := ensureDir(dir, c.StrictPerms); err != nil {
		return "", err
	}
	return filepath.Join(dir, key+".txt"), nil
}

// Get returns the cached answer for key. A miss is not an error.
func (c *ResponseCache) Get(_ context.Context, key string) (string, bool, error) {
	p, err := c.path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	now := time.Now()
	_ = os.Chtimes(p, now, now)
	return string(b), true, nil
}

// Save stores text under key.
func (c *ResponseCache) Save(_ context.Context, key string, text string) error {
	p, err := c.path(key)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(text), fileMode(c.StrictPerms))
}
