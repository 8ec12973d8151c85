// Package cache is the on-disk key/value store widgets use to amortize
// expensive work (network calls, subprocess spawns) across render cycles.
//
// Each key is one file; freshness is judged against a caller-supplied TTL
// at read time. Writes go through a temp file plus rename so concurrent
// renders never observe a torn value. Last writer wins; serving a slightly
// stale value is an accepted tradeoff, never a correctness bug.
package cache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store is a file-backed TTL cache rooted at a directory.
type Store struct {
	dir string
}

// DefaultDir returns the cache directory following XDG conventions.
func DefaultDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "slatebar")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "slatebar")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("slatebar-%d", os.Getuid()))
}

// NewStore creates a store rooted at dir. An empty dir uses DefaultDir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Get returns the cached value for key if it exists and its age is within
// ttl. A ttl of 0 or less means every entry is stale.
func (s *Store) Get(key string, ttl time.Duration) (string, bool) {
	if ttl <= 0 {
		return "", false
	}
	path := s.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if time.Since(info.ModTime()) > ttl {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set overwrites the value for key unconditionally. The write is atomic:
// readers in other render processes see either the old value or the new
// one, never a partial file.
func (s *Store) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing cache entry: %w", err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing cache entry: %w", err)
	}
	return nil
}

// GetOrCompute returns the fresh cached value for key, or invokes compute,
// stores its result, and returns it. The computed value is returned even if
// storing fails — a read-only cache directory degrades to "compute every
// cycle", not to a render failure.
func (s *Store) GetOrCompute(key string, ttl time.Duration, compute func() (string, error)) (string, error) {
	if v, ok := s.Get(key, ttl); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return "", err
	}
	_ = s.Set(key, v)
	return v, nil
}

// Delete removes the entry for key. Missing entries are not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes every entry in the store.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// path maps a key to its file. Keys are free-form (widget names, shell
// command lines), so the filename is a digest rather than the key itself.
func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, fmt.Sprintf("%x.val", sum[:12]))
}
