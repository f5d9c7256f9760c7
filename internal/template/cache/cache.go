// Package cache stores fetched templates on local disk, one directory
// per (identifier, ref) cache key. Entries are committed by renaming a
// fully populated staging directory into place, so a half-written entry
// is never visible as a cache hit.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/google/uuid"

	"github.com/stratacms/strata/internal/logging"
)

// AppDirName is the namespace used under the user's cache directory.
const AppDirName = "strata"

// Cache is an on-disk template store rooted at a single directory.
// The root is injectable so tests can use an isolated temporary
// directory instead of the user's real cache directory.
type Cache struct {
	root string
}

// DefaultRoot returns the default cache root under the user's XDG cache
// directory (e.g., ~/.cache/strata/templates).
func DefaultRoot() string {
	return filepath.Join(xdg.CacheHome, AppDirName, "templates")
}

// New creates a Cache rooted at the given directory. An empty root
// selects DefaultRoot. The root directory is not created until a write
// operation needs it.
func New(root string) *Cache {
	if root == "" {
		root = DefaultRoot()
	}
	return &Cache{root: root}
}

// Root returns the cache root directory.
func (c *Cache) Root() string {
	return c.root
}

// EntryPath returns the directory an entry for key would live at.
func (c *Cache) EntryPath(key string) string {
	return filepath.Join(c.root, key)
}

// Lookup returns the entry path for key if a valid entry exists.
// An entry is valid only when its manifest marker is present; a bare
// directory (e.g., left by an interrupted writer) is not a hit.
func (c *Cache) Lookup(key string) (string, bool) {
	log := logging.GetLogger("cache")

	path := c.EntryPath(key)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}

	if _, err := readManifest(path); err != nil {
		log.Debug().Str("key", key).Msg("entry present but manifest missing, treating as miss")
		return "", false
	}

	log.Debug().Str("key", key).Str("path", path).Msg("cache hit")
	return path, true
}

// EnsureRoot creates the cache root directory if it does not exist.
func (c *Cache) EnsureRoot() error {
	if err := os.MkdirAll(c.root, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", c.root, err)
	}
	return nil
}

// NewStagingDir creates a uniquely named staging directory under the
// cache root for a single fetch attempt. The caller must remove it if
// the entry is not committed.
func (c *Cache) NewStagingDir(key string) (string, error) {
	if err := c.EnsureRoot(); err != nil {
		return "", err
	}
	dir := filepath.Join(c.root, fmt.Sprintf(".staging-%s-%s", key, uuid.NewString()))
	if err := os.Mkdir(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	return dir, nil
}

// Commit writes the manifest into stagingDir and renames it to the
// final entry path for key. If a concurrent fetch already committed an
// entry for the same key, the staging directory is discarded and the
// existing entry is returned; losers of the race simply drop their work.
func (c *Cache) Commit(stagingDir, key string, m Manifest) (string, error) {
	log := logging.GetLogger("cache")

	if err := writeManifest(stagingDir, m); err != nil {
		return "", err
	}

	final := c.EntryPath(key)
	if err := os.Rename(stagingDir, final); err != nil {
		// Another process may have won the race for this key.
		if path, ok := c.Lookup(key); ok {
			log.Debug().Str("key", key).Msg("concurrent fetch committed first, discarding staging dir")
			_ = os.RemoveAll(stagingDir)
			return path, nil
		}
		return "", fmt.Errorf("failed to commit cache entry %s: %w", key, err)
	}

	log.Debug().Str("key", key).Str("path", final).Msg("cache entry committed")
	return final, nil
}

// Clear removes the entry for key, if present.
func (c *Cache) Clear(key string) error {
	if err := os.RemoveAll(c.EntryPath(key)); err != nil {
		return fmt.Errorf("failed to remove cache entry %s: %w", key, err)
	}
	return nil
}

// ClearAll removes every entry and the cache root itself.
func (c *Cache) ClearAll() error {
	if err := os.RemoveAll(c.root); err != nil {
		return fmt.Errorf("failed to remove cache directory %s: %w", c.root, err)
	}
	return nil
}
