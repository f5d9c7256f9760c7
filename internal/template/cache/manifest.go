package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestFileName is the marker file that makes a cache entry valid.
// It is written into the staging directory last, after all template
// content is in place, so a directory without it is never treated as a
// usable entry.
const ManifestFileName = ".strata-template.json"

// Manifest records where and when a cache entry was fetched from.
type Manifest struct {
	// Identifier is the template identifier of the entry.
	Identifier string `json:"identifier"`
	// Ref is the source ref the entry was fetched at.
	Ref string `json:"ref"`
	// Source is the archive URL the entry was downloaded from.
	Source string `json:"source"`
	// FetchedAt is when the entry was committed to the cache.
	FetchedAt time.Time `json:"fetchedAt"`
}

// writeManifest writes the manifest into dir.
func writeManifest(dir string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// readManifest reads the manifest from an entry directory.
func readManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
