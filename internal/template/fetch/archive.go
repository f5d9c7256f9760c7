package fetch

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractZip extracts a ZIP archive into destDir. Entry paths are
// validated against traversal before any write: an entry that would
// resolve outside destDir aborts the extraction.
func extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = reader.Close() }()

	for _, entry := range reader.File {
		target, err := safeJoin(destDir, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}

		if err := extractZipFile(entry, target); err != nil {
			return err
		}
	}

	return nil
}

// extractZipFile writes a single archive entry to target.
func extractZipFile(entry *zip.File, target string) error {
	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", entry.Name, err)
	}
	defer func() { _ = src.Close() }()

	mode := entry.FileInfo().Mode()
	if mode&0600 == 0 {
		mode = mode | 0600
	}

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}

	_, err = io.Copy(dst, src)
	closeErr := dst.Close()

	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close file %s: %w", target, closeErr)
	}
	return nil
}

// safeJoin joins an archive entry name onto base, rejecting absolute
// entries and entries that escape base via "..".
func safeJoin(base, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("archive entry escapes extraction directory: %s", name)
	}
	return filepath.Join(base, cleaned), nil
}

// archiveRootDir returns the single top-level directory of an extracted
// archive. Repository archives contain one root folder named
// "<repo>-<ref>"; anything else is an unexpected layout.
func archiveRootDir(extractDir string) (string, error) {
	entries, err := os.ReadDir(extractDir)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	if len(dirs) != 1 {
		return "", fmt.Errorf("expected a single root folder in archive, found %d", len(dirs))
	}
	return filepath.Join(extractDir, dirs[0]), nil
}
