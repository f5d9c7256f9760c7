// Package fsutil provides filesystem helpers shared by the fetch and
// materialize pipelines.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// IsDirEmpty reports whether the directory at path contains no entries.
// A missing directory is treated as empty.
func IsDirEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read directory %s: %w", path, err)
	}
	return len(entries) == 0, nil
}

// MoveEntries moves every entry of srcDir into dstDir. It prefers
// os.Rename and falls back to copy+delete when the source and
// destination live on different filesystems (EXDEV). dstDir must exist.
func MoveEntries(srcDir, dstDir string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", srcDir, err)
	}

	for _, entry := range entries {
		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(dstDir, entry.Name())
		if err := MoveEntry(src, dst); err != nil {
			return err
		}
	}
	return nil
}

// MoveEntry moves a single file or directory from src to dst, with a
// cross-device fallback to copy+delete.
func MoveEntry(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	// Rename failed; the temp and destination directories may be on
	// different volumes. Copy the tree and remove the source.
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	if info.IsDir() {
		if err := CopyTree(src, dst); err != nil {
			return err
		}
	} else {
		if err := CopyFile(src, dst, info.Mode()); err != nil {
			return err
		}
	}

	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("failed to remove %s after copy: %w", src, err)
	}
	return nil
}

// CopyTree recursively copies the directory tree rooted at src to dst.
func CopyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			return nil
		}

		// Skip non-regular files (sockets, devices, etc.)
		if !info.Mode().IsRegular() {
			return nil
		}

		return CopyFile(path, target, info.Mode())
	})
}

// CopyFile copies a file from src to dst with the given mode, creating
// parent directories as needed.
func CopyFile(src, dst string, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer func() { _ = srcFile.Close() }()

	dir := filepath.Dir(dst)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	return nil
}
