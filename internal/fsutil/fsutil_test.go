package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestIsDirEmpty(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		empty, err := IsDirEmpty(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("empty directory", func(t *testing.T) {
		empty, err := IsDirEmpty(t.TempDir())
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("directory with a file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.txt"), "x")
		empty, err := IsDirEmpty(dir)
		require.NoError(t, err)
		assert.False(t, empty)
	})

	t.Run("directory with a hidden file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".env"), "x")
		empty, err := IsDirEmpty(dir)
		require.NoError(t, err)
		assert.False(t, empty)
	})
}

func TestMoveEntries(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "a.txt"), "alpha")
	writeFile(t, filepath.Join(src, "sub", "b.txt"), "beta")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "emptydir"), 0755))

	require.NoError(t, MoveEntries(src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(content))

	content, err = os.ReadFile(filepath.Join(dst, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "beta", string(content))

	info, err := os.Stat(filepath.Join(dst, "emptydir"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Source must be drained
	entries, err := os.ReadDir(src)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	writeFile(t, filepath.Join(src, "x", "y", "z.txt"), "deep")
	writeFile(t, filepath.Join(src, "top.txt"), "top")

	require.NoError(t, CopyTree(src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "x", "y", "z.txt"))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(content))

	content, err = os.ReadFile(filepath.Join(dst, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "top", string(content))
}

func TestCopyFilePreservesMode(t *testing.T) {
	src := filepath.Join(t.TempDir(), "run.sh")
	dst := filepath.Join(t.TempDir(), "out", "run.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0755))

	require.NoError(t, CopyFile(src, dst, 0755))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}
