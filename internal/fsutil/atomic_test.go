// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")
	ctx := context.Background()

	require.NoError(t, WriteAtomic(ctx, path, []byte("<p>one</p>\n"), 0))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>one</p>\n", string(data))

	require.NoError(t, WriteAtomic(ctx, path, []byte("<p>two</p>\n"), 0))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>two</p>\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files left behind")
}

func TestWriteAtomicMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not preserved on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	ctx := context.Background()

	require.NoError(t, WriteAtomic(ctx, path, []byte("x"), 0))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMode, info.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, WriteAtomic(ctx, path, []byte("y"), 0o755))
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteAtomicCanceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteAtomic(ctx, path, []byte("x"), 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestWriteAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	err := WriteAtomic(context.Background(), path, []byte("x"), 0)
	assert.ErrorContains(t, err, "create temp file")
}

func TestWriteAtomicIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	ctx := context.Background()

	wrote, err := WriteAtomicIfChanged(ctx, path, []byte("# a\n"), 0)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = WriteAtomicIfChanged(ctx, path, []byte("# a\n"), 0)
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = WriteAtomicIfChanged(ctx, path, []byte("# b\n"), 0)
	require.NoError(t, err)
	assert.True(t, wrote)
}
