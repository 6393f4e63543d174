package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/internal/adapters/fs"
	"go.trai.ch/extbuild/internal/core/domain"
)

// writeTree creates files below root from a map of relative path to content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func sourceTree() map[string]string {
	return map[string]string{
		"CMakeLists.txt":         "cmake_minimum_required(VERSION 3.18)",
		"src/pyatlas.cpp":        "PYBIND11_MODULE(pyatlas, m) {}",
		"src/uvatlas.h":          "#pragma once",
		".git/config":            "[core]",
		"build/temp/CMakeCache":  "generated",
		"build/lib/pyatlas.so":   "binary",
		"notes.swp":              "editor swap",
		"third_party/README.txt": "vendored",
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sourceTree())

	var got []string
	for path := range fs.NewWalker().WalkFiles(root, []string{"build", "*.swp"}) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{
		"CMakeLists.txt",
		"src/pyatlas.cpp",
		"src/uvatlas.h",
		"third_party/README.txt",
	}, got)
}

func TestWalker_WalkFilesStopsEarly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sourceTree())

	count := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestHasher_HashSourcesDeterministic(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeTree(t, rootA, sourceTree())
	writeTree(t, rootB, sourceTree())

	h := fs.NewHasher(fs.NewWalker())
	ignores := []string{"build"}

	hashA, err := h.HashSources(context.Background(), rootA, ignores)
	require.NoError(t, err)
	hashB, err := h.HashSources(context.Background(), rootB, ignores)
	require.NoError(t, err)

	assert.Len(t, hashA, 16)
	assert.Equal(t, hashA, hashB, "hash must not depend on the tree location")

	again, err := h.HashSources(context.Background(), rootA, ignores)
	require.NoError(t, err)
	assert.Equal(t, hashA, again)
}

func TestHasher_HashSourcesDetectsChanges(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sourceTree())
	h := fs.NewHasher(fs.NewWalker())

	before, err := h.HashSources(context.Background(), root, []string{"build"})
	require.NoError(t, err)

	t.Run("ignored paths do not count", func(t *testing.T) {
		writeTree(t, root, map[string]string{"build/lib/pyatlas.so": "rebuilt"})
		after, err := h.HashSources(context.Background(), root, []string{"build"})
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("content change", func(t *testing.T) {
		writeTree(t, root, map[string]string{"src/uvatlas.h": "#pragma once\n// changed"})
		after, err := h.HashSources(context.Background(), root, []string{"build"})
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
	})
}

func TestHasher_HashSourcesRename(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeTree(t, rootA, map[string]string{"a.cpp": "same"})
	writeTree(t, rootB, map[string]string{"b.cpp": "same"})

	h := fs.NewHasher(fs.NewWalker())
	hashA, err := h.HashSources(context.Background(), rootA, nil)
	require.NoError(t, err)
	hashB, err := h.HashSources(context.Background(), rootB, nil)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashB)
}

func TestHasher_HashSourcesCanceled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sourceTree())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.NewHasher(fs.NewWalker()).HashSources(ctx, root, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHasher_ComputeFileHashMissing(t *testing.T) {
	_, err := fs.NewHasher(fs.NewWalker()).ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrFileOpenFailed.Error())
}

func TestHasher_HashManifest(t *testing.T) {
	h := fs.NewHasher(fs.NewWalker())
	manifest := domain.DefaultManifest()

	base := h.HashManifest(manifest, domain.DefaultTriplet)
	assert.Len(t, base, 16)
	assert.Equal(t, base, h.HashManifest(domain.DefaultManifest(), domain.DefaultTriplet))

	assert.NotEqual(t, base, h.HashManifest(manifest, "arm64-linux"))

	reordered := manifest.Clone()
	slices.Reverse(reordered.Packages)
	assert.NotEqual(t, base, h.HashManifest(reordered, domain.DefaultTriplet))
}

func TestLocator_Locate(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"pyatlas.cpython-312-x86_64-linux-gnu.so": "",
		"pyatlas.so":                              "",
		"pyatlas2.so":                             "",
		"pyatlas.txt":                             "",
		"other.so":                                "",
		"pyatlas.so.d/placeholder":                "",
	})

	found, err := fs.NewLocator().Locate(dir, "pyatlas")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "pyatlas.cpython-312-x86_64-linux-gnu.so"),
		filepath.Join(dir, "pyatlas.so"),
	}, found)
}

func TestLocator_LocateMissingDir(t *testing.T) {
	found, err := fs.NewLocator().Locate(filepath.Join(t.TempDir(), "missing"), "pyatlas")
	require.NoError(t, err)
	assert.Empty(t, found)
}
