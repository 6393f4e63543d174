package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// NativeSuffixes are the file suffixes of loadable native extensions.
var NativeSuffixes = []string{".so", ".dylib", ".pyd", ".bundle"}

var _ ports.ArtifactLocator = (*Locator)(nil)

// Locator finds compiled extension binaries in an output directory.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate returns the binaries in dir named baseName followed by any tag and a native
// suffix, e.g. "pyatlas.so" or "pyatlas.cpython-312-x86_64-linux-gnu.so".
// A missing directory yields no matches.
func (l *Locator) Locate(dir, baseName string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read output directory"), "dir", dir)
	}

	var found []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !matchesArtifact(name, baseName) {
			continue
		}
		found = append(found, filepath.Join(dir, name))
	}
	slices.Sort(found)
	return found, nil
}

func matchesArtifact(name, baseName string) bool {
	rest, ok := strings.CutPrefix(name, baseName)
	if !ok {
		return false
	}
	// The base name must end at a tag separator, so "pyatlas" does not match "pyatlas2.so".
	if rest == "" || rest[0] != '.' {
		return false
	}
	for _, suffix := range NativeSuffixes {
		if strings.HasSuffix(rest, suffix) {
			return true
		}
	}
	return false
}
