package fs

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash digests of source trees and dependency manifests.
type Hasher struct {
	walker *Walker
	limit  int
}

// NewHasher creates a new Hasher that hashes up to GOMAXPROCS files at once.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker, limit: runtime.GOMAXPROCS(0)}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// HashSources hashes every file below root. File contents are hashed in parallel;
// the digests are combined in walk order together with the root-relative paths,
// so the result does not depend on scheduling or on where the tree lives.
func (h *Hasher) HashSources(ctx context.Context, root string, ignores []string) (string, error) {
	var files []string
	for path := range h.walker.WalkFiles(root, ignores) {
		files = append(files, path)
	}

	sums := make([]uint64, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(h.limit)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := h.ComputeFileHash(path)
			if err != nil {
				return err
			}
			sums[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	digest := xxhash.New()
	for i, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		_, _ = digest.WriteString(filepath.ToSlash(rel))
		_, _ = digest.Write([]byte{0})
		if err := binary.Write(digest, binary.LittleEndian, sums[i]); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// HashManifest hashes the target triplet followed by the packages in manifest order.
func (h *Hasher) HashManifest(manifest domain.DependencyManifest, triplet string) string {
	digest := xxhash.New()
	_, _ = digest.WriteString(triplet)
	_, _ = digest.Write([]byte{0})
	for _, pkg := range manifest.Packages {
		_, _ = digest.WriteString(pkg)
		_, _ = digest.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", digest.Sum64())
}
