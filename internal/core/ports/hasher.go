package ports

import (
	"context"

	"go.trai.ch/extbuild/internal/core/domain"
)

// Hasher defines the interface for computing content hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashSources computes a single hash over every file below root,
	// skipping directories whose names match one of the ignore patterns.
	HashSources(ctx context.Context, root string, ignores []string) (string, error)

	// HashManifest computes a hash of the dependency manifest and target triplet.
	HashManifest(manifest domain.DependencyManifest, triplet string) string
}
