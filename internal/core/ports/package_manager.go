package ports

import (
	"context"

	"go.trai.ch/extbuild/internal/core/domain"
)

// PackageManager provisions the native dependencies of an extension.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// Checkout makes sure a bootstrapped package manager exists at cfg.PackageManagerDir.
	// It clones when the directory is missing, bootstraps when the vcpkg executable
	// is missing, and reports whether it did either.
	Checkout(ctx context.Context, cfg *domain.BuildConfig) (fetched bool, err error)

	// Install installs cfg.Manifest for cfg.Triplet.
	Install(ctx context.Context, cfg *domain.BuildConfig) error

	// Integrate registers the package manager's build-system integration hooks.
	Integrate(ctx context.Context, cfg *domain.BuildConfig) error
}

// SourceFetcher clones a remote repository into a local directory.
type SourceFetcher interface {
	// Fetch clones remote into dir. dir must not exist yet. The clone tool is
	// resolved and run against env, never the ambient process environment.
	Fetch(ctx context.Context, remote, dir string, env domain.Environment) error
}
