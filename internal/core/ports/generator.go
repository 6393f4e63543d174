package ports

import (
	"context"

	"go.trai.ch/extbuild/internal/core/domain"
)

// BuildGenerator drives the build-file generator that configures and compiles an extension.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type BuildGenerator interface {
	// Probe verifies the generator is invocable within env and returns its version line.
	// It fails with domain.ErrToolchainMissing otherwise.
	Probe(ctx context.Context, env domain.Environment) (string, error)

	// Configure generates the native build files in cfg.WorkDir.
	Configure(ctx context.Context, cfg *domain.BuildConfig) error

	// Build compiles the configured project in cfg.WorkDir.
	Build(ctx context.Context, cfg *domain.BuildConfig) error
}
