package ports

import "go.trai.ch/extbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for cwd and applies environment overrides from env.
	//
	// A bare file name is searched for in cwd and its parents; when none is found the
	// defaults rooted at cwd are used. A file given as a path must exist.
	Load(cwd, file string, env domain.Environment) (*domain.Project, error)
}
