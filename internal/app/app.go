// Package app implements the application layer for extbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/extbuild/internal/engine/builder"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      *builder.Builder
	stores       ports.BuildInfoStoreOpener
	logger       ports.Logger
	env          domain.Environment
	workingDir   string
}

// New creates a new App instance operating on the environment of the running process.
func New(
	loader ports.ConfigLoader,
	b *builder.Builder,
	stores ports.BuildInfoStoreOpener,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      b,
		stores:       stores,
		logger:       log,
		env:          domain.CurrentEnvironment(),
	}
}

// WithEnvironment replaces the environment snapshot handed to the builder.
// This is primarily used for testing.
func (a *App) WithEnvironment(env domain.Environment) *App {
	a.env = env
	return a
}

// WithWorkingDir sets the directory the configuration search starts from.
// It defaults to the process working directory.
func (a *App) WithWorkingDir(dir string) *App {
	a.workingDir = dir
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	ConfigFile string
	Overrides  domain.Overrides
}

// Build compiles the configured extensions and records every successful build.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	// 1. Load the project
	project, err := a.loadProject(opts.ConfigFile)
	if err != nil {
		return err
	}

	project, err = project.Apply(opts.Overrides)
	if err != nil {
		return zerr.Wrap(err, "invalid command line")
	}
	if err := project.Validate(); err != nil {
		return zerr.Wrap(err, "invalid command line")
	}

	// 2. Open the build record store
	store, err := a.openStore(project)
	if err != nil {
		return err
	}

	// 3. Run the pipeline
	infos, err := a.builder.Run(ctx, project, a.env, store)
	if err != nil {
		return err
	}

	for _, info := range infos {
		a.logger.Info(fmt.Sprintf("built %s in %s: %s", info.Extension, info.Duration.Round(time.Millisecond), info.Artifact))
	}
	return nil
}

// Steps returns the pipeline steps recorded by the last Build, in start order.
func (a *App) Steps() []domain.StepRecord {
	return a.builder.Steps()
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigFile string
	// BuildTemp overrides the temporary build directory, as for Build.
	BuildTemp string
	// All also removes the package manager checkout.
	All bool
}

// Clean removes generated build files and the build record store.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	project, err := a.loadProject(opts.ConfigFile)
	if err != nil {
		return err
	}

	project, err = project.Apply(domain.Overrides{BuildTemp: opts.BuildTemp})
	if err != nil {
		return zerr.Wrap(err, "invalid command line")
	}

	var errs error

	// Helper to remove a path and log the action
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove "+name), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	workDir := domain.NewBuildConfig(project, project.Extensions[0], a.env).WorkDir

	if opts.All {
		remove(workDir, "working directory")
	} else {
		entries, err := os.ReadDir(workDir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to read working directory"), "path", workDir))
		}
		for _, entry := range entries {
			if entry.Name() == domain.PackageManagerDirName {
				continue
			}
			remove(filepath.Join(workDir, entry.Name()), entry.Name())
		}
	}

	store, err := a.openStore(project)
	if err != nil {
		return errors.Join(errs, err)
	}
	a.logger.Info("removing build records...")
	if err := store.Reset(); err != nil {
		return errors.Join(errs, zerr.Wrap(err, "failed to reset build records"))
	}

	return errs
}

// StatusOptions configuration for the Status method.
type StatusOptions struct {
	ConfigFile string
}

// Status returns the recorded builds of the project, ordered by extension name.
func (a *App) Status(_ context.Context, opts StatusOptions) ([]domain.BuildInfo, error) {
	project, err := a.loadProject(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	store, err := a.openStore(project)
	if err != nil {
		return nil, err
	}

	infos, err := store.List()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list build records")
	}
	return infos, nil
}

func (a *App) loadProject(file string) (*domain.Project, error) {
	cwd := a.workingDir
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
	}

	if file == "" {
		file = domain.ConfigFileName
	}

	project, err := a.configLoader.Load(cwd, file, a.env)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

func (a *App) openStore(p *domain.Project) (ports.BuildInfoStore, error) {
	path := domain.DefaultStorePath()
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.Root, path)
	}

	store, err := a.stores.Open(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open build records")
	}
	return store, nil
}
