// Package vcpkg provisions native dependencies with the vcpkg package manager.
package vcpkg

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// BootstrapScript builds the vcpkg executable inside a fresh checkout.
	BootstrapScript = "./bootstrap-vcpkg.sh"
	// Program is the vcpkg executable, relative to the checkout.
	Program = "./vcpkg"
)

// Manager implements ports.PackageManager for a vcpkg checkout.
type Manager struct {
	fetcher  ports.SourceFetcher
	executor ports.Executor
	logger   ports.Logger
}

var _ ports.PackageManager = (*Manager)(nil)

// NewManager creates a Manager.
func NewManager(fetcher ports.SourceFetcher, executor ports.Executor, logger ports.Logger) *Manager {
	return &Manager{
		fetcher:  fetcher,
		executor: executor,
		logger:   logger,
	}
}

// Checkout clones vcpkg when cfg.PackageManagerDir is missing and bootstraps it
// when the vcpkg executable is missing. A checkout whose bootstrap fails is
// removed, so the next run starts from a fresh clone.
func (m *Manager) Checkout(ctx context.Context, cfg *domain.BuildConfig) (bool, error) {
	dir := cfg.PackageManagerDir
	if bootstrapped(dir) {
		m.logger.Info("using existing vcpkg checkout at " + dir)
		return false, nil
	}

	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		m.logger.Info("vcpkg checkout at " + dir + " is not bootstrapped")
	} else {
		m.logger.Info("cloning " + cfg.PackageManagerRepository + " into " + dir)
		if err := m.fetcher.Fetch(ctx, cfg.PackageManagerRepository, dir, cfg.Environment); err != nil {
			return false, err
		}
	}

	if err := m.run(ctx, cfg, BootstrapScript); err != nil {
		err = zerr.Wrap(err, "vcpkg bootstrap failed")
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			err = errors.Join(err, zerr.With(zerr.Wrap(rmErr, "failed to remove vcpkg checkout"), "dir", dir))
		}
		return true, err
	}
	return true, nil
}

// bootstrapped reports whether dir holds the executable produced by the bootstrap script.
func bootstrapped(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, filepath.Base(Program)))
	return err == nil && info.Mode().IsRegular() && info.Mode()&0o111 != 0
}

// Install installs every package of the manifest for the configured triplet.
func (m *Manager) Install(ctx context.Context, cfg *domain.BuildConfig) error {
	if err := m.run(ctx, cfg, Program, InstallArgs(cfg)...); err != nil {
		return zerr.With(zerr.Wrap(err, "vcpkg install failed"), "triplet", cfg.Triplet)
	}
	return nil
}

// Integrate makes the installed packages visible to the build generator.
func (m *Manager) Integrate(ctx context.Context, cfg *domain.BuildConfig) error {
	if err := m.run(ctx, cfg, Program, "integrate", "install"); err != nil {
		return zerr.Wrap(err, "vcpkg integrate failed")
	}
	return nil
}

func (m *Manager) run(ctx context.Context, cfg *domain.BuildConfig, name string, args ...string) error {
	return m.executor.Execute(ctx, domain.Command{
		Name: name,
		Args: args,
		Dir:  cfg.PackageManagerDir,
		Env:  cfg.Environment.Vars,
	})
}

// InstallArgs returns the arguments of the install invocation.
func InstallArgs(cfg *domain.BuildConfig) []string {
	args := make([]string, 0, len(cfg.Manifest.Packages)+3)
	args = append(args, "install")
	args = append(args, cfg.Manifest.Packages...)
	return append(args, "--triplet", cfg.Triplet)
}
