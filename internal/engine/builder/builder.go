// Package builder implements the native extension build pipeline.
package builder

import (
	"context"
	"errors"
	"os"
	"slices"
	"sync"
	"time"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// StepStatus represents the status of a pipeline step.
type StepStatus string

const (
	// StatusPending indicates the step has not run yet.
	StatusPending StepStatus = "Pending"
	// StatusRunning indicates the step is currently executing.
	StatusRunning StepStatus = "Running"
	// StatusCompleted indicates the step has finished successfully.
	StatusCompleted StepStatus = "Completed"
	// StatusFailed indicates the step failed.
	StatusFailed StepStatus = "Failed"
	// StatusCached indicates the step was skipped because its work was already done.
	StatusCached StepStatus = "Cached"
)

// Builder runs the strictly linear pipeline: preflight, platform gate, checkout,
// install, integrate, configure, build, place. The first failure aborts it.
type Builder struct {
	generator ports.BuildGenerator
	packages  ports.PackageManager
	locator   ports.ArtifactLocator
	hasher    ports.Hasher
	telemetry ports.Telemetry
	logger    ports.Logger

	now func() time.Time

	mu     sync.RWMutex
	status map[domain.Step]StepStatus
}

// NewBuilder creates a new Builder.
func NewBuilder(
	generator ports.BuildGenerator,
	packages ports.PackageManager,
	locator ports.ArtifactLocator,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Builder {
	b := &Builder{
		generator: generator,
		packages:  packages,
		locator:   locator,
		hasher:    hasher,
		telemetry: telemetry,
		logger:    logger,
		now:       time.Now,
		status:    make(map[domain.Step]StepStatus),
	}
	b.resetStatuses()
	return b
}

func (b *Builder) resetStatuses() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for step := domain.StepPreflight; step <= domain.StepPlace; step++ {
		b.status[step] = StatusPending
	}
}

func (b *Builder) updateStatus(step domain.Step, status StepStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status[step] = status
}

// Status returns the status of a step in the most recent run.
func (b *Builder) Status(step domain.Step) StepStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status[step]
}

// Steps returns the steps recorded by telemetry, including those of a failed run.
func (b *Builder) Steps() []domain.StepRecord {
	return b.telemetry.Steps()
}

// Run builds every extension of p, one after the other, and records each
// successful build in store. The gates run once for the whole project.
func (b *Builder) Run(
	ctx context.Context,
	p *domain.Project,
	env domain.Environment,
	store ports.BuildInfoStore,
) ([]domain.BuildInfo, error) {
	b.resetStatuses()

	if err := b.Preflight(ctx, env); err != nil {
		return nil, err
	}

	infos := make([]domain.BuildInfo, 0, len(p.Extensions))
	for _, ext := range p.Extensions {
		cfg := domain.NewBuildConfig(p, ext, env)

		info, err := b.Build(ctx, &cfg)
		if err != nil {
			return infos, errors.Join(domain.ErrBuildFailed, zerr.With(err, "extension", ext.Name))
		}

		if err := store.Put(*info); err != nil {
			return infos, zerr.With(zerr.Wrap(err, "failed to store build info"), "extension", ext.Name)
		}
		infos = append(infos, *info)
	}

	return infos, nil
}

// Preflight verifies the build generator is invocable and the platform is supported.
// Neither check touches the filesystem.
func (b *Builder) Preflight(ctx context.Context, env domain.Environment) error {
	err := b.step(ctx, domain.StepPreflight, "preflight", func(ctx context.Context) (bool, error) {
		version, err := b.generator.Probe(ctx, env)
		if err != nil {
			return false, err
		}
		b.logger.Info("found " + version)
		return false, nil
	})
	if err != nil {
		return err
	}

	return b.step(ctx, domain.StepPlatform, "platform "+env.OS, func(_ context.Context) (bool, error) {
		if !env.Supported() {
			detail := zerr.With(zerr.New("native extensions cannot be built on this operating system"), "os", env.OS)
			return false, errors.Join(domain.ErrUnsupportedPlatform, detail)
		}
		return false, nil
	})
}

// Build provisions the dependencies of one extension, compiles it and locates
// the binary. It expects Preflight to have succeeded.
func (b *Builder) Build(ctx context.Context, cfg *domain.BuildConfig) (*domain.BuildInfo, error) {
	start := b.now()
	name := cfg.Extension.Name

	if err := os.MkdirAll(cfg.WorkDir, domain.DirPerm); err != nil {
		detail := zerr.With(zerr.Wrap(err, "mkdir failed"), "dir", cfg.WorkDir)
		return nil, errors.Join(domain.ErrWorkDirCreateFailed, detail)
	}

	steps := []struct {
		step  domain.Step
		label string
		run   func(context.Context) (bool, error)
	}{
		{domain.StepCheckout, "checkout vcpkg", func(ctx context.Context) (bool, error) {
			fetched, err := b.packages.Checkout(ctx, cfg)
			return !fetched && err == nil, err
		}},
		{domain.StepInstall, "install " + cfg.Triplet, func(ctx context.Context) (bool, error) {
			return false, b.packages.Install(ctx, cfg)
		}},
		{domain.StepIntegrate, "integrate vcpkg", func(ctx context.Context) (bool, error) {
			return false, b.packages.Integrate(ctx, cfg)
		}},
		{domain.StepConfigure, "configure " + name, func(ctx context.Context) (bool, error) {
			return false, b.generator.Configure(ctx, cfg)
		}},
		{domain.StepBuild, "build " + name, func(ctx context.Context) (bool, error) {
			return false, b.generator.Build(ctx, cfg)
		}},
	}

	for _, s := range steps {
		if err := b.step(ctx, s.step, s.label, s.run); err != nil {
			return nil, err
		}
	}

	var artifact string
	err := b.step(ctx, domain.StepPlace, "place "+name, func(_ context.Context) (bool, error) {
		var err error
		artifact, err = b.place(cfg)
		return false, err
	})
	if err != nil {
		return nil, err
	}

	sourceHash, err := b.hasher.HashSources(ctx, cfg.SourceDir, cfg.SourceIgnores())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to hash sources"), "dir", cfg.SourceDir)
	}

	return &domain.BuildInfo{
		Extension:    name,
		Triplet:      cfg.Triplet,
		BuildType:    cfg.BuildType,
		ManifestHash: b.hasher.HashManifest(cfg.Manifest, cfg.Triplet),
		SourceHash:   sourceHash,
		Artifact:     artifact,
		Duration:     b.now().Sub(start),
		Timestamp:    b.now(),
	}, nil
}

// place returns the compiled binary, preferring the exact path the import system expects.
func (b *Builder) place(cfg *domain.BuildConfig) (string, error) {
	found, err := b.locator.Locate(cfg.OutputDir, cfg.Extension.BaseName())
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		detail := zerr.With(zerr.New("no binary for "+cfg.Extension.Name), "dir", cfg.OutputDir)
		return "", errors.Join(domain.ErrArtifactNotFound, detail)
	}
	if slices.Contains(found, cfg.ArtifactPath) {
		return cfg.ArtifactPath, nil
	}
	b.logger.Info("built " + found[0])
	return found[0], nil
}

// step runs fn inside its own telemetry vertex. fn reports whether the work was
// already done.
func (b *Builder) step(
	ctx context.Context,
	step domain.Step,
	label string,
	fn func(context.Context) (bool, error),
) error {
	b.updateStatus(step, StatusRunning)
	b.logger.Info("==> " + label)

	ctx, vertex := b.telemetry.Record(ctx, label)
	cached, err := fn(ctx)
	switch {
	case err != nil:
		vertex.Log(domain.LogLevelError, err.Error())
	case cached:
		vertex.Log(domain.LogLevelInfo, label+": up to date")
		vertex.Cached()
	}
	vertex.Complete(err)

	switch {
	case err != nil:
		b.updateStatus(step, StatusFailed)
		return zerr.With(err, "step", step.String())
	case cached:
		b.updateStatus(step, StatusCached)
	default:
		b.updateStatus(step, StatusCompleted)
	}
	return nil
}
