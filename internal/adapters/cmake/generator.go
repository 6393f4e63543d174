// Package cmake drives the CMake build-file generator.
package cmake

import (
	"bytes"
	"context"
	"errors"
	"strconv"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Program is the executable name of the generator.
const Program = "cmake"

// Generator implements ports.BuildGenerator by running cmake through an executor.
type Generator struct {
	executor ports.Executor
}

var _ ports.BuildGenerator = (*Generator)(nil)

// NewGenerator creates a Generator.
func NewGenerator(executor ports.Executor) *Generator {
	return &Generator{executor: executor}
}

// Probe runs "cmake --version" and returns the first line of its output.
func (g *Generator) Probe(ctx context.Context, env domain.Environment) (string, error) {
	out, err := g.executor.Output(ctx, domain.Command{
		Name: Program,
		Args: []string{"--version"},
		Env:  env.Vars,
	})
	if err != nil {
		return "", errors.Join(domain.ErrToolchainMissing, err)
	}

	line, _, _ := bytes.Cut(out, []byte{'\n'})
	return string(bytes.TrimSpace(line)), nil
}

// Configure generates the build files for cfg in cfg.WorkDir.
func (g *Generator) Configure(ctx context.Context, cfg *domain.BuildConfig) error {
	return g.run(ctx, cfg, ConfigureArgs(cfg), "configure")
}

// Build compiles the configured tree in cfg.WorkDir.
func (g *Generator) Build(ctx context.Context, cfg *domain.BuildConfig) error {
	return g.run(ctx, cfg, BuildArgs(cfg), "build")
}

func (g *Generator) run(ctx context.Context, cfg *domain.BuildConfig, args []string, step string) error {
	err := g.executor.Execute(ctx, domain.Command{
		Name: Program,
		Args: args,
		Dir:  cfg.WorkDir,
		Env:  cfg.Environment.Vars,
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "cmake "+step+" failed"), "extension", cfg.Extension.Name)
	}
	return nil
}

// ConfigureArgs returns the arguments of the configure invocation.
// The interpreter definition is omitted when no interpreter is known.
func ConfigureArgs(cfg *domain.BuildConfig) []string {
	args := make([]string, 0, 6+len(cfg.ExtraArgs))
	args = append(args,
		cfg.SourceDir,
		"-DCMAKE_LIBRARY_OUTPUT_DIRECTORY="+cfg.OutputDir,
	)
	if cfg.Interpreter != "" {
		args = append(args, "-DPYTHON_EXECUTABLE="+cfg.Interpreter)
	}
	args = append(args,
		"-DCMAKE_BUILD_TYPE="+cfg.BuildType,
		"-DCMAKE_TOOLCHAIN_FILE="+cfg.ToolchainFile,
		"-DVCPKG_TARGET_TRIPLET="+cfg.Triplet,
	)
	return append(args, cfg.ExtraArgs...)
}

// BuildArgs returns the arguments of the build invocation. A job count of
// zero lets the native tool run unbounded.
func BuildArgs(cfg *domain.BuildConfig) []string {
	jobs := "-j"
	if cfg.Jobs > 0 {
		jobs += strconv.Itoa(cfg.Jobs)
	}
	return []string{"--build", ".", "--config", cfg.BuildType, "--", jobs}
}
