package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// BuildConfig is the immutable set of toolchain options for building one extension.
// It is assembled once per invocation and handed to every adapter that spawns a process.
type BuildConfig struct {
	Extension Extension

	// SourceDir is the absolute directory of the extension's CMakeLists.txt.
	SourceDir string
	// WorkDir is the absolute directory where build files are generated.
	WorkDir string
	// OutputDir is the absolute directory the compiled binary is written to.
	OutputDir string
	// ArtifactPath is the absolute path the import system expects for the binary.
	ArtifactPath string

	Interpreter string
	BuildType   string
	Jobs        int
	ExtraArgs   []string

	// PackageManagerDir is the absolute location of the vcpkg checkout.
	PackageManagerDir string
	// PackageManagerRepository is the clone source used when the checkout is missing.
	PackageManagerRepository string
	// ToolchainFile is the CMake toolchain file provided by the checkout.
	ToolchainFile string
	Triplet       string
	Manifest      DependencyManifest

	Environment Environment
}

// NewBuildConfig assembles the build configuration of ext within project p.
// The "temp" to "lib" substitution is applied to the configured temp path before it is
// anchored at the project root, so the root itself is never rewritten.
func NewBuildConfig(p *Project, ext Extension, env Environment) BuildConfig {
	workDir := p.resolve(WorkDir(p.BuildTemp))
	pmDir := PackageManagerDir(workDir)
	artifact := p.resolve(ExtensionFullPath(p.BuildLib, ext.Name, p.ExtSuffix))

	return BuildConfig{
		Extension:                ext,
		SourceDir:                p.resolve(ext.SourceDir),
		WorkDir:                  workDir,
		OutputDir:                filepath.Dir(artifact),
		ArtifactPath:             artifact,
		Interpreter:              p.Interpreter,
		BuildType:                p.BuildType,
		Jobs:                     p.Jobs,
		ExtraArgs:                slices.Clone(p.CMakeArgs),
		PackageManagerDir:        pmDir,
		PackageManagerRepository: p.Repository,
		ToolchainFile:            ToolchainFile(pmDir),
		Triplet:                  p.Triplet,
		Manifest:                 p.Manifest.Clone(),
		Environment:              env,
	}
}

func (p *Project) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Root, path)
}

// defaultSourceIgnores are never part of an extension's source tree.
var defaultSourceIgnores = []string{BuildDirName, PackageManagerDirName, StateDirName, "__pycache__", "*.egg-info"}

// SourceIgnores returns the name patterns excluded when hashing the source tree:
// the fixed build locations plus the first component of the work and output
// directories when they live inside the source directory.
func (c *BuildConfig) SourceIgnores() []string {
	ignores := slices.Clone(defaultSourceIgnores)
	for _, dir := range []string{c.WorkDir, c.OutputDir} {
		rel, err := filepath.Rel(c.SourceDir, dir)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
		if !slices.Contains(ignores, first) {
			ignores = append(ignores, first)
		}
	}
	return ignores
}
