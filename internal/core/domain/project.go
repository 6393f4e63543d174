package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Build types accepted by CMAKE_BUILD_TYPE.
const (
	BuildTypeRelease        = "Release"
	BuildTypeDebug          = "Debug"
	BuildTypeRelWithDebInfo = "RelWithDebInfo"
	BuildTypeMinSizeRel     = "MinSizeRel"
)

// Project is the resolved build configuration of a source checkout.
type Project struct {
	// Root is the absolute directory containing the configuration file.
	Root string
	// Extensions are the native extensions to build, in declaration order.
	Extensions []Extension
	// BuildType is passed to CMAKE_BUILD_TYPE and --config.
	BuildType string
	// BuildTemp is the packaging temp directory, relative to Root unless absolute.
	BuildTemp string
	// BuildLib is the packaging lib directory, relative to Root unless absolute.
	BuildLib string
	// ExtSuffix is the file suffix the import system expects (e.g., ".so").
	ExtSuffix string
	// Jobs is the parallel job count for the build step. Zero means unbounded.
	Jobs int
	// CMakeArgs are extra arguments appended to the configure step.
	CMakeArgs []string
	// Interpreter is the host runtime passed as PYTHON_EXECUTABLE. Empty omits it.
	Interpreter string
	// Triplet is the vcpkg target triplet.
	Triplet string
	// Repository is the source of the vcpkg checkout.
	Repository string
	// Manifest lists the native packages to install.
	Manifest DependencyManifest
}

// Overrides are per-invocation adjustments coming from the command line.
// Zero values leave the project untouched.
type Overrides struct {
	Extensions []string
	BuildTemp  string
	BuildLib   string
	Jobs       int
	Debug      bool
	Triplet    string
}

// DefaultProject returns the configuration used when no configuration file exists:
// a single "pyatlas" extension in the project root, built in Release mode.
func DefaultProject(root string, env Environment) *Project {
	return &Project{
		Root:       root,
		Extensions: []Extension{{Name: "pyatlas", SourceDir: "."}},
		BuildType:  BuildTypeRelease,
		BuildTemp:  DefaultBuildTemp(env),
		BuildLib:   DefaultBuildLib(env),
		ExtSuffix:  DefaultExtSuffix,
		Triplet:    DefaultTriplet,
		Repository: DefaultPackageManagerRepository,
		Manifest:   DefaultManifest(),
	}
}

// Validate checks the project for configuration errors.
func (p *Project) Validate() error {
	if len(p.Extensions) == 0 {
		return ErrNoExtensions
	}

	seen := make(map[string]struct{}, len(p.Extensions))
	for _, ext := range p.Extensions {
		if !ValidateExtensionName(ext.Name) {
			return zerr.With(ErrInvalidExtensionName, "extension", ext.Name)
		}
		if _, ok := seen[ext.Name]; ok {
			return zerr.With(ErrDuplicateExtension, "extension", ext.Name)
		}
		seen[ext.Name] = struct{}{}
	}

	switch p.BuildType {
	case BuildTypeRelease, BuildTypeDebug, BuildTypeRelWithDebInfo, BuildTypeMinSizeRel:
	default:
		return zerr.With(ErrInvalidBuildType, "build_type", p.BuildType)
	}

	if p.Manifest.Empty() {
		return ErrEmptyManifest
	}

	if p.Jobs < 0 {
		return zerr.With(ErrInvalidJobs, "jobs", p.Jobs)
	}

	if p.Triplet == "" {
		return ErrEmptyTriplet
	}

	return nil
}

// Apply returns a copy of the project with the overrides applied.
// Requested extensions must be declared; the declaration order is kept.
func (p *Project) Apply(o Overrides) (*Project, error) {
	out := *p
	out.Extensions = slices.Clone(p.Extensions)
	out.CMakeArgs = slices.Clone(p.CMakeArgs)
	out.Manifest = p.Manifest.Clone()

	if len(o.Extensions) > 0 {
		selected := make([]Extension, 0, len(o.Extensions))
		for _, ext := range p.Extensions {
			if slices.Contains(o.Extensions, ext.Name) {
				selected = append(selected, ext)
			}
		}
		for _, name := range o.Extensions {
			if !slices.ContainsFunc(selected, func(e Extension) bool { return e.Name == name }) {
				return nil, zerr.With(ErrExtensionNotFound, "extension", name)
			}
		}
		out.Extensions = selected
	}

	if o.BuildTemp != "" {
		out.BuildTemp = o.BuildTemp
	}
	if o.BuildLib != "" {
		out.BuildLib = o.BuildLib
	}
	if o.Jobs > 0 {
		out.Jobs = o.Jobs
	}
	if o.Debug {
		out.BuildType = BuildTypeDebug
	}
	if o.Triplet != "" {
		out.Triplet = o.Triplet
	}

	return &out, nil
}
