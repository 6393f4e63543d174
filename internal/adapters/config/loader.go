// Package config provides the configuration loader for extbuild.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/mitchellh/go-homedir"
	"go.trai.ch/extbuild/internal/adapters/shell"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted while loading.
const (
	EnvCMakeArgs      = "CMAKE_ARGS"
	EnvTriplet        = "VCPKG_DEFAULT_TRIPLET"
	EnvPython         = "PYTHON_EXECUTABLE"
	defaultPythonName = "python3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the project configuration for cwd.
//
// Precedence, low to high: built-in defaults, environment (VCPKG_DEFAULT_TRIPLET,
// PYTHON_EXECUTABLE), the configuration file. CMAKE_ARGS is appended after the
// configured cmake_args.
func (l *Loader) Load(cwd, file string, env domain.Environment) (*domain.Project, error) {
	if file == "" {
		file = domain.ConfigFileName
	}

	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	configPath, err := findConfiguration(cwd, file)
	if err != nil {
		return nil, err
	}

	var project *domain.Project
	if configPath == "" {
		project = domain.DefaultProject(cwd, env)
		// Left open so VCPKG_DEFAULT_TRIPLET can apply.
		project.Triplet = ""
	} else {
		project, err = l.loadBuildfile(configPath, env)
		if err != nil {
			return nil, err
		}
	}

	if err := applyEnvironment(project, env); err != nil {
		return nil, err
	}

	if err := project.Validate(); err != nil {
		return nil, zerr.With(err, "config", configPath)
	}
	return project, nil
}

// findConfiguration returns the configuration file to load, or "" when defaults apply.
func findConfiguration(cwd, file string) (string, error) {
	expanded, err := homedir.Expand(file)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if strings.ContainsRune(expanded, filepath.Separator) {
		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(cwd, expanded)
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", expanded)
		}
		return expanded, nil
	}

	current := cwd
	for {
		candidate := filepath.Join(current, expanded)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

func (l *Loader) loadBuildfile(configPath string, env domain.Environment) (*domain.Project, error) {
	var bf Buildfile
	if err := readAndUnmarshalYAML(configPath, &bf); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if bf.Version != "" && bf.Version != "1" {
		l.Logger.Warn("unknown configuration version " + bf.Version + " in " + configPath)
	}

	root, err := resolveRoot(configPath, bf.Root)
	if err != nil {
		return nil, err
	}

	p := domain.DefaultProject(root, env)

	if bf.BuildType != "" {
		p.BuildType = bf.BuildType
	}
	if p.BuildTemp, err = expandOr(bf.BuildTemp, p.BuildTemp); err != nil {
		return nil, err
	}
	if p.BuildLib, err = expandOr(bf.BuildLib, p.BuildLib); err != nil {
		return nil, err
	}
	if bf.ExtSuffix != "" {
		p.ExtSuffix = bf.ExtSuffix
	}
	if bf.Jobs != nil {
		p.Jobs = *bf.Jobs
	}
	if p.Interpreter, err = expandOr(bf.Python, ""); err != nil {
		return nil, err
	}
	p.CMakeArgs = append([]string(nil), bf.CMakeArgs...)

	if len(bf.Extensions) > 0 {
		p.Extensions = make([]domain.Extension, 0, len(bf.Extensions))
		for _, dto := range bf.Extensions {
			sourceDir, err := expandOr(dto.SourceDir, ".")
			if err != nil {
				return nil, err
			}
			p.Extensions = append(p.Extensions, domain.Extension{Name: dto.Name, SourceDir: sourceDir})
		}
	}

	if bf.Vcpkg.Repository != "" {
		p.Repository = bf.Vcpkg.Repository
	}
	if len(bf.Vcpkg.Packages) > 0 {
		p.Manifest = domain.DependencyManifest{Packages: append([]string(nil), bf.Vcpkg.Packages...)}
	}
	p.Triplet = bf.Vcpkg.Triplet

	return p, nil
}

// applyEnvironment fills what the configuration left open from env.
func applyEnvironment(p *domain.Project, env domain.Environment) error {
	if p.Triplet == "" {
		p.Triplet = domain.DefaultTriplet
		if t := env.Get(EnvTriplet); t != "" {
			p.Triplet = t
		}
	}

	if p.Interpreter == "" {
		if py := env.Get(EnvPython); py != "" {
			expanded, err := homedir.Expand(py)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to expand interpreter path"), "path", py)
			}
			p.Interpreter = expanded
		} else if found, err := shell.LookPath(defaultPythonName, env.Vars); err == nil {
			p.Interpreter = found
		}
	}

	if raw := strings.TrimSpace(env.Get(EnvCMakeArgs)); raw != "" {
		args, err := shellwords.Parse(raw)
		if err != nil {
			return errors.Join(domain.ErrInvalidCMakeArgs, zerr.With(err, EnvCMakeArgs, raw))
		}
		p.CMakeArgs = append(p.CMakeArgs, args...)
	}

	return nil
}

func resolveRoot(configPath, configuredRoot string) (string, error) {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir), nil
	}
	root, err := homedir.Expand(configuredRoot)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to expand root"), "root", configuredRoot)
	}
	if filepath.IsAbs(root) {
		return filepath.Clean(root), nil
	}
	return filepath.Clean(filepath.Join(configDir, root)), nil
}

func expandOr(value, fallback string) (string, error) {
	if value == "" {
		return fallback, nil
	}
	expanded, err := homedir.Expand(value)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to expand path"), "path", value)
	}
	return expanded, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is resolved by the loader
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
