package domain

import (
	"path/filepath"
	"strings"
)

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "extbuild.yaml"

	// BuildDirName is the root of all packaging build directories.
	BuildDirName = "build"

	// StateDirName is the name of the internal state directory inside the build directory.
	StateDirName = ".extbuild"

	// StoreFileName is the name of the build record store.
	StoreFileName = "builds.json"

	// PackageManagerDirName is the name of the vcpkg checkout inside the working directory.
	PackageManagerDirName = "vcpkg"

	// DefaultExtSuffix is the file suffix of compiled extensions when none is configured.
	DefaultExtSuffix = ".so"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// WorkDir derives the native build working directory from the packaging temp directory.
// Every "temp" segment of the path is replaced with "lib".
func WorkDir(buildTemp string) string {
	return strings.ReplaceAll(buildTemp, "temp", "lib")
}

// PackageManagerDir returns the vcpkg checkout location nested under the working directory.
func PackageManagerDir(workDir string) string {
	return filepath.Join(workDir, PackageManagerDirName)
}

// ToolchainFile returns the CMake toolchain file shipped inside a vcpkg checkout.
func ToolchainFile(packageManagerDir string) string {
	return filepath.Join(packageManagerDir, "scripts", "buildsystems", "vcpkg.cmake")
}

// DefaultBuildTemp returns the packaging temp directory for the given environment,
// e.g. "build/temp.linux-x86_64".
func DefaultBuildTemp(env Environment) string {
	return filepath.Join(BuildDirName, "temp."+env.PlatformTag())
}

// DefaultBuildLib returns the packaging lib directory for the given environment,
// e.g. "build/lib.linux-x86_64".
func DefaultBuildLib(env Environment) string {
	return filepath.Join(BuildDirName, "lib."+env.PlatformTag())
}

// ExtensionFullPath returns the path where the import system expects the compiled
// extension: the dotted name becomes nested directories under buildLib, and the last
// segment receives the extension suffix.
func ExtensionFullPath(buildLib, name, suffix string) string {
	parts := strings.Split(name, ".")
	parts[len(parts)-1] += suffix
	return filepath.Join(append([]string{buildLib}, parts...)...)
}

// DefaultStorePath returns the default path of the build record store.
// It joins build, .extbuild and builds.json.
func DefaultStorePath() string {
	return filepath.Join(BuildDirName, StateDirName, StoreFileName)
}
