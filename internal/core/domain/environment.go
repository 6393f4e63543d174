package domain

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Environment is an explicit snapshot of the process-wide state consumed by subprocesses.
// The builder never reads os.Environ or runtime.GOOS directly; it only sees the
// Environment it was handed, which keeps the build logic isolated from ambient mutation.
type Environment struct {
	// OS is the operating system identifier, using GOOS names (e.g., "linux", "darwin").
	OS string
	// Arch is the architecture identifier, using GOARCH names (e.g., "amd64", "arm64").
	Arch string
	// Vars holds environment variables in "KEY=VALUE" format.
	Vars []string
}

// CurrentEnvironment captures the environment of the running process.
// It is meant to be called once, at the program edge.
func CurrentEnvironment() Environment {
	return Environment{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
		Vars: os.Environ(),
	}
}

// Lookup returns the value of the given variable and whether it was set.
// When a key appears more than once the last occurrence wins, matching os/exec.
func (e Environment) Lookup(key string) (string, bool) {
	var (
		value string
		found bool
	)
	for _, entry := range e.Vars {
		k, v, ok := strings.Cut(entry, "=")
		if ok && k == key {
			value, found = v, true
		}
	}
	return value, found
}

// Get returns the value of the given variable, or an empty string if unset.
func (e Environment) Get(key string) string {
	v, _ := e.Lookup(key)
	return v
}

// PathList returns the directories of the PATH variable.
func (e Environment) PathList() []string {
	path := e.Get("PATH")
	if path == "" {
		return nil
	}
	return filepath.SplitList(path)
}

// With returns a copy of the environment with key set to value.
func (e Environment) With(key, value string) Environment {
	vars := make([]string, 0, len(e.Vars)+1)
	for _, entry := range e.Vars {
		if k, _, ok := strings.Cut(entry, "="); ok && k == key {
			continue
		}
		vars = append(vars, entry)
	}
	vars = append(vars, key+"="+value)

	e.Vars = vars
	return e
}

// Supported reports whether the builder can run on this operating system.
// Windows is deliberately not supported.
func (e Environment) Supported() bool {
	return e.OS != "windows"
}

// PlatformTag returns the "<os>-<machine>" tag used in packaging build directory names,
// e.g. "linux-x86_64" or "macosx-arm64".
func (e Environment) PlatformTag() string {
	osName := e.OS
	if osName == "darwin" {
		osName = "macosx"
	}

	machine := e.Arch
	switch e.Arch {
	case "amd64":
		machine = "x86_64"
	case "386":
		machine = "i686"
	case "arm64":
		if e.OS == "linux" {
			machine = "aarch64"
		}
	}

	return osName + "-" + machine
}
