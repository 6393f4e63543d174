package domain

import (
	"regexp"
	"strings"
)

// Extension is a native binary loaded by a higher-level runtime as an importable module.
type Extension struct {
	// Name is the dotted import name of the module (e.g., "pyatlas" or "pkg.native").
	Name string
	// SourceDir is the directory holding the extension's CMakeLists.txt.
	SourceDir string
}

var extensionNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidateExtensionName checks that name is a valid dotted module identifier.
func ValidateExtensionName(name string) bool {
	return extensionNamePattern.MatchString(name)
}

// BaseName returns the last segment of the dotted module name.
func (e Extension) BaseName() string {
	if i := strings.LastIndexByte(e.Name, '.'); i >= 0 {
		return e.Name[i+1:]
	}
	return e.Name
}
