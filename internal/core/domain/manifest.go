package domain

import "slices"

// DefaultTriplet is the vcpkg target triplet the wrapped library is built for.
const DefaultTriplet = "x64-linux"

// DefaultPackageManagerRepository is the canonical source of the vcpkg checkout.
const DefaultPackageManagerRepository = "https://github.com/microsoft/vcpkg.git"

// DependencyManifest is the ordered list of native packages installed before configuring.
// Order is preserved as declared; resolution is left to the package manager.
type DependencyManifest struct {
	Packages []string
}

// DefaultManifest returns the native dependencies of the wrapped geometry library.
func DefaultManifest() DependencyManifest {
	return DependencyManifest{
		Packages: []string{
			"eigen3",
			"spectra",
			"directx-headers",
			"directxmath",
			"directxtex",
			"directxmesh",
		},
	}
}

// Empty reports whether the manifest lists no packages.
func (m DependencyManifest) Empty() bool {
	return len(m.Packages) == 0
}

// Clone returns a deep copy of the manifest.
func (m DependencyManifest) Clone() DependencyManifest {
	return DependencyManifest{Packages: slices.Clone(m.Packages)}
}
