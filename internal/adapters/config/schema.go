package config

// Buildfile represents the structure of the extbuild.yaml configuration file.
// Every field is optional; omitted fields keep their defaults.
type Buildfile struct {
	Version    string         `yaml:"version"`
	Root       string         `yaml:"root"`
	BuildType  string         `yaml:"build_type"`
	BuildTemp  string         `yaml:"build_temp"`
	BuildLib   string         `yaml:"build_lib"`
	ExtSuffix  string         `yaml:"ext_suffix"`
	Jobs       *int           `yaml:"jobs"`
	Python     string         `yaml:"python"`
	CMakeArgs  []string       `yaml:"cmake_args"`
	Extensions []ExtensionDTO `yaml:"extensions"`
	Vcpkg      VcpkgDTO       `yaml:"vcpkg"`
}

// ExtensionDTO represents one native extension in the configuration.
type ExtensionDTO struct {
	Name      string `yaml:"name"`
	SourceDir string `yaml:"source_dir"`
}

// VcpkgDTO represents the dependency provisioning settings.
type VcpkgDTO struct {
	Repository string   `yaml:"repository"`
	Triplet    string   `yaml:"triplet"`
	Packages   []string `yaml:"packages"`
}
