package domain

import "go.trai.ch/zerr"

var (
	// ErrToolchainMissing is returned when the build generator cannot be invoked.
	ErrToolchainMissing = zerr.New("build generator not found, cmake must be installed to build extensions")

	// ErrUnsupportedPlatform is returned when the builder runs on an operating system it does not support.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrSubprocessFailure is returned when an invoked external process exits unsuccessfully.
	ErrSubprocessFailure = zerr.New("subprocess failed")

	// ErrArtifactNotFound is returned when the compiled extension is missing from the output directory.
	ErrArtifactNotFound = zerr.New("compiled extension not found in output directory")

	// ErrBuildFailed is returned when building one of the extensions fails.
	ErrBuildFailed = zerr.New("extension build failed")

	// ErrNoExtensions is returned when the configuration declares no extensions.
	ErrNoExtensions = zerr.New("no extensions configured")

	// ErrExtensionNotFound is returned when a requested extension is not declared in the configuration.
	ErrExtensionNotFound = zerr.New("extension not found")

	// ErrInvalidExtensionName is returned when an extension name is empty or malformed.
	ErrInvalidExtensionName = zerr.New("invalid extension name")

	// ErrDuplicateExtension is returned when two extensions share the same name.
	ErrDuplicateExtension = zerr.New("duplicate extension name")

	// ErrEmptyManifest is returned when the dependency manifest lists no packages.
	ErrEmptyManifest = zerr.New("dependency manifest is empty")

	// ErrInvalidBuildType is returned when the build type is not one CMake understands.
	ErrInvalidBuildType = zerr.New("invalid build type, expected Release, Debug, RelWithDebInfo or MinSizeRel")

	// ErrInvalidJobs is returned when the parallel job count is negative.
	ErrInvalidJobs = zerr.New("parallel job count must not be negative")

	// ErrEmptyTriplet is returned when no target triplet is configured.
	ErrEmptyTriplet = zerr.New("target triplet is empty")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidCMakeArgs is returned when CMAKE_ARGS cannot be split into words.
	ErrInvalidCMakeArgs = zerr.New("failed to parse CMAKE_ARGS")

	// ErrStoreReadFailed is returned when the build record store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record store")

	// ErrStoreUnmarshalFailed is returned when the build record store cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record store")

	// ErrStoreMarshalFailed is returned when the build record store cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record store")

	// ErrStoreWriteFailed is returned when the build record store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record store")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrWorkDirCreateFailed is returned when the working directory cannot be created.
	ErrWorkDirCreateFailed = zerr.New("failed to create working directory")

	// ErrCheckoutFailed is returned when the package manager repository cannot be cloned.
	// It is always joined with ErrSubprocessFailure.
	ErrCheckoutFailed = zerr.New("failed to clone package manager repository")
)
