package ports

// ArtifactLocator finds compiled extension binaries.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type ArtifactLocator interface {
	// Locate returns the binaries in dir whose file name starts with baseName and
	// carries a native library suffix, sorted by path.
	Locate(dir, baseName string) ([]string, error)
}
