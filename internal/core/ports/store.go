package ports

import "go.trai.ch/extbuild/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build record of an extension.
	// Returns nil, nil if not found.
	Get(extension string) (*domain.BuildInfo, error)

	// Put stores the build record.
	Put(info domain.BuildInfo) error

	// List returns all records ordered by extension name.
	List() ([]domain.BuildInfo, error)

	// Reset removes every record, including the backing file.
	Reset() error
}

// BuildInfoStoreOpener opens the build record store backed by a file.
type BuildInfoStoreOpener interface {
	// Open loads the store at path. A missing file yields an empty store.
	Open(path string) (BuildInfoStore, error)
}
