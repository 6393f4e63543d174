// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/extbuild/internal/core/domain"
)

// Executor defines the interface for running external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command to completion, streaming its output.
	//
	// A process that cannot be started or exits unsuccessfully yields an error
	// wrapping domain.ErrSubprocessFailure.
	Execute(ctx context.Context, cmd domain.Command) error

	// Output runs the command to completion and returns its standard output.
	Output(ctx context.Context, cmd domain.Command) ([]byte, error)
}
