package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/adapters/cmake"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/extbuild/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/extbuild/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/extbuild/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/extbuild/internal/adapters/vcpkg"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/extbuild/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cmake.NodeID,
			vcpkg.ManagerNodeID,
			fs.LocatorNodeID,
			fs.HasherNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			generator, err := graft.Dep[ports.BuildGenerator](ctx)
			if err != nil {
				return nil, err
			}

			packages, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}

			locator, err := graft.Dep[ports.ArtifactLocator](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(generator, packages, locator, hasher, telemetry, log), nil
		},
	})
}
