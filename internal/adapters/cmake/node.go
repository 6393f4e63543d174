package cmake

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/adapters/shell"
	"go.trai.ch/extbuild/internal/core/ports"
)

// NodeID is the graft node identifier for the build generator.
const NodeID graft.ID = "adapter.generator"

func init() {
	graft.Register(graft.Node[ports.BuildGenerator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.BuildGenerator, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewGenerator(executor), nil
		},
	})
}
