package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex is one pipeline step, such as "install x64-linux" or "build pyatlas".
// Subprocesses started by the step write their output streams into it.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

func (v *Vertex) Stdout() io.Writer { return v.vertex.Stdout() }

func (v *Vertex) Stderr() io.Writer { return v.vertex.Stderr() }

// Log appends a step note to stdout, prefixed with its level, e.g. "error: exit status 1".
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "%s: %s\n", level, msg)
}

// Complete ends the step. A non-nil err marks the step as the one that stopped the build.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached flags a step whose work was already present, e.g. a bootstrapped vcpkg checkout.
// It must precede Complete.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
