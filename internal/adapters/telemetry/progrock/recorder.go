// Package progrock records build steps as progrock vertices.
package progrock

import (
	"context"
	"strconv"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on top of a progrock recorder.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu    sync.Mutex
	count map[string]int
}

// New creates a Recorder writing to a Journal.
func New() *Recorder {
	return NewRecorder(NewJournal())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:     w,
		rec:   progrock.NewRecorder(w),
		count: make(map[string]int),
	}
}

// Record starts a vertex for the named step and returns a context carrying it.
// Repeated names get distinct digests, so building several extensions does not
// merge their steps into one vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	r.mu.Lock()
	n := r.count[name]
	r.count[name] = n + 1
	r.mu.Unlock()

	key := name
	if n > 0 {
		key = name + "#" + strconv.Itoa(n)
	}

	v := &Vertex{vertex: r.rec.Vertex(digest.FromString(key), name)}
	return ports.ContextWithVertex(ctx, v), v
}

// Steps returns the steps recorded so far when the writer keeps them, such as
// a Journal, and nil otherwise.
func (r *Recorder) Steps() []domain.StepRecord {
	if j, ok := r.w.(interface{ Steps() []domain.StepRecord }); ok {
		return j.Steps()
	}
	return nil
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
