package progrock

import (
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/extbuild/internal/core/domain"
)

// Journal is a progrock.Writer that keeps the latest state of every vertex so
// the steps of a build can be summarized once it ends. Log lines are dropped;
// the executor already forwards them to the logger.
type Journal struct {
	mu    sync.Mutex
	order []string
	steps map[string]domain.StepRecord
}

var _ progrock.Writer = (*Journal)(nil)

// NewJournal creates an empty Journal.
func NewJournal() *Journal {
	return &Journal{steps: make(map[string]domain.StepRecord)}
}

// WriteStatus folds the vertex updates of one status update into the journal.
func (j *Journal) WriteStatus(update *progrock.StatusUpdate) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, v := range update.Vertexes {
		if _, seen := j.steps[v.Id]; !seen {
			j.order = append(j.order, v.Id)
		}
		j.steps[v.Id] = stepRecord(v)
	}
	return nil
}

// Close implements progrock.Writer. The journal stays readable afterwards.
func (j *Journal) Close() error {
	return nil
}

// Steps returns the recorded steps in the order they started.
func (j *Journal) Steps() []domain.StepRecord {
	j.mu.Lock()
	defer j.mu.Unlock()

	steps := make([]domain.StepRecord, 0, len(j.order))
	for _, id := range j.order {
		steps = append(steps, j.steps[id])
	}
	return steps
}

func stepRecord(v *progrock.Vertex) domain.StepRecord {
	rec := domain.StepRecord{Name: v.Name, Outcome: domain.StepRunning}

	if v.Started != nil && v.Completed != nil {
		rec.Duration = v.Completed.AsTime().Sub(v.Started.AsTime())
	}

	switch {
	case v.Error != nil:
		rec.Outcome = domain.StepFailed
		rec.Error = *v.Error
	case v.Completed == nil:
	case v.Cached:
		rec.Outcome = domain.StepCached
	default:
		rec.Outcome = domain.StepDone
	}
	return rec
}
