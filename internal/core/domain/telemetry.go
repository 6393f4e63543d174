package domain

import "time"

// LogLevel tags a line written to a step's output. Subprocess stdout is
// LogLevelInfo, subprocess stderr is LogLevelWarn and the reason a step
// failed is LogLevelError.
type LogLevel int

// The values leave room between levels the way log/slog does.
const (
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

func (l LogLevel) String() string {
	switch {
	case l >= LogLevelError:
		return "error"
	case l >= LogLevelWarn:
		return "warn"
	default:
		return "info"
	}
}

// StepOutcome is how a recorded step ended.
type StepOutcome string

const (
	// StepRunning means the step started but never reported completion,
	// as happens when the process is interrupted.
	StepRunning StepOutcome = "running"
	// StepDone means the step did its work.
	StepDone StepOutcome = "done"
	// StepCached means the work was found already done, e.g. an existing vcpkg checkout.
	StepCached StepOutcome = "cached"
	// StepFailed means the step ended the build.
	StepFailed StepOutcome = "failed"
)

// StepRecord is the recorded outcome of one pipeline step, in start order.
type StepRecord struct {
	Name     string
	Outcome  StepOutcome
	Duration time.Duration
	Error    string
}
