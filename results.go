package rawbench

import (
	"fmt"
	"time"
)

// DiskRunResult exists only for runs that wrote their full size.
type DiskRunResult struct {
	Label string
	MBps  float64
}

type DiskSuiteResult struct {
	Runs        []DiskRunResult
	AverageMBps float64
}

type State byte

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", byte(s))
	}
}

// Outcome is how a single run ended. Result is meaningful only when
// State is StateCompleted; Err is set for the other terminal states.
type Outcome struct {
	State   State
	Result  DiskRunResult
	Written uint64
	Total   uint64
	Elapsed time.Duration
	Err     error
}

type SuiteOutcome struct {
	State  State
	Result DiskSuiteResult
	// Last is the outcome of the last run attempted.
	Last Outcome
	Err  error
}

func average(runs []DiskRunResult) float64 {
	if len(runs) == 0 {
		return 0
	}
	sum := 0.0
	for _, it := range runs {
		sum += it.MBps
	}
	return sum / float64(len(runs))
}
