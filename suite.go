package rawbench

import (
	"context"

	"github.com/pkg/errors"
)

type RunSpec struct {
	SizeMB int
	Label  string
}

func DefaultSuite() []RunSpec {
	return []RunSpec{
		{SizeMB: 64, Label: "64MB"},
		{SizeMB: 256, Label: "256MB"},
		{SizeMB: 1024, Label: "1GB"},
	}
}

// Suite runs specs one after another. The first run that does not
// complete ends the suite with that run's state and error; no partial
// result is returned.
func (b *Benchmark) Suite(ctx context.Context, specs []RunSpec, progress ProgressFunc) (so SuiteOutcome) {
	if len(specs) == 0 {
		so.State = StateFailed
		so.Err = &Error{Kind: KindInvalidArgument, Op: "suite", Err: errors.New("no runs given")}
		return
	}
	so.State = StateRunning
	runs := make([]DiskRunResult, 0, len(specs))
	for _, it := range specs {
		so.Last = b.Run(ctx, it.SizeMB, it.Label, progress)
		if so.Last.State != StateCompleted {
			so.State = so.Last.State
			so.Err = so.Last.Err
			return
		}
		runs = append(runs, so.Last.Result)
	}
	so.State = StateCompleted
	so.Result = DiskSuiteResult{
		Runs:        runs,
		AverageMBps: average(runs),
	}
	return
}

func (b *Benchmark) RunSuite(ctx context.Context, specs []RunSpec, progress ProgressFunc) (DiskSuiteResult, error) {
	so := b.Suite(ctx, specs, progress)
	if so.State != StateCompleted {
		return DiskSuiteResult{}, so.Err
	}
	return so.Result, nil
}
