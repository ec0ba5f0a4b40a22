package rawbench

import (
	"context"

	"github.com/chzyer/logex"
	"github.com/pkg/errors"

	"github.com/egor9814/rawbench/interrupt"
)

// ProgressFunc is called on the benchmarking goroutine after every chunk.
// Its running time is part of the measured window.
type ProgressFunc func(done, total uint64, label string)

type Benchmark struct {
	cfg Config
}

func New(opts ...Option) (*Benchmark, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Benchmark{cfg: cfg}, nil
}

func (b *Benchmark) Config() Config {
	return b.cfg
}

// Cleanup removes the benchmark file if one is lying around.
func (b *Benchmark) Cleanup() error {
	return CleanupArtifacts(b.cfg.Path)
}

// RunWriteTest writes sizeMB MiB and returns the measured rate. A
// cancelled run returns an error matching ErrCancelled and no result.
func (b *Benchmark) RunWriteTest(ctx context.Context, sizeMB int, label string, progress ProgressFunc) (DiskRunResult, error) {
	o := b.Run(ctx, sizeMB, label, progress)
	if o.State != StateCompleted {
		return DiskRunResult{}, o.Err
	}
	return o.Result, nil
}

// Run performs one timed write run. The buffer, the file handle and the
// benchmark file are all gone by the time it returns, whatever the
// outcome.
func (b *Benchmark) Run(ctx context.Context, sizeMB int, label string, progress ProgressFunc) (o Outcome) {
	fail := func(err error) Outcome {
		var e *Error
		if errors.As(err, &e) {
			e.annotate(label, sizeMB)
		}
		o.State = StateFailed
		o.Err = err
		return o
	}

	if sizeMB <= 0 {
		return fail(&Error{Kind: KindInvalidArgument, Op: "run",
			Err: errors.Errorf("size must be positive, got %d MiB", sizeMB)})
	}
	o.State = StateRunning
	o.Total = uint64(sizeMB) * MiB

	if b.cfg.SpaceCheck {
		if err := checkFreeSpace(b.cfg.Path, o.Total); err != nil {
			return fail(err)
		}
	}

	buf, err := AllocateAligned(b.cfg.BlockSize, b.cfg.Alignment)
	if err != nil {
		return fail(err)
	}
	defer buf.Release()
	if err := buf.Fill(b.cfg.Seed); err != nil {
		return fail(err)
	}

	existed := exists(b.cfg.Path)
	w, err := OpenDirect(b.cfg.Path, b.cfg.Mode, b.cfg.Alignment)
	if err != nil {
		// A failed open may still leave a fresh file behind. Whatever was
		// at the path before is not ours to delete.
		if !existed {
			if err := removeArtifact(b.cfg.Path); err != nil {
				logex.Error("rawbench: cannot remove benchmark file:", err)
			}
		}
		return fail(err)
	}
	defer func() {
		if err := removeArtifact(b.cfg.Path); err != nil {
			if o.State == StateCompleted {
				o = fail(ioError("remove", b.cfg.Path, err))
				o.Result = DiskRunResult{}
				return
			}
			logex.Error("rawbench: cannot remove benchmark file:", err)
		}
	}()
	defer func() {
		if err := w.Close(); err != nil {
			logex.Warn("rawbench: closing", w.Path(), "failed:", err)
		}
	}()

	var s Sampler
	s.Start()
	var stopped error
	for w.Written() < o.Total {
		if stopped = b.stopped(ctx); stopped != nil {
			break
		}
		chunk := min(uint64(b.cfg.BlockSize), o.Total-w.Written())
		_, err := w.WriteChunk(buf.Bytes(), int(chunk))
		o.Written = w.Written()
		if err != nil {
			return fail(err)
		}
		report(progress, o.Written, o.Total, label)
	}

	if o.Written < o.Total {
		o.State = StateCancelled
		o.Elapsed = s.Stop()
		o.Err = &Error{Kind: KindCancelled, Op: "write", Label: label, SizeMB: sizeMB, Path: b.cfg.Path, Err: stopped}
		return o
	}

	if b.cfg.Flush == FlushTimed {
		if err := w.Flush(); err != nil {
			return fail(err)
		}
	}
	o.Elapsed = s.Stop()
	if b.cfg.Flush == FlushAfter {
		if err := w.Flush(); err != nil {
			return fail(err)
		}
	}

	o.State = StateCompleted
	o.Result = DiskRunResult{
		Label: label,
		MBps:  Rate(o.Written, o.Elapsed),
	}
	return o
}

func (b *Benchmark) stopped(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.cfg.Interrupted() {
		return interrupt.ErrInterrupted
	}
	return nil
}

// report never lets a failing progress callback end the run.
func report(fn ProgressFunc, done, total uint64, label string) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logex.Warn("rawbench: progress callback panicked:", r)
		}
	}()
	fn(done, total, label)
}
