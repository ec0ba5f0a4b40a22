package rawbench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RunSuiteSuite struct {
	benchEnv
}

func (s *RunSuiteSuite) TestAverage() {
	specs := []RunSpec{{2, "a"}, {3, "b"}, {1, "c"}}
	so := s.newBench().Suite(context.Background(), specs, nil)
	s.Require().Equal(StateCompleted, so.State, "%v", so.Err)
	s.NoError(so.Err)
	s.Require().Len(so.Result.Runs, len(specs))

	sum := 0.0
	for i, it := range so.Result.Runs {
		s.Equal(specs[i].Label, it.Label, "runs keep their order")
		s.Greater(it.MBps, 0.0)
		sum += it.MBps
	}
	s.InEpsilon(sum/float64(len(specs)), so.Result.AverageMBps, 1e-9)
	s.assertNoFile()
}

func (s *RunSuiteSuite) TestCancelInSecondRun() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var seen []string
	cb := func(done, total uint64, label string) {
		seen = append(seen, label)
		if label == "b" && done >= 4*MiB {
			cancel()
		}
	}
	so := s.newBench().Suite(ctx, []RunSpec{{10, "a"}, {10, "b"}}, cb)

	s.Equal(StateCancelled, so.State)
	s.True(IsCancelled(so.Err))
	s.Empty(so.Result.Runs, "no partial suite result")
	s.Zero(so.Result.AverageMBps)
	s.Equal(StateCancelled, so.Last.State)
	s.Contains(seen, "a")
	s.assertNoFile()

	res, err := s.newBench().RunSuite(ctx, []RunSpec{{1, "again"}}, nil)
	s.ErrorIs(err, ErrCancelled, "the caller's signal stays raised")
	s.Zero(res.AverageMBps)
	s.Nil(res.Runs)
}

func (s *RunSuiteSuite) TestStopsOnFailure() {
	var seen []string
	cb := func(done, total uint64, label string) {
		seen = append(seen, label)
	}
	specs := []RunSpec{{1, "a"}, {0, "bad"}, {1, "c"}}
	res, err := s.newBench().RunSuite(context.Background(), specs, cb)
	s.ErrorIs(err, ErrInvalidArgument)
	s.Contains(err.Error(), `"bad"`)
	s.Nil(res.Runs)
	s.NotContains(seen, "c", "later runs never start")
	s.assertNoFile()
}

func (s *RunSuiteSuite) TestEmpty() {
	so := s.newBench().Suite(context.Background(), nil, nil)
	s.Equal(StateFailed, so.State)
	s.ErrorIs(so.Err, ErrInvalidArgument)
}

func TestRunSuite(t *testing.T) {
	suite.Run(t, new(RunSuiteSuite))
}

func TestAverageOfNothing(t *testing.T) {
	assert.Zero(t, average(nil))
	assert.InDelta(t, 2.0, average([]DiskRunResult{{MBps: 1}, {MBps: 3}}), 1e-12)
}

func TestDefaultSuite(t *testing.T) {
	specs := DefaultSuite()
	assert.NotEmpty(t, specs)
	for _, it := range specs {
		assert.Greater(t, it.SizeMB, 0)
		assert.NotEmpty(t, it.Label)
	}
}
