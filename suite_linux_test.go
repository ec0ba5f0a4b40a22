package rawbench

import (
	"context"
	"os/signal"

	"golang.org/x/sys/unix"
)

// limitFileSize caps the size of files this process may write. Writes
// past the cap fail with EFBIG instead of raising SIGXFSZ.
func (s *RunSuiteSuite) limitFileSize(n uint64) {
	var old unix.Rlimit
	s.Require().NoError(unix.Getrlimit(unix.RLIMIT_FSIZE, &old))
	signal.Ignore(unix.SIGXFSZ)
	s.Require().NoError(unix.Setrlimit(unix.RLIMIT_FSIZE, &unix.Rlimit{Cur: n, Max: old.Max}))
	s.T().Cleanup(func() {
		s.NoError(unix.Setrlimit(unix.RLIMIT_FSIZE, &old))
		signal.Reset(unix.SIGXFSZ)
	})
}

func (s *RunSuiteSuite) TestWriteFailureAborts() {
	s.limitFileSize(1 << 20)

	var p progressLog
	specs := []RunSpec{{1, "fits"}, {2, "too big"}, {1, "never"}}
	so := s.newBench(WithBlockSize(1<<20)).Suite(context.Background(), specs, p.record)

	s.Equal(StateFailed, so.State)
	s.Empty(so.Result.Runs, "no partial suite result")
	s.Equal(StateFailed, so.Last.State)
	s.Equal(uint64(1<<20), so.Last.Written, "the first chunk fits under the cap")
	s.Contains(p.labels, "fits")
	s.NotContains(p.labels, "never")

	s.ErrorIs(so.Err, ErrIO)
	var e *Error
	s.Require().ErrorAs(so.Err, &e)
	s.Equal("too big", e.Label)
	s.Equal(2, e.SizeMB)
	errno, ok := e.Errno()
	s.Require().True(ok)
	s.Equal(unix.EFBIG, errno)
	s.assertNoFile()
}
