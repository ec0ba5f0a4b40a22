package rawbench

import (
	"path/filepath"

	"github.com/chzyer/logex"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/disk"
)

var freeSpace = func(dir string) (uint64, error) {
	u, err := disk.Usage(dir)
	if err != nil {
		return 0, err
	}
	return u.Free, nil
}

// checkFreeSpace refuses a run that could not fit on the target
// filesystem. If usage cannot be queried the check is skipped.
func checkFreeSpace(path string, need uint64) error {
	dir := filepath.Dir(path)
	free, err := freeSpace(dir)
	if err != nil {
		logex.Warn("rawbench: free space check skipped:", err)
		return nil
	}
	if free < need {
		return ioError("preflight", path, errors.Wrapf(ErrNoSpace, "need %d bytes, %d free", need, free))
	}
	return nil
}
