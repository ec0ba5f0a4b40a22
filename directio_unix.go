//go:build unix

package rawbench

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// directUnsupported tells a refused O_DIRECT/F_NOCACHE request apart from
// ordinary open failures.
func directUnsupported(err error) bool {
	return errors.Is(err, unix.EINVAL) || errors.Is(err, unix.EOPNOTSUPP)
}
