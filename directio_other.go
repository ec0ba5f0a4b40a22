//go:build !unix

package rawbench

import (
	"syscall"

	"github.com/pkg/errors"
)

func directUnsupported(err error) bool {
	return errors.Is(err, syscall.EINVAL)
}
