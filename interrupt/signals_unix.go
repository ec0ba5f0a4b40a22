//go:build unix

package interrupt

import (
	"os"

	"golang.org/x/sys/unix"
)

var signals = []os.Signal{os.Interrupt, unix.SIGTERM}
