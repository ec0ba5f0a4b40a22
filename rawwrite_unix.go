//go:build unix

package rawbench

import (
	"os"

	"golang.org/x/sys/unix"
)

// writeOnce issues a single write(2) and returns whatever the kernel
// accepted. os.File.Write would loop over partial writes.
func writeOnce(f *os.File, b []byte) (int, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return 0, err
	}
	var n int
	var werr error
	err = rc.Write(func(fd uintptr) bool {
		n, werr = unix.Write(int(fd), b)
		// EAGAIN comes only from pollable descriptors, nothing was written.
		return werr != unix.EAGAIN
	})
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	return n, werr
}
