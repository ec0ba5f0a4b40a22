//go:build unix

package rawbench

import "golang.org/x/sys/unix"

func checkFd(fd int) error {
	var st unix.Stat_t
	return unix.Fstat(fd, &st)
}
