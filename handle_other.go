//go:build !unix

package rawbench

func checkFd(fd int) error {
	return nil
}
