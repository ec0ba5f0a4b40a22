//go:build !linux

package rawbench

import "os"

func syncData(f *os.File) error {
	return f.Sync()
}
