package rawbench

import (
	"fmt"
	"os"
	"path/filepath"
)

func prepareDir(path string) error {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	} else if !info.IsDir() {
		return fmt.Errorf("expected dir at %q", dir)
	}
	return nil
}

// removeArtifact deletes the benchmark file at path. Anything that is not
// a regular file was not created by a run and is left alone.
func removeArtifact(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%q is not a regular file, refusing to remove it", path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CleanupArtifacts removes a benchmark file left behind by a process that
// did not get to clean up after itself. A missing file is not an error.
func CleanupArtifacts(path string) error {
	if err := removeArtifact(path); err != nil {
		return ioError("cleanup", path, err)
	}
	return nil
}

// ExecutableDir is the directory holding the running binary, with
// symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
