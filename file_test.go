package rawbench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupArtifacts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)

	assert.NoError(t, CleanupArtifacts(path), "missing file is fine")

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.NoError(t, CleanupArtifacts(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, os.Mkdir(path, 0755))
	assert.ErrorIs(t, CleanupArtifacts(path), ErrIO, "only regular files are removed")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	target := filepath.Join(dir, "target")
	require.NoError(t, os.WriteFile(target, []byte("keep"), 0644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))
	assert.ErrorIs(t, CleanupArtifacts(link), ErrIO)
	assert.FileExists(t, target)
}

func TestExecutableDir(t *testing.T) {
	dir, err := ExecutableDir()
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
