package rawbench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledBuffer(t *testing.T, size int) *AlignedBuffer {
	t.Helper()
	b, err := AllocateAligned(size, DefaultAlignment)
	require.NoError(t, err)
	require.NoError(t, b.Fill(7))
	return b
}

func TestWriterBuffered(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	buf := filledBuffer(t, 16<<10)

	w, err := OpenDirect(path, IOModeBuffered, DefaultAlignment)
	require.NoError(t, err, "missing parent directories are created")
	assert.Equal(path, w.Path())
	assert.Equal(IOModeBuffered, w.Mode())

	n, err := w.WriteChunk(buf.Bytes(), 8<<10)
	require.NoError(t, err)
	assert.Equal(8<<10, n)
	assert.Equal(uint64(8<<10), w.Written())

	_, err = w.WriteChunk(buf.Bytes(), 100)
	assert.ErrorIs(err, ErrInvalidArgument, "unaligned length")
	_, err = w.WriteChunk(buf.Bytes(), 32<<10)
	assert.ErrorIs(err, ErrInvalidArgument, "longer than the buffer")
	_, err = w.WriteChunk(buf.Bytes(), 0)
	assert.ErrorIs(err, ErrInvalidArgument)
	assert.Equal(uint64(8<<10), w.Written(), "rejected chunks are not counted")

	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.WriteChunk(buf.Bytes(), 4096)
	assert.ErrorIs(err, ErrIO)
	assert.ErrorIs(w.Flush(), ErrIO)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(buf.Bytes()[:8<<10], data)
}

func TestWriterTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, make([]byte, 1<<20), 0644))

	w, err := OpenDirect(path, IOModeBuffered, DefaultAlignment)
	require.NoError(t, err)
	defer w.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriterDirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	buf := filledBuffer(t, 64<<10)

	w, err := OpenDirect(path, IOModeDirect, DefaultAlignment)
	if errors.Is(err, ErrUnsupportedIoMode) {
		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, IOModeDirect, e.Mode)
		assert.Contains(t, err.Error(), path)
		assert.Contains(t, err.Error(), "[direct]")
		t.Skipf("filesystem under %s has no direct I/O: %v", path, err)
	}
	require.NoError(t, err)
	defer w.Close()

	n, err := w.WriteChunk(buf.Bytes(), buf.Len())
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)
	assert.NoError(t, w.Flush())
}

func TestOpenDirectRejects(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := OpenDirect(filepath.Join(blocker, DefaultFileName), IOModeBuffered, DefaultAlignment)
	assert.ErrorIs(t, err, ErrIO, "parent is a regular file")

	_, err = OpenDirect(filepath.Join(dir, DefaultFileName), IOMode(9), DefaultAlignment)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = OpenDirect(filepath.Join(dir, DefaultFileName), IOModeBuffered, 3000)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
