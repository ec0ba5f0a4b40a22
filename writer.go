package rawbench

import (
	"io"
	"os"

	"github.com/ncw/directio"
	"github.com/pkg/errors"
)

// DirectWriter issues aligned sequential writes into a freshly truncated
// file and counts what reached it.
type DirectWriter struct {
	h         *Handle
	path      string
	mode      IOMode
	alignment int
	written   uint64
}

func OpenDirect(path string, mode IOMode, alignment int) (*DirectWriter, error) {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return nil, &Error{Kind: KindInvalidArgument, Op: "open", Path: path,
			Err: errors.Errorf("alignment %d is not a power of two", alignment)}
	}
	if err := prepareDir(path); err != nil {
		return nil, ioError("open", path, err)
	}

	const flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	var f *os.File
	var err error
	switch mode {
	case IOModeDirect:
		f, err = directio.OpenFile(path, flag, 0644)
	case IOModeBuffered:
		f, err = os.OpenFile(path, flag, 0644)
	default:
		return nil, &Error{Kind: KindInvalidArgument, Op: "open", Path: path,
			Err: errors.Errorf("unknown io mode %v", mode)}
	}
	if err != nil {
		return nil, openError(path, mode, err)
	}

	h, err := NewHandle(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &DirectWriter{
		h:         h,
		path:      path,
		mode:      mode,
		alignment: alignment,
	}, nil
}

func openError(path string, mode IOMode, err error) *Error {
	if mode == IOModeDirect && directUnsupported(err) {
		return &Error{Kind: KindUnsupportedIoMode, Op: "open", Path: path, Mode: mode,
			Err: errors.Wrap(err, "filesystem refused uncached writes")}
	}
	return ioError("open", path, err)
}

// WriteChunk writes exactly n bytes from the start of buf with a single
// write call. A short write is an error; nothing is retried.
func (w *DirectWriter) WriteChunk(buf []byte, n int) (int, error) {
	if n <= 0 || n > len(buf) || n%w.alignment != 0 {
		return 0, &Error{Kind: KindInvalidArgument, Op: "write", Path: w.path,
			Err: errors.Errorf("chunk of %d bytes from a %d byte buffer is not aligned to %d", n, len(buf), w.alignment)}
	}
	f := w.h.File()
	if f == nil {
		return 0, ioError("write", w.path, os.ErrClosed)
	}
	nw, err := writeOnce(f, buf[:n])
	if nw > 0 {
		w.written += uint64(nw)
	}
	if err != nil {
		return nw, ioError("write", w.path, err)
	}
	if nw < n {
		return nw, ioError("write", w.path, errors.Wrapf(io.ErrShortWrite, "wrote %d of %d bytes", nw, n))
	}
	return nw, nil
}

// Flush is a durability barrier for everything written so far.
func (w *DirectWriter) Flush() error {
	f := w.h.File()
	if f == nil {
		return ioError("flush", w.path, os.ErrClosed)
	}
	if err := syncData(f); err != nil {
		return ioError("flush", w.path, err)
	}
	return nil
}

func (w *DirectWriter) Written() uint64 {
	return w.written
}

func (w *DirectWriter) Path() string {
	return w.path
}

func (w *DirectWriter) Mode() IOMode {
	return w.mode
}

func (w *DirectWriter) Close() error {
	return w.h.Close()
}
