package rawbench

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// Handle is the single owner of an open file. Ownership can be moved
// with Transfer but never shared.
type Handle struct {
	f *os.File
}

func invalidHandle(name string, err error) *Error {
	return &Error{Kind: KindInvalidHandle, Op: "handle", Path: name, Err: err}
}

func NewHandle(f *os.File) (*Handle, error) {
	if f == nil {
		return nil, invalidHandle("", errors.New("nil file"))
	}
	if f.Fd() == ^uintptr(0) {
		return nil, invalidHandle(f.Name(), os.ErrClosed)
	}
	return &Handle{f: f}, nil
}

// HandleFromFd adopts a raw descriptor. The descriptor must refer to an
// open resource.
func HandleFromFd(fd int, name string) (*Handle, error) {
	if fd < 0 {
		return nil, invalidHandle(name, syscall.EBADF)
	}
	if err := checkFd(fd); err != nil {
		return nil, invalidHandle(name, err)
	}
	return NewHandle(os.NewFile(uintptr(fd), name))
}

// File exposes the raw handle for I/O calls. It returns nil once the
// handle was closed or transferred.
func (h *Handle) File() *os.File {
	return h.f
}

func (h *Handle) Valid() bool {
	return h != nil && h.f != nil
}

// Transfer moves ownership into a new Handle and empties h.
func (h *Handle) Transfer() *Handle {
	n := &Handle{f: h.f}
	h.f = nil
	return n
}

// Close closes the file once. Later calls are no-ops. The close error is
// returned for the caller to report; the handle is released either way.
func (h *Handle) Close() error {
	if h == nil || h.f == nil {
		return nil
	}
	f := h.f
	h.f = nil
	return f.Close()
}
