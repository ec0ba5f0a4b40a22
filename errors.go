package rawbench

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

type Kind byte

const (
	KindInvalidArgument Kind = iota + 1
	KindAllocation
	KindUnsupportedIoMode
	KindIO
	KindCancelled
	KindInvalidHandle
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindAllocation:
		return "allocation failed"
	case KindUnsupportedIoMode:
		return "unsupported io mode"
	case KindIO:
		return "i/o error"
	case KindCancelled:
		return "cancelled"
	case KindInvalidHandle:
		return "invalid handle"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
	ErrAllocation        = &Error{Kind: KindAllocation}
	ErrUnsupportedIoMode = &Error{Kind: KindUnsupportedIoMode}
	ErrIO                = &Error{Kind: KindIO}
	ErrCancelled         = &Error{Kind: KindCancelled}
	ErrInvalidHandle     = &Error{Kind: KindInvalidHandle}
)

var ErrNoSpace = errors.New("not enough free space")

// Error is returned by every operation in this package. It carries enough
// context to be shown to a user as is.
type Error struct {
	Kind   Kind
	Op     string
	Label  string
	SizeMB int
	Path   string
	Mode   IOMode
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("rawbench: ")
	if len(e.Op) > 0 {
		sb.WriteString(e.Op)
		sb.WriteByte(' ')
	}
	if len(e.Label) > 0 || e.SizeMB != 0 {
		fmt.Fprintf(&sb, "run %q (%d MiB) ", e.Label, e.SizeMB)
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(&sb, "%q ", e.Path)
	}
	if e.Kind == KindUnsupportedIoMode {
		fmt.Fprintf(&sb, "[%s] ", e.Mode)
	}
	sb.WriteString(e.Kind.String())
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil && len(t.Op) == 0
}

// Errno returns the underlying OS error number, if there is one.
func (e *Error) Errno() (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno, true
	}
	return 0, false
}

func (e *Error) annotate(label string, sizeMB int) *Error {
	if len(e.Label) == 0 {
		e.Label = label
	}
	if e.SizeMB == 0 {
		e.SizeMB = sizeMB
	}
	return e
}

func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

func ioError(op, path string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}
