package rawbench

import (
	"math/rand"
	"unsafe"

	"github.com/chzyer/logex"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/mem"
)

// AlignedBuffer is a block of memory whose address and length are both
// multiples of the alignment unit. It is filled once and never changes
// afterwards.
type AlignedBuffer struct {
	raw       []byte
	buf       []byte
	alignment int
	filled    bool
}

var availableMemory = func() (uint64, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return v.Available, nil
}

func allocError(err error) *Error {
	return &Error{Kind: KindAllocation, Op: "allocate", Err: err}
}

func AllocateAligned(size, alignment int) (*AlignedBuffer, error) {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return nil, allocError(errors.Errorf("alignment %d is not a power of two", alignment))
	}
	if size <= 0 || size%alignment != 0 {
		return nil, allocError(errors.Errorf("size %d is not a positive multiple of %d", size, alignment))
	}
	need := uint64(size) + uint64(alignment)
	if avail, err := availableMemory(); err != nil {
		logex.Warn("rawbench: memory check skipped:", err)
	} else if need > avail {
		return nil, allocError(errors.Errorf("need %d bytes, only %d available", need, avail))
	}

	raw := make([]byte, size+alignment)
	offset := 0
	if r := alignmentOf(raw, alignment); r != 0 {
		offset = alignment - r
	}
	buf := raw[offset : offset+size]
	if alignmentOf(buf, alignment) != 0 {
		return nil, allocError(errors.Errorf("cannot align block to %d bytes", alignment))
	}
	return &AlignedBuffer{
		raw:       raw,
		buf:       buf,
		alignment: alignment,
	}, nil
}

// alignmentOf returns the offset of b's first byte past the previous
// alignment boundary. b must not be empty.
func alignmentOf(b []byte, alignment int) int {
	return int(uintptr(unsafe.Pointer(&b[0])) & uintptr(alignment-1))
}

// Fill writes a deterministic pseudo-random pattern derived from seed.
// It may be called once.
func (b *AlignedBuffer) Fill(seed int64) error {
	if b.buf == nil {
		return allocError(errors.New("buffer released"))
	}
	if b.filled {
		return &Error{Kind: KindInvalidArgument, Op: "fill", Err: errors.New("buffer already filled")}
	}
	rand.New(rand.NewSource(seed)).Read(b.buf)
	if !Incompressible(b.buf) {
		return allocError(errors.Errorf("fill pattern for seed %#x is compressible", seed))
	}
	b.filled = true
	return nil
}

func (b *AlignedBuffer) Bytes() []byte {
	return b.buf
}

func (b *AlignedBuffer) Len() int {
	return len(b.buf)
}

func (b *AlignedBuffer) Alignment() int {
	return b.alignment
}

func (b *AlignedBuffer) Filled() bool {
	return b.filled
}

// Release drops the memory. The buffer is unusable afterwards.
func (b *AlignedBuffer) Release() {
	b.raw = nil
	b.buf = nil
}
