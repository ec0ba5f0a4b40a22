package rawbench

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/egor9814/rawbench/interrupt"
)

const (
	MiB = 1 << 20

	DefaultBlockSize = 4 * MiB
	DefaultAlignment = 4096
	DefaultFileName  = "benchtest_file"
)

type IOMode byte

const (
	// IOModeDirect bypasses the page cache. Opening fails if the
	// filesystem refuses uncached writes.
	IOModeDirect IOMode = iota
	// IOModeBuffered goes through the page cache. Numbers measured this way
	// describe cache absorption, not the device.
	IOModeBuffered
)

func (m IOMode) String() string {
	switch m {
	case IOModeDirect:
		return "direct"
	case IOModeBuffered:
		return "buffered"
	default:
		return fmt.Sprintf("IOMode(%d)", byte(m))
	}
}

// FlushPolicy decides whether a durability barrier is issued after the
// last chunk, and whether its cost lands in the timed window.
type FlushPolicy byte

const (
	FlushAfter FlushPolicy = iota
	FlushTimed
	FlushNone
)

func (p FlushPolicy) String() string {
	switch p {
	case FlushAfter:
		return "after"
	case FlushTimed:
		return "timed"
	case FlushNone:
		return "none"
	default:
		return fmt.Sprintf("FlushPolicy(%d)", byte(p))
	}
}

func ParseFlushPolicy(s string) (FlushPolicy, error) {
	for _, p := range []FlushPolicy{FlushAfter, FlushTimed, FlushNone} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown flush policy %q, expected 'after', 'timed' or 'none'", s)
}

type Config struct {
	BlockSize  int
	Alignment  int
	Path       string
	Mode       IOMode
	Flush      FlushPolicy
	SpaceCheck bool
	Seed       int64

	// Interrupted reports the process-wide interrupt request. It is polled
	// once per chunk alongside the caller's context.
	Interrupted func() bool
}

func DefaultConfig() Config {
	return Config{
		BlockSize:   DefaultBlockSize,
		Alignment:   DefaultAlignment,
		Path:        DefaultFileName,
		Mode:        IOModeDirect,
		Flush:       FlushAfter,
		SpaceCheck:  true,
		Seed:        0x5eed_b10c,
		Interrupted: interrupt.Requested,
	}
}

func (c *Config) validate() error {
	invalid := func(format string, args ...any) error {
		return &Error{Kind: KindInvalidArgument, Op: "config", Err: fmt.Errorf(format, args...)}
	}
	if c.Alignment <= 0 || c.Alignment&(c.Alignment-1) != 0 {
		return invalid("alignment %d is not a power of two", c.Alignment)
	}
	if MiB%c.Alignment != 0 {
		return invalid("alignment %d does not divide 1 MiB", c.Alignment)
	}
	if c.BlockSize <= 0 || c.BlockSize%c.Alignment != 0 {
		return invalid("block size %d is not a positive multiple of alignment %d", c.BlockSize, c.Alignment)
	}
	if len(c.Path) == 0 {
		return invalid("benchmark file path is empty")
	}
	if info, err := os.Stat(c.Path); err == nil && info.IsDir() {
		return invalid("benchmark file path %q is a directory", c.Path)
	}
	if c.Mode != IOModeDirect && c.Mode != IOModeBuffered {
		return invalid("unknown io mode %v", c.Mode)
	}
	if c.Flush > FlushNone {
		return invalid("unknown flush policy %v", c.Flush)
	}
	if c.Interrupted == nil {
		c.Interrupted = func() bool { return false }
	}
	return nil
}

// Option configures a Benchmark.
type Option func(*Config) error

func WithBlockSize(n int) Option {
	return func(c *Config) error {
		c.BlockSize = n
		return nil
	}
}

func WithAlignment(n int) Option {
	return func(c *Config) error {
		c.Alignment = n
		return nil
	}
}

// WithPath sets the benchmark file path.
func WithPath(path string) Option {
	return func(c *Config) error {
		c.Path = path
		return nil
	}
}

// WithDir places the benchmark file, under its default name, in dir.
func WithDir(dir string) Option {
	return func(c *Config) error {
		c.Path = filepath.Join(dir, DefaultFileName)
		return nil
	}
}

func WithIOMode(m IOMode) Option {
	return func(c *Config) error {
		c.Mode = m
		return nil
	}
}

func WithFlushPolicy(p FlushPolicy) Option {
	return func(c *Config) error {
		c.Flush = p
		return nil
	}
}

func WithSpaceCheck(enabled bool) Option {
	return func(c *Config) error {
		c.SpaceCheck = enabled
		return nil
	}
}

func WithSeed(seed int64) Option {
	return func(c *Config) error {
		c.Seed = seed
		return nil
	}
}

// WithInterrupts replaces the process-wide interrupt check. Passing nil
// disables it.
func WithInterrupts(requested func() bool) Option {
	return func(c *Config) error {
		c.Interrupted = requested
		return nil
	}
}
