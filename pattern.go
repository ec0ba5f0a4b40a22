package rawbench

import (
	"github.com/chzyer/logex"
	"github.com/klauspost/compress/zstd"
)

const (
	patternSampleSize = 64 << 10

	// minStoredRatio is the smallest compressed/raw size ratio a fill
	// pattern may have. Anything lower lets compressing or deduplicating
	// filesystems write less than we count.
	minStoredRatio = 0.95
)

// Incompressible reports whether the leading sample of b resists zstd
// compression.
func Incompressible(b []byte) bool {
	sample := b[:min(len(b), patternSampleSize)]
	if len(sample) == 0 {
		return false
	}
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		logex.Warn("rawbench: pattern check skipped:", err)
		return true
	}
	defer enc.Close()
	out := enc.EncodeAll(sample, make([]byte, 0, len(sample)+512))
	return float64(len(out)) >= float64(len(sample))*minStoredRatio
}
