package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/egor9814/rawbench"
)

// describeTarget tells which filesystem the benchmark file lands on.
func describeTarget(path string) string {
	dir := filepath.Dir(path)
	u, err := disk.Usage(dir)
	if err != nil {
		return fmt.Sprintf("%s (usage unknown: %v)", dir, err)
	}
	return fmt.Sprintf("%s on %s (%s, %s free of %s)",
		dir, u.Path, u.Fstype, formatBytes(u.Free), formatBytes(u.Total))
}

func formatSuite(res rawbench.DiskSuiteResult, mode rawbench.IOMode) string {
	var sb strings.Builder
	width := len("average")
	for _, it := range res.Runs {
		width = max(width, len(it.Label))
	}
	for _, it := range res.Runs {
		fmt.Fprintf(&sb, "  %-*s %s\n", width, it.Label, paint(fmt.Sprintf("%10.2f MB/s", it.MBps), colorGreen))
	}
	fmt.Fprintf(&sb, "  %-*s %s\n", width, "average",
		paint(fmt.Sprintf("%10.2f MB/s", res.AverageMBps), colorBold+colorGreen))
	if mode == rawbench.IOModeBuffered {
		sb.WriteString(paint("  buffered mode: page cache included in these numbers\n", colorYellow))
	}
	return sb.String()
}
