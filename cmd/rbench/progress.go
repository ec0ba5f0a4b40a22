package main

import (
	"fmt"
	"strings"

	"github.com/egor9814/rawbench"
)

// progressPrinter redraws one status line per run on stderr and wipes it
// once the run is complete.
func progressPrinter() rawbench.ProgressFunc {
	var width int
	return func(done, total uint64, label string) {
		line := fmt.Sprintf("%s %s/%s %s",
			paint(label, colorCyan), formatBytes(done), formatBytes(total), percent(done, total))
		width = max(width, len(line))
		if done == total {
			logf("\r%s\r", strings.Repeat(" ", width))
			return
		}
		logf("\r%-*s", width, line)
	}
}

func percent(done, total uint64) string {
	if total == 0 {
		return "(0.0%)"
	}
	return fmt.Sprintf("(%.1f%%)", float64(done)/float64(total)*100)
}
