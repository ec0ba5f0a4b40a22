package main

import (
	"fmt"
	"os"
)

func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}

func logln(args ...any) {
	_, _ = fmt.Fprintln(os.Stderr, args...)
}

func warnf(format string, args ...any) {
	logf("\r%s ", paint("warning:", colorYellow))
	logf(format, args...)
}
