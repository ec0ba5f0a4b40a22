// Package interrupt holds the single process-wide "stop requested" flag.
//
// The flag is raised from the signal path and only read everywhere else.
// It is level-triggered: once raised it stays raised until the owning
// program calls Reset.
package interrupt

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

var ErrInterrupted = errors.New("operation interrupted by user")

var requested atomic.Bool

// Requested reports whether an interrupt has been delivered.
func Requested() bool {
	return requested.Load()
}

// Raise marks the process as interrupted. It is what the installed signal
// handler does and nothing more.
func Raise() {
	requested.Store(true)
}

// Reset clears the flag between independent top-level invocations.
func Reset() {
	requested.Store(false)
}

// Install routes the termination signals into the flag. The returned
// function stops delivery; it does not clear the flag and may be called
// more than once.
func Install() (stop func()) {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, signals...)
	go func() {
		for {
			select {
			case <-ch:
				Raise()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
