//go:build !unix

package interrupt

import "os"

var signals = []os.Signal{os.Interrupt}
