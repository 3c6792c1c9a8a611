package pmesh

import (
	"io"
	"log"
)

var logger = log.New(io.Discard, "pmesh: ", 0)

// SetLogOutput directs debug output of mesh operations to w.
// Output is discarded by default.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

func debugf(format string, v ...interface{}) {
	logger.Printf(format, v...)
}
