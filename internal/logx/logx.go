// Package logx provides the discard-by-default package logger used across
// h2core, matching the pattern wagon's wasm and validate packages each
// declared independently (wasm/log.go, validate/log.go).
package logx

import (
	"log"
	"os"
)

// Verbose controls whether loggers returned by New write to stderr. It is
// false by default, so tracing is silent until a host opts in.
var Verbose = false

// New returns a logger tagged with name. While Verbose is false, everything
// written to it is discarded. Verbose is checked on every write, so it
// also takes effect for loggers created before it was set.
func New(name string) *log.Logger {
	return log.New(verboseWriter{}, name+": ", log.Lshortfile)
}

// verboseWriter writes to os.Stderr while Verbose is true and discards
// otherwise.
type verboseWriter struct{}

func (verboseWriter) Write(p []byte) (int, error) {
	if !Verbose {
		return len(p), nil
	}
	return os.Stderr.Write(p)
}
