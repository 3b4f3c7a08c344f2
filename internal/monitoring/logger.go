// Package monitoring holds the process-wide diagnostic logger.
package monitoring

import (
	"io"
	"log"
)

// Logf is the package-level diagnostic logger. It is silent by default so the
// headless output on stdout stays clean; Enable or SetLogger turn it on.
var Logf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Enable routes Logf to a standard logger writing to w when verbose is set,
// and mutes it otherwise.
func Enable(w io.Writer, verbose bool) {
	if !verbose {
		SetLogger(nil)
		return
	}
	SetLogger(log.New(w, "flightplot: ", log.LstdFlags).Printf)
}
