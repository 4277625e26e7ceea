// Package logging builds the named hclog loggers used across armshift.
package logging

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns a named logger writing to stderr, keeping stdout clean for
// report output. Verbose switches Debug on.
func New(name string, verbose bool) hclog.Logger {
	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: os.Stderr,
		Level:  level,
	})
}
