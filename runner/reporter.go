package runner

import (
	"fmt"
	"io"
)

// Reporter receives diagnostics that are not part of the program's output.
type Reporter interface {
	Printf(format string, args ...interface{})
}

type SilentReporter struct{}

func (r *SilentReporter) Printf(format string, args ...interface{}) {}

// ColorReporter writes to a terminal stream, typically stderr.
type ColorReporter struct {
	Writer io.Writer
}

func (r *ColorReporter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.Writer, format, args...)
}
