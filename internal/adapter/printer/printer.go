// Package printer provides statement sinks.
package printer

import (
	"fmt"
	"io"
	"os"
)

// LineWriter writes each statement line to an io.Writer followed by a
// newline.
type LineWriter struct {
	w io.Writer
}

// NewLineWriter returns a LineWriter on w. A nil w writes to stdout.
func NewLineWriter(w io.Writer) *LineWriter {
	if w == nil {
		w = os.Stdout
	}
	return &LineWriter{w: w}
}

// WriteLine writes line and a trailing newline.
func (p *LineWriter) WriteLine(line string) error {
	if _, err := fmt.Fprintln(p.w, line); err != nil {
		return fmt.Errorf("write statement line: %w", err)
	}
	return nil
}
