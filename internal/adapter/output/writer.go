// Package output persists the rendered report to its destination sink.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Stdout is the destination value selecting standard output.
const Stdout = "-"

// Writer writes the report artifact to a file, or streams it to standard
// output when the destination is "-".
type Writer struct {
	stdout     io.Writer
	isTerminal func() bool
	warnf      func(format string, args ...any)
}

// NewWriter constructs a report writer. warnf may be nil.
func NewWriter(warnf func(format string, args ...any)) *Writer {
	return &Writer{
		stdout:     os.Stdout,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
		warnf:      warnf,
	}
}

// Write persists the report. The artifact is the run's only side effect.
func (w *Writer) Write(path, content string) error {
	if path == Stdout {
		if w.isTerminal() && w.warnf != nil {
			w.warnf("report is being written to an interactive terminal; use -o <file> or redirect for agent consumption")
		}
		if _, err := io.WriteString(w.stdout, content); err != nil {
			return fmt.Errorf("write report to stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
