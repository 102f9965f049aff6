// Package execpipe implements the single-command and multi-stage pipeline
// executors (spec §4.5-§4.6): it parses nothing itself (that's
// internal/shell's job) but turns a parsed shell.Stage chain into running
// OS processes with correct fd wiring, and captures their combined
// stdout+stderr into a single buffer.
//
// Go has no raw fork(2) that lets a child run arbitrary code before exec —
// os/exec always opens redirection targets in the parent and hands the
// *os.File to Cmd.Stdin/Stdout/Stderr, which the runtime then dup2s in the
// child. This package therefore opens each stage's redirection targets up
// front (openInput/openOutput/openError below) rather than inside a forked
// child, and reproduces the original's "print File not found. instead of
// running anything" behavior by substituting a literal message for a
// process when the input file can't be opened, before that stage is ever
// started.
package execpipe

import (
	"bytes"
	"io"
	"os"
)

// openInput opens a stage's input redirection target read-only. The
// caller is responsible for rendering the "File not found." message on
// failure — that wording only applies to *input* redirection, per
// spec §4.6.
func openInput(path string) (*os.File, error) {
	return os.Open(path)
}

// openOutput opens a stage's output redirection target, truncating or
// appending per the stage's AppendOut flag.
func openOutput(path string, appendMode bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(path, flags, 0o644)
}

// openError opens a stage's error redirection target, always truncating.
func openError(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

// readCapture drains r to EOF into a buffer pre-grown to initialSize, the
// Go analog of spec §4.5/§4.6's "dynamically growing buffer (initial
// capacity 4 KiB, doubled on demand)" — bytes.Buffer grows geometrically
// past the pre-grown capacity the same way.
func readCapture(r io.Reader, initialSize int) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, initialSize))
	buf.ReadFrom(r)
	return buf.Bytes()
}
