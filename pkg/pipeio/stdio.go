package pipeio

import (
	"io"

	"dominicbreuker/telcat/pkg/config"

	"github.com/muesli/cancelreader"
)

// Stdio provides a ReadWriteCloser interface for standard I/O streams.
// It uses cancelable reading from stdin when supported, allowing reads
// to be interrupted via Close.
type Stdio struct {
	stdin            io.Reader
	cancellableStdin cancelreader.CancelReader

	stdout io.Writer
}

// NewStdio creates a Stdio on the streams from deps, falling back to the
// process's own stdin and stdout. Reading is cancelable if the platform
// supports it for the stream at hand.
func NewStdio(deps *config.Dependencies) *Stdio {
	out := Stdio{
		stdin:  config.GetStdinFunc(deps)(),
		stdout: config.GetStdoutFunc(deps)(),
	}

	cancellableStdin, err := cancelreader.NewReader(out.stdin)
	if err != nil {
		return &out
	}

	out.cancellableStdin = cancellableStdin
	return &out
}

// Read reads from stdin, using the cancelable reader if available.
func (s *Stdio) Read(p []byte) (n int, err error) {
	if s.cancellableStdin != nil {
		return s.cancellableStdin.Read(p)
	}

	return s.stdin.Read(p)
}

// Write writes to stdout.
func (s *Stdio) Write(p []byte) (n int, err error) {
	return s.stdout.Write(p)
}

// Close cancels any pending reads from stdin if using a cancelable reader.
func (s *Stdio) Close() error {
	if s.cancellableStdin != nil {
		s.cancellableStdin.Cancel()
	}
	return nil
}
