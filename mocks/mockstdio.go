// Package mocks provides mock implementations for testing.
package mocks

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// MockStdio stands in for the process's console in tests. The stdin side is
// a pipe the test writes into, the stdout side is a pipe whose output is
// collected into a buffer the test can inspect and wait on.
type MockStdio struct {
	stdinReader  *io.PipeReader
	stdinWriter  *io.PipeWriter
	stdoutReader *io.PipeReader
	stdoutWriter *io.PipeWriter

	mu        sync.Mutex
	outputBuf bytes.Buffer
}

// NewMockStdio creates a mock console and starts collecting its output.
func NewMockStdio() *MockStdio {
	stdinR, stdinW := io.Pipe()
	stdoutR, stdoutW := io.Pipe()

	m := &MockStdio{
		stdinReader:  stdinR,
		stdinWriter:  stdinW,
		stdoutReader: stdoutR,
		stdoutWriter: stdoutW,
	}

	go m.collectOutput()

	return m
}

// collectOutput drains the stdout pipe into the inspection buffer until the
// pipe closes.
func (m *MockStdio) collectOutput() {
	buf := make([]byte, 4096)
	for {
		n, err := m.stdoutReader.Read(buf)
		if n > 0 {
			m.mu.Lock()
			m.outputBuf.Write(buf[:n])
			m.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// WriteToStdin feeds data into the mock stdin, as if a user typed it.
func (m *MockStdio) WriteToStdin(data []byte) (int, error) {
	return m.stdinWriter.Write(data)
}

// ReadFromStdout returns everything the application has written to stdout
// so far.
func (m *MockStdio) ReadFromStdout() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outputBuf.String()
}

// GetStdin returns the reader handed to the application as its stdin.
func (m *MockStdio) GetStdin() io.Reader {
	return m.stdinReader
}

// GetStdout returns the writer handed to the application as its stdout.
func (m *MockStdio) GetStdout() io.Writer {
	return m.stdoutWriter
}

// WaitForOutput polls until expected appears in the collected stdout, or the
// timeout in milliseconds expires.
func (m *MockStdio) WaitForOutput(expected string, timeoutMs int) error {
	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)

	for {
		if strings.Contains(m.ReadFromStdout(), expected) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for output %q, got: %q", expected, m.ReadFromStdout())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// CloseStdin closes only the stdin pipe, signalling EOF to the reader
// while stdout keeps collecting output.
func (m *MockStdio) CloseStdin() error {
	return m.stdinWriter.Close()
}

// Close closes both pipes. The application sees EOF on stdin and a closed
// pipe on stdout.
func (m *MockStdio) Close() error {
	m.stdinWriter.Close()
	m.stdoutWriter.Close()
	return nil
}
