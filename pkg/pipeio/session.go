package pipeio

import (
	"io"

	"dominicbreuker/telcat/pkg/telnet"
)

// Session adapts a telnet client to the ReadWriteCloser shape Pipe expects.
// Reads go through the engine, so option negotiation never reaches the
// console, and writes pick up the engine's escaping.
type Session struct {
	client *telnet.Client

	// leftover holds decoded text that did not fit the last Read's buffer.
	leftover []byte
}

// NewSession wraps a telnet client for piping.
func NewSession(client *telnet.Client) *Session {
	return &Session{client: client}
}

// Read returns the next chunk of session text. It polls the engine until
// text arrives and reports io.EOF once the session is dead.
func (s *Session) Read(p []byte) (n int, err error) {
	if len(s.leftover) > 0 {
		n = copy(p, s.leftover)
		s.leftover = s.leftover[n:]
		return n, nil
	}

	for {
		text, err := s.client.Read(0)
		if err != nil {
			return 0, io.EOF
		}
		if text == "" {
			if !s.client.IsConnected() {
				return 0, io.EOF
			}
			continue
		}

		n = copy(p, text)
		s.leftover = []byte(text[n:])
		return n, nil
	}
}

// Write sends p over the session.
func (s *Session) Write(p []byte) (n int, err error) {
	if err := s.client.Write(string(p)); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close closes the underlying session.
func (s *Session) Close() error {
	return s.client.Close()
}
