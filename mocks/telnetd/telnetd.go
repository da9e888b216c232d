// Package telnetd provides a scriptable telnet endpoint for tests. A Server
// speaks over a single connection, either an in-memory pipe or a loopback
// TCP listener, plays a script of expect/send steps, and records every
// inbound byte so tests can assert on negotiation replies and login lines.
package telnetd

import (
	"bytes"
	"fmt"
	"net"
	"sync"
	"time"
)

// Step is one scripted exchange. If Expect is non-empty, the server first
// waits until the recorded inbound bytes contain it. It then pauses for
// Pause and sends Send, either of which may be zero.
type Step struct {
	Expect string
	Pause  time.Duration
	Send   []byte
}

// Server is a scriptable telnet endpoint.
type Server struct {
	ln net.Listener

	mu       sync.Mutex
	conn     net.Conn
	received []byte

	recording sync.Once
}

// Pipe returns a server bound to an in-memory connection and the client
// half of that connection. Recording starts immediately.
func Pipe() (*Server, net.Conn) {
	client, server := net.Pipe()

	return Attach(server), client
}

// Attach returns a server speaking over an existing connection, for
// transports the server cannot listen on itself, such as a WebSocket or
// KCP session accepted elsewhere. Recording starts immediately.
func Attach(conn net.Conn) *Server {
	s := &Server{conn: conn}
	s.startRecording(conn)

	return s
}

// Listen returns a server on a loopback TCP listener and the address to
// dial. The first connection is accepted when Run starts.
func Listen() (*Server, string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, "", fmt.Errorf("net.Listen(tcp, 127.0.0.1:0): %w", err)
	}

	return &Server{ln: ln}, ln.Addr().String(), nil
}

// Run plays the script against the connection, accepting it first in
// listener mode. It returns after the last step without closing the
// connection, so the session stays open until Close. Run it in a goroutine.
func (s *Server) Run(steps ...Step) error {
	conn, err := s.ready()
	if err != nil {
		return err
	}

	for _, step := range steps {
		if step.Expect != "" {
			if !s.WaitFor([]byte(step.Expect), 5*time.Second) {
				return fmt.Errorf("expect %q: timed out", step.Expect)
			}
		}
		if step.Pause > 0 {
			time.Sleep(step.Pause)
		}
		if len(step.Send) > 0 {
			if _, err := conn.Write(step.Send); err != nil {
				return fmt.Errorf("send %q: %w", step.Send, err)
			}
		}
	}

	return nil
}

// Received returns a snapshot of all bytes the server has read so far.
func (s *Server) Received() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]byte, len(s.received))
	copy(out, s.received)
	return out
}

// WaitFor polls until the recorded inbound bytes contain pattern, or the
// timeout passes. It reports whether the pattern arrived.
func (s *Server) WaitFor(pattern []byte, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if bytes.Contains(s.Received(), pattern) {
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

// Close shuts the connection and listener down. Safe to call at any point
// and more than once.
func (s *Server) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	if s.ln != nil {
		_ = s.ln.Close()
	}
	return nil
}

// ready hands back the session connection, accepting the first one in
// listener mode and starting the recorder exactly once.
func (s *Server) ready() (net.Conn, error) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn != nil {
		return conn, nil
	}

	conn, err := s.ln.Accept()
	if err != nil {
		return nil, fmt.Errorf("accept: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	s.startRecording(conn)
	return conn, nil
}

func (s *Server) startRecording(conn net.Conn) {
	s.recording.Do(func() {
		go func() {
			buf := make([]byte, 4096)
			for {
				n, err := conn.Read(buf)
				if n > 0 {
					s.mu.Lock()
					s.received = append(s.received, buf[:n]...)
					s.mu.Unlock()
				}
				if err != nil {
					return
				}
			}
		}()
	})
}

// LoginScript plays the classic prompt exchange: a username prompt, a
// password prompt once the username line arrives, and a shell prompt once
// the password line arrives.
func LoginScript(username, password string) []Step {
	return []Step{
		{Send: []byte("login: ")},
		{Expect: username + "\n", Send: []byte("Password: ")},
		{Expect: password + "\n", Send: []byte("welcome> ")},
	}
}
