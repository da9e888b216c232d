package log

import (
	"fmt"
	"net"
	"os"
	"time"
)

// transcriptConn wraps a net.Conn and appends every byte that crosses the
// session, in either direction, to a transcript file. Protocol negotiation
// bytes are captured too: the wrapper sits below the telnet decoder.
type transcriptConn struct {
	conn       net.Conn
	transcript *os.File
}

func (tc *transcriptConn) Read(b []byte) (int, error) {
	n, err := tc.conn.Read(b)
	if n > 0 {
		if _, werr := tc.transcript.Write(b[:n]); werr != nil {
			return n, fmt.Errorf("transcript write: %w", werr)
		}
	}
	return n, err
}

func (tc *transcriptConn) Write(b []byte) (int, error) {
	n, err := tc.conn.Write(b)
	if n > 0 {
		if _, werr := tc.transcript.Write(b[:n]); werr != nil {
			return n, fmt.Errorf("transcript write: %w", werr)
		}
	}
	return n, err
}

// Close closes the underlying connection first, then the transcript file.
// A transcript close failure is swallowed so teardown stays quiet.
func (tc *transcriptConn) Close() error {
	err := tc.conn.Close()
	_ = tc.transcript.Close()
	return err
}

func (tc *transcriptConn) LocalAddr() net.Addr {
	return tc.conn.LocalAddr()
}

func (tc *transcriptConn) RemoteAddr() net.Addr {
	return tc.conn.RemoteAddr()
}

func (tc *transcriptConn) SetDeadline(t time.Time) error {
	return tc.conn.SetDeadline(t)
}

func (tc *transcriptConn) SetReadDeadline(t time.Time) error {
	return tc.conn.SetReadDeadline(t)
}

func (tc *transcriptConn) SetWriteDeadline(t time.Time) error {
	return tc.conn.SetWriteDeadline(t)
}

// NewTranscriptConn wraps a network connection so that all session traffic is
// also appended to a transcript file at the given path. The file is created
// if missing.
func NewTranscriptConn(conn net.Conn, path string) (net.Conn, error) {
	transcript, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile(%s): %w", path, err)
	}

	return &transcriptConn{conn: conn, transcript: transcript}, nil
}
