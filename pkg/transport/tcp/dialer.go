// Package tcp provides the TCP transport, the classic way to reach a
// telnet endpoint.
package tcp

import (
	"context"
	"fmt"
	"net"

	"dominicbreuker/telcat/pkg/config"
)

// Dialer implements the transport.Dialer interface for TCP connections.
type Dialer struct {
	tcpAddr *net.TCPAddr
	dialFn  config.TCPDialerFunc
}

// NewDialer creates a new TCP dialer for the specified address.
// The deps parameter is optional and can be nil to use default implementations.
func NewDialer(addr string, deps *config.Dependencies) (*Dialer, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %w", addr, err)
	}

	d := &Dialer{tcpAddr: tcpAddr}
	if deps != nil && deps.TCPDialer != nil {
		d.dialFn = deps.TCPDialer
	}

	return d, nil
}

// Dial establishes a TCP connection to the configured address with
// keep-alive enabled. The context bounds the connection attempt.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	if d.dialFn != nil {
		conn, err := d.dialFn("tcp", nil, d.tcpAddr)
		if err != nil {
			return nil, fmt.Errorf("dial tcp %s: %w", d.tcpAddr.String(), err)
		}
		return conn, nil
	}

	var nd net.Dialer
	conn, err := nd.DialContext(ctx, "tcp", d.tcpAddr.String())
	if err != nil {
		return nil, fmt.Errorf("dial tcp %s: %w", d.tcpAddr.String(), err)
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(true)
	}

	return conn, nil
}
