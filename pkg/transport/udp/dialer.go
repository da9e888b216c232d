// Package udp provides the UDP transport. Sessions run over the KCP
// protocol, which layers a reliable ordered stream on top of UDP packets.
package udp

import (
	"context"
	"fmt"
	"net"

	"dominicbreuker/telcat/pkg/config"

	kcp "github.com/xtaci/kcp-go/v5"
)

// Dialer implements the transport.Dialer interface for UDP connections with KCP.
type Dialer struct {
	remoteAddr   *net.UDPAddr
	packetConnFn config.PacketListenerFunc
}

// NewDialer creates a new UDP dialer for the specified address.
// The deps parameter is optional and can be nil to use default implementations.
func NewDialer(addr string, deps *config.Dependencies) (*Dialer, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveUDPAddr(udp, %s): %w", addr, err)
	}

	return &Dialer{
		remoteAddr:   udpAddr,
		packetConnFn: config.GetPacketListenerFunc(deps),
	}, nil
}

// Dial establishes a KCP session over UDP to the configured address.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	// Local endpoint on an ephemeral port chosen by the OS
	conn, err := d.packetConnFn("udp", ":0")
	if err != nil {
		return nil, fmt.Errorf("net.ListenPacket(udp, :0): %w", err)
	}

	// No block cipher and no FEC shards: the session is plain telnet
	kcpConn, err := kcp.NewConn(d.remoteAddr.String(), nil, 0, 0, conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("kcp.NewConn(%s): %w", d.remoteAddr.String(), err)
	}

	// SetNoDelay(nodelay, interval, resend, nc): fast mode with 10ms
	// internal updates, fast resend after 2 crossed ACKs, congestion
	// control disabled. Interactive sessions want latency over throughput.
	kcpConn.SetNoDelay(1, 10, 2, 1)
	kcpConn.SetStreamMode(true)
	kcpConn.SetWindowSize(1024, 1024)

	return kcpConn, nil
}
