// Package transport provides the client-side network transports for telcat.
// Each transport (tcp, ws, udp) exposes a dialer that establishes an outbound
// connection to a fixed remote endpoint and hands back a plain net.Conn, so
// the telnet engine never needs to know what carries its bytes.
//
// Transport-specific notes:
//   - TCP: the classic telnet transport, with keep-alive enabled
//   - WebSocket: ws (plain) and wss (TLS) tunnels carrying binary messages
//   - UDP: a reliable stream on top of UDP using the KCP protocol
package transport

import (
	"context"
	"net"
)

// Dialer establishes an outbound connection to a preconfigured remote
// endpoint. The context bounds the dial attempt, not the connection.
type Dialer interface {
	Dial(ctx context.Context) (net.Conn, error)
}
