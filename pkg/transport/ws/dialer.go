// Package ws provides the WebSocket transport, tunneling telnet sessions
// through ws or wss endpoints as binary messages.
package ws

import (
	"context"
	"fmt"
	"net"

	"dominicbreuker/telcat/pkg/config"

	"github.com/coder/websocket"
)

// Dialer implements the transport.Dialer interface for WebSocket connections.
type Dialer struct {
	// ctx bounds the lifetime of dialed connections, not the dial attempt.
	// Reads and writes on the returned net.Conn fail once it is cancelled.
	ctx context.Context
	url string
}

// NewDialer creates a new WebSocket dialer for the specified address.
// Connections returned by Dial live until ctx is cancelled.
func NewDialer(ctx context.Context, addr string, proto config.Protocol) *Dialer {
	return &Dialer{
		ctx: ctx,
		url: fmt.Sprintf("%s://%s", proto.String(), addr),
	}
}

// Dial establishes a WebSocket connection and adapts it to a net.Conn
// carrying binary messages. The context bounds the dial attempt only.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	opts := &websocket.DialOptions{
		Subprotocols: []string{"bin"},
	}

	c, _, err := websocket.Dial(ctx, d.url, opts)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial(%s): %w", d.url, err)
	}

	return websocket.NetConn(d.ctx, c, websocket.MessageBinary), nil
}
