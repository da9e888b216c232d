// Package telnet implements a client-side engine for the Telnet wire
// protocol (RFC 854). A Client maintains a single text session over any
// net.Conn, answers embedded IAC option negotiation transparently, and
// exposes a plain read/write surface plus a convenience login handshake.
//
// Option policy: the client accepts suppress-go-ahead and refuses every
// other option. It is not a terminal emulator and not a server.
package telnet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"dominicbreuker/telcat/pkg/config"
	"dominicbreuker/telcat/pkg/log"
	tnet "dominicbreuker/telcat/pkg/net"
	"dominicbreuker/telcat/pkg/semaphore"
	"dominicbreuker/telcat/pkg/transport/tcp"
)

// ErrClosed reports an operation on a session whose connection is gone.
var ErrClosed = errors.New("telnet: session closed")

const (
	defaultReadTimeout  = 100 * time.Millisecond
	defaultPollInterval = 1 * time.Millisecond

	// readSlice is the window each ReadUntil poll hands to the read loop.
	readSlice = 5 * time.Millisecond

	inboundBufferSize = 4096
)

// closeGrace is how long Close waits before returning, so operations still
// polling the cancellation signal observe it before resources vanish.
// Tests shorten it.
var closeGrace = 100 * time.Millisecond

// Options tunes a Client. The zero value gives the defaults.
type Options struct {
	// ReadTimeout is the window Read waits for a first byte when called
	// with a zero timeout. Defaults to 100ms.
	ReadTimeout time.Duration

	// PollInterval is the pause between ReadUntil polls. Defaults to 1ms.
	PollInterval time.Duration

	// Logger receives verbose diagnostics (negotiation traffic, quiescence,
	// teardown). Nil is quiet.
	Logger *log.Logger
}

// Client is a telnet session over a single connection. All methods are safe
// for concurrent use: writes are serialized by a send lock, reads by a
// receive lock, and every wait unwinds when the session is cancelled.
type Client struct {
	conn net.Conn

	ctx    context.Context
	cancel context.CancelFunc

	// in carries raw inbound bytes from the pump to the parser. The pump
	// closes it when the stream ends, never before pushing the last byte.
	in    chan byte
	alive atomic.Bool

	sendLock *semaphore.Semaphore
	recvLock *semaphore.Semaphore

	readTimeout  time.Duration
	pollInterval time.Duration

	logger *log.Logger

	closeOnce sync.Once
}

// NewClient wraps an established connection in a telnet session and starts
// its receive pump. Cancelling ctx ends the session the same way Close does.
func NewClient(ctx context.Context, conn net.Conn, opts Options) *Client {
	cCtx, cancel := context.WithCancel(ctx)

	c := &Client{
		conn:         conn,
		ctx:          cCtx,
		cancel:       cancel,
		in:           make(chan byte, inboundBufferSize),
		sendLock:     semaphore.New(1),
		recvLock:     semaphore.New(1),
		readTimeout:  opts.ReadTimeout,
		pollInterval: opts.PollInterval,
		logger:       opts.Logger,
	}

	if c.readTimeout <= 0 {
		c.readTimeout = defaultReadTimeout
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}

	c.alive.Store(true)

	// Cancellation is permanent for the connection's lifetime: once the
	// session context ends, the conn goes with it. This also unblocks the
	// pump when the caller cancels ctx without calling Close.
	go func() {
		<-cCtx.Done()
		_ = conn.Close()
	}()

	go c.readPump()

	return c
}

// Dial connects to a telnet endpoint over TCP and returns the session.
func Dial(ctx context.Context, addr string, opts Options) (*Client, error) {
	d, err := tcp.NewDialer(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("tcp.NewDialer(%s): %w", addr, err)
	}

	conn, err := d.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	return NewClient(ctx, conn, opts), nil
}

// DialConfig connects over the transport selected by cfg (tcp, ws, wss or
// udp), retrying per cfg.Retries, and returns the session.
func DialConfig(ctx context.Context, cfg *config.Shared, opts Options) (*Client, error) {
	conn, err := tnet.Dial(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", cfg.Host, err)
	}

	return NewClient(ctx, conn, opts), nil
}

// IsConnected reports whether the underlying stream is still delivering.
// It turns false once the stream ends or the session is closed.
func (c *Client) IsConnected() bool {
	return c.alive.Load()
}

// Close tears the session down: it cancels the session context, closes the
// connection, and waits a short grace delay so in-flight operations observe
// the shutdown. Close is idempotent and never fails; teardown errors are
// swallowed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.logger.VerboseMsg("Closing session")
		c.cancel()
		_ = c.conn.Close()
		time.Sleep(closeGrace)
	})

	return nil
}

// readPump is the only reader of the socket. It moves raw bytes into the
// inbound channel until the stream ends, then flips the liveness flag and
// closes the channel so pending receives observe the end of the stream.
func (c *Client) readPump() {
	defer func() {
		c.alive.Store(false)
		close(c.in)
	}()

	buf := make([]byte, 512)
	for {
		n, err := c.conn.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case c.in <- buf[i]:
			case <-c.ctx.Done():
				return
			}
		}
		if err != nil {
			if err != io.EOF && c.ctx.Err() == nil {
				c.logger.VerboseMsg("Session stream ended: %v", err)
			}
			return
		}
	}
}
