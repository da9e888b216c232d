package net

import (
	"context"
	"fmt"
	"net"
	"time"

	"dominicbreuker/telcat/pkg/config"
	"dominicbreuker/telcat/pkg/format"
	"dominicbreuker/telcat/pkg/transport"
	"dominicbreuker/telcat/pkg/transport/tcp"
	"dominicbreuker/telcat/pkg/transport/udp"
	"dominicbreuker/telcat/pkg/transport/ws"

	"github.com/jpillora/backoff"
)

// dialDependencies holds injectable dialer factories for testing.
type dialDependencies struct {
	newTCPDialer func(string, *config.Dependencies) (transport.Dialer, error)
	newWSDialer  func(context.Context, string, config.Protocol) transport.Dialer
	newUDPDialer func(string, *config.Dependencies) (transport.Dialer, error)
}

// Real implementations for production use.
func realNewTCPDialer(addr string, deps *config.Dependencies) (transport.Dialer, error) {
	return tcp.NewDialer(addr, deps)
}

func realNewWSDialer(ctx context.Context, addr string, proto config.Protocol) transport.Dialer {
	return ws.NewDialer(ctx, addr, proto)
}

func realNewUDPDialer(addr string, deps *config.Dependencies) (transport.Dialer, error) {
	return udp.NewDialer(addr, deps)
}

// createDialer creates the transport dialer matching the configured protocol.
// The context handed to the WebSocket dialer outlives the dial attempt: it
// bounds the lifetime of the connections that dialer returns.
func createDialer(ctx context.Context, cfg *config.Shared, deps *dialDependencies) (transport.Dialer, error) {
	addr := format.Addr(cfg.Host, cfg.Port)

	switch cfg.Protocol {
	case config.ProtoWS, config.ProtoWSS:
		return deps.newWSDialer(ctx, addr, cfg.Protocol), nil

	case config.ProtoUDP:
		dialer, err := deps.newUDPDialer(addr, cfg.Deps)
		if err != nil {
			return nil, fmt.Errorf("create UDP dialer: %w", err)
		}
		return dialer, nil

	default:
		dialer, err := deps.newTCPDialer(addr, cfg.Deps)
		if err != nil {
			return nil, fmt.Errorf("create TCP dialer: %w", err)
		}
		return dialer, nil
	}
}

// establishConnection dials with per-attempt timeouts, retrying failures
// with jittered backoff. cfg.Retries is the number of attempts after the
// first, so zero retries means a single attempt.
func establishConnection(ctx context.Context, dialer transport.Dialer, cfg *config.Shared) (net.Conn, error) {
	b := &backoff.Backoff{
		Factor: 1.5,
		Jitter: true,
		Min:    250 * time.Millisecond,
		Max:    2 * time.Second,
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.Retries; attempt++ {
		if attempt > 0 {
			wait := b.Duration()
			cfg.GetLogger().VerboseMsg("Retrying in %s (attempt %d/%d)", wait, attempt+1, cfg.Retries+1)
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		conn, err := dialAttempt(ctx, dialer, cfg.Timeout)
		if err == nil {
			cfg.GetLogger().VerboseMsg("Connection established")
			return conn, nil
		}

		lastErr = err
		cfg.GetLogger().VerboseMsg("Connection attempt failed: %v", err)
	}

	return nil, lastErr
}

// dialAttempt runs a single dial bounded by timeout.
func dialAttempt(ctx context.Context, dialer transport.Dialer, timeout time.Duration) (net.Conn, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}

	// A deadline left over from the dial would kill the healthy connection later.
	if timeout > 0 {
		_ = conn.SetDeadline(time.Time{})
	}

	return conn, nil
}

// sleep pauses between attempts, returning early if the context ends.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
