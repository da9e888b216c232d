// Package net establishes the connections that carry telnet sessions.
// It hides transport selection, per-attempt timeouts and retry backoff
// behind a single Dial function.
package net

import (
	"context"
	"fmt"
	"net"

	"dominicbreuker/telcat/pkg/config"
	"dominicbreuker/telcat/pkg/format"
)

// Dial establishes a connection to the configured remote endpoint over the
// configured transport (tcp, ws, wss or udp). Each attempt is bounded by
// cfg.Timeout, and failed attempts are retried up to cfg.Retries times with
// jittered backoff in between.
//
// The context can cancel dialing at any point, including between attempts.
func Dial(ctx context.Context, cfg *config.Shared) (net.Conn, error) {
	deps := &dialDependencies{
		newTCPDialer: realNewTCPDialer,
		newWSDialer:  realNewWSDialer,
		newUDPDialer: realNewUDPDialer,
	}
	return dial(ctx, cfg, deps)
}

// dial is the internal implementation that accepts injected dependencies for testing.
func dial(ctx context.Context, cfg *config.Shared, deps *dialDependencies) (net.Conn, error) {
	cfg.GetLogger().InfoMsg("Connecting to %s\n", format.Target(cfg.Protocol.String(), cfg.Host, cfg.Port))

	dialer, err := createDialer(ctx, cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("creating dialer: %w", err)
	}

	conn, err := establishConnection(ctx, dialer, cfg)
	if err != nil {
		return nil, fmt.Errorf("establishing connection: %w", err)
	}

	return conn, nil
}
