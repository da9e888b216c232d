// Package entrypoint wires configuration into running sessions. It is the
// layer the CLI hands control to after flag parsing.
package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dominicbreuker/telcat/pkg/config"
	"dominicbreuker/telcat/pkg/log"
	tnet "dominicbreuker/telcat/pkg/net"
	"dominicbreuker/telcat/pkg/telnet"
	"dominicbreuker/telcat/pkg/terminal"
)

// Connect dials the configured endpoint, runs the optional login handshake
// and attaches the local console to the session. It returns when the session
// ends, the console closes or the context is cancelled.
func Connect(parent context.Context, cfg *config.Shared, sCfg *config.Session) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	conn, err := tnet.Dial(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}

	if sCfg.LogFile != "" {
		tconn, err := log.NewTranscriptConn(conn, sCfg.LogFile)
		if err != nil {
			_ = conn.Close()
			return fmt.Errorf("enabling transcript at %s: %w", sCfg.LogFile, err)
		}
		conn = tconn
	}

	client := telnet.NewClient(ctx, conn, telnet.Options{Logger: cfg.GetLogger()})
	defer client.Close()

	if sCfg.WantsLogin() {
		if !client.Login(sCfg.Login, sCfg.Password, loginTimeout(cfg)) {
			return fmt.Errorf("login as %s failed", sCfg.Login)
		}
		cfg.GetLogger().InfoMsg("Logged in as %s\n", sCfg.Login)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- attachConsole(ctx, client, cfg, sCfg)
	}()

	select {
	case <-ctx.Done():
		cfg.GetLogger().VerboseMsg("Connect: context cancelled, closing session")
		client.Close()
		err := <-errCh
		// Closure due to cancellation is benign.
		if err == nil || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("session after cancel: %w", err)

	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
		return nil
	}
}

// attachConsole runs the console bridge, in raw mode if requested.
func attachConsole(ctx context.Context, client *telnet.Client, cfg *config.Shared, sCfg *config.Session) error {
	if sCfg.Raw {
		return terminal.PipeRaw(ctx, client, cfg.Deps, cfg.Verbose)
	}

	terminal.Pipe(ctx, client, cfg.Deps, cfg.Verbose)
	return nil
}

// loginTimeout bounds each prompt wait during login automation.
func loginTimeout(cfg *config.Shared) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return 10 * time.Second
}
