// Package helpers provides common utilities for integration and end-to-end tests.
package helpers

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"dominicbreuker/telcat/mocks"
	"dominicbreuker/telcat/pkg/config"
	"dominicbreuker/telcat/pkg/log"
)

// Console bundles a mock stdio pair with the Dependencies wiring it into a
// session, standing in for the user's terminal.
type Console struct {
	Stdio *mocks.MockStdio
	Deps  *config.Dependencies
}

// NewConsole creates a console whose stdin and stdout tests can drive.
func NewConsole() *Console {
	stdio := mocks.NewMockStdio()

	return &Console{
		Stdio: stdio,
		Deps: &config.Dependencies{
			Stdin:  func() io.Reader { return stdio.GetStdin() },
			Stdout: func() io.Writer { return stdio.GetStdout() },
		},
	}
}

// Type feeds a line of user input into the console.
func (c *Console) Type(line string) error {
	_, err := c.Stdio.WriteToStdin([]byte(line))
	return err
}

// Saw waits until the console's stdout contains expected.
func (c *Console) Saw(expected string, timeoutMs int) error {
	return c.Stdio.WaitForOutput(expected, timeoutMs)
}

// Close releases the console's pipes.
func (c *Console) Close() error {
	return c.Stdio.Close()
}

// SharedConfig returns a Shared config pointed at addr ("host:port"), with
// the console's dependencies injected and a timeout suitable for tests.
func SharedConfig(proto config.Protocol, addr string, console *Console) (*config.Shared, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("net.SplitHostPort(%s): %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("strconv.Atoi(%s): %w", portStr, err)
	}

	return &config.Shared{
		Protocol: proto,
		Host:     host,
		Port:     port,
		Timeout:  5 * time.Second,
		Logger:   log.NewLogger(false),
		Deps:     console.Deps,
	}, nil
}
