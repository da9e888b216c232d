package config

import (
	"fmt"
	"time"

	"dominicbreuker/telcat/pkg/log"
)

// Protocol identifies the transport carrying the telnet session.
type Protocol int

const (
	// ProtoTCP is a plain TCP connection, the classic telnet transport.
	ProtoTCP Protocol = iota + 1
	// ProtoWS tunnels the session through a WebSocket connection.
	ProtoWS
	// ProtoWSS tunnels the session through a WebSocket connection over TLS.
	ProtoWSS
	// ProtoUDP carries the session over a reliable stream on top of UDP.
	ProtoUDP
)

func (p Protocol) String() string {
	switch p {
	case ProtoTCP:
		return "tcp"
	case ProtoWS:
		return "ws"
	case ProtoWSS:
		return "wss"
	case ProtoUDP:
		return "udp"
	default:
		return ""
	}
}

// Shared contains configuration common to all commands.
type Shared struct {
	Protocol Protocol
	Host     string
	Port     int
	Timeout  time.Duration
	Retries  int
	Verbose  bool

	Logger *log.Logger
	Deps   *Dependencies
}

func (c *Shared) Validate() []error {
	var errors []error

	if c.Protocol.String() == "" {
		errors = append(errors, fmt.Errorf("unsupported protocol, use one of tcp|ws|wss|udp"))
	}

	if c.Host == "" {
		errors = append(errors, fmt.Errorf("host must not be empty"))
	}

	if err := validatePort(c.Port); err != nil {
		errors = append(errors, fmt.Errorf("port: %s", err))
	}

	if c.Timeout < 0 {
		errors = append(errors, fmt.Errorf("'--timeout' must not be negative"))
	}

	if c.Retries < 0 {
		errors = append(errors, fmt.Errorf("'--retries' must not be negative"))
	}

	return errors
}

// GetLogger returns the configured logger. A nil receiver or unset logger
// yields nil, which the log package treats as a quiet logger.
func (c *Shared) GetLogger() *log.Logger {
	if c == nil {
		return nil
	}

	return c.Logger
}
