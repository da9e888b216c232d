package plain

import (
	"context"
	"testing"
	"time"

	"dominicbreuker/telcat/mocks/telnetd"
	"dominicbreuker/telcat/pkg/config"
	"dominicbreuker/telcat/pkg/entrypoint"
	"dominicbreuker/telcat/test/helpers"
)

// TestSessionOverTCP runs a complete session against a scripted telnet
// endpoint on a loopback socket, the way
//
//	telcat connect tcp://127.0.0.1:PORT
//
// runs it: dial, option negotiation, banner, a command round trip, close.
func TestSessionOverTCP(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, addr, err := telnetd.Listen()
	if err != nil {
		t.Fatalf("telnetd.Listen() error = %v", err)
	}
	defer srv.Close()

	go func() {
		_ = srv.Run(
			// IAC DO SUPPRESS-GO-AHEAD in front of the banner
			telnetd.Step{Send: append([]byte{0xFF, 0xFD, 0x03}, "Welcome to r1\r\n"...)},
			telnetd.Step{Expect: "show clock\n", Send: []byte("12:00:00.000 UTC\r\nr1> ")},
		)
	}()

	console := helpers.NewConsole()
	defer console.Close()

	cfg, err := helpers.SharedConfig(config.ProtoTCP, addr, console)
	if err != nil {
		t.Fatalf("helpers.SharedConfig() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- entrypoint.Connect(ctx, cfg, &config.Session{}) }()

	// The banner reaches stdout without the negotiation bytes
	if err := console.Saw("Welcome to r1", 2000); err != nil {
		t.Fatalf("banner did not reach stdout: %v", err)
	}

	// The option request was answered on the wire: IAC WILL SUPPRESS-GO-AHEAD
	if !srv.WaitFor([]byte{0xFF, 0xFB, 0x03}, 2*time.Second) {
		t.Error("no WILL SUPPRESS-GO-AHEAD reply on the wire")
	}

	// A command round trip
	if err := console.Type("show clock\n"); err != nil {
		t.Fatalf("console.Type() error = %v", err)
	}
	if err := console.Saw("12:00:00.000 UTC", 2000); err != nil {
		t.Fatalf("command output did not reach stdout: %v", err)
	}

	// Server closes, the session winds down cleanly
	srv.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Connect() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Connect() did not return after the server closed")
	}
}
