package login

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dominicbreuker/telcat/mocks/telnetd"
	"dominicbreuker/telcat/pkg/config"
	"dominicbreuker/telcat/pkg/entrypoint"
	"dominicbreuker/telcat/test/helpers"
)

// TestLoginAndTranscript automates the prompt exchange of
//
//	telcat connect --login admin --password secret --log session.log tcp://127.0.0.1:PORT
//
// and checks that the transcript captured both directions of the traffic.
func TestLoginAndTranscript(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, addr, err := telnetd.Listen()
	if err != nil {
		t.Fatalf("telnetd.Listen() error = %v", err)
	}
	defer srv.Close()

	steps := append(
		telnetd.LoginScript("admin", "secret"),
		telnetd.Step{Expect: "term len 0\n", Send: []byte("ok\r\nrouter> ")},
	)
	scriptErr := make(chan error, 1)
	go func() { scriptErr <- srv.Run(steps...) }()

	console := helpers.NewConsole()
	defer console.Close()

	cfg, err := helpers.SharedConfig(config.ProtoTCP, addr, console)
	if err != nil {
		t.Fatalf("helpers.SharedConfig() error = %v", err)
	}

	logFile := filepath.Join(t.TempDir(), "session.log")
	sCfg := &config.Session{
		Login:    "admin",
		Password: "secret",
		LogFile:  logFile,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- entrypoint.Connect(ctx, cfg, sCfg) }()

	// The login automation answered both prompts
	if !srv.WaitFor([]byte("admin\n"), 2*time.Second) {
		t.Fatal("username never arrived at the server")
	}
	if !srv.WaitFor([]byte("secret\n"), 2*time.Second) {
		t.Fatal("password never arrived at the server")
	}

	// The console works after login
	if err := console.Type("term len 0\n"); err != nil {
		t.Fatalf("console.Type() error = %v", err)
	}
	if err := console.Saw("ok", 2000); err != nil {
		t.Fatalf("command output did not reach stdout: %v", err)
	}

	srv.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Connect() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Connect() did not return after the server closed")
	}

	if err := <-scriptErr; err != nil {
		t.Errorf("script error = %v", err)
	}

	// The transcript holds traffic from both directions
	transcript, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("os.ReadFile(%s) error = %v", logFile, err)
	}
	for _, want := range [][]byte{
		[]byte("login: "),
		[]byte("admin\n"),
		[]byte("secret\n"),
		[]byte("ok"),
	} {
		if !bytes.Contains(transcript, want) {
			t.Errorf("transcript is missing %q", want)
		}
	}
}
