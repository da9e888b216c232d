package telnet

import (
	"context"
	"testing"
	"time"

	"dominicbreuker/telcat/mocks/telnetd"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRead_PlainTextPassesThrough(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv, conn := telnetd.Pipe()
	defer srv.Close()

	client := NewClient(context.Background(), conn, Options{})
	defer client.Close()

	input := "Welcome to the router.\r\nUser Access Verification\r\n"

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(telnetd.Step{Send: []byte(input)})
	}()

	text, err := client.Read(500 * time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, input, text)
	require.NoError(t, <-done)
}

func TestRead_DoubledIACDecodesToLiteralByte(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv, conn := telnetd.Pipe()
	defer srv.Close()

	client := NewClient(context.Background(), conn, Options{})
	defer client.Close()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(telnetd.Step{Send: []byte{IAC, IAC, 'A'}})
	}()

	text, err := client.Read(500 * time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, "\xffA", text)
	require.NoError(t, <-done)
}

func TestNegotiation_Replies(t *testing.T) {
	defer goleak.VerifyNone(t)

	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			name: "DO suppress-go-ahead earns WILL",
			in:   []byte{IAC, DO, OptSuppressGoAhead},
			want: []byte{IAC, WILL, OptSuppressGoAhead},
		},
		{
			name: "WILL suppress-go-ahead earns DO",
			in:   []byte{IAC, WILL, OptSuppressGoAhead},
			want: []byte{IAC, DO, OptSuppressGoAhead},
		},
		{
			name: "WONT suppress-go-ahead earns DO",
			in:   []byte{IAC, WONT, OptSuppressGoAhead},
			want: []byte{IAC, DO, OptSuppressGoAhead},
		},
		{
			name: "DONT suppress-go-ahead earns DO",
			in:   []byte{IAC, DONT, OptSuppressGoAhead},
			want: []byte{IAC, DO, OptSuppressGoAhead},
		},
		{
			name: "DO terminal-type refused with WONT",
			in:   []byte{IAC, DO, OptTerminalType},
			want: []byte{IAC, WONT, OptTerminalType},
		},
		{
			name: "WILL terminal-type refused with DONT",
			in:   []byte{IAC, WILL, OptTerminalType},
			want: []byte{IAC, DONT, OptTerminalType},
		},
		{
			name: "DO echo refused with WONT",
			in:   []byte{IAC, DO, 0x01},
			want: []byte{IAC, WONT, 0x01},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			srv, conn := telnetd.Pipe()
			defer srv.Close()

			client := NewClient(context.Background(), conn, Options{})
			defer client.Close()

			done := make(chan error, 1)
			go func() {
				done <- srv.Run(telnetd.Step{Send: tc.in})
			}()

			// Negotiation-only traffic appends nothing, so this read runs
			// out its initial deadline; keep it short.
			text, err := client.Read(200 * time.Millisecond)
			require.NoError(t, err)
			require.Empty(t, text, "negotiation must not leak into session text")

			require.True(t, srv.WaitFor(tc.want, time.Second), "reply not seen on the wire")
			require.Equal(t, tc.want, srv.Received(), "reply must be exactly one triple")
			require.NoError(t, <-done)
		})
	}
}

func TestNegotiation_SequenceSplitAcrossSegments(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv, conn := telnetd.Pipe()
	defer srv.Close()

	client := NewClient(context.Background(), conn, Options{})
	defer client.Close()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(
			telnetd.Step{Send: []byte{IAC}},
			telnetd.Step{Pause: 10 * time.Millisecond, Send: []byte{DO}},
			telnetd.Step{Pause: 10 * time.Millisecond, Send: []byte{OptSuppressGoAhead}},
			telnetd.Step{Send: []byte("ok")},
		)
	}()

	text, err := client.Read(2 * time.Second)
	require.NoError(t, err)
	require.Equal(t, "ok", text)

	require.True(t, srv.WaitFor([]byte{IAC, WILL, OptSuppressGoAhead}, time.Second))
	require.NoError(t, <-done)
}

func TestNegotiation_InterleavedWithText(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv, conn := telnetd.Pipe()
	defer srv.Close()

	client := NewClient(context.Background(), conn, Options{})
	defer client.Close()

	payload := append([]byte("user"), IAC, DO, OptSuppressGoAhead)
	payload = append(payload, []byte("name: ")...)

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(telnetd.Step{Send: payload})
	}()

	text, err := client.Read(500 * time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, "username: ", text)

	require.True(t, srv.WaitFor([]byte{IAC, WILL, OptSuppressGoAhead}, time.Second))
	require.NoError(t, <-done)
}

func TestRead_UnknownVerbIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv, conn := telnetd.Pipe()
	defer srv.Close()

	client := NewClient(context.Background(), conn, Options{})
	defer client.Close()

	// 0xF1 is NOP: the verb is consumed, nothing is answered, and the
	// following byte is ordinary data.
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(telnetd.Step{Send: []byte{IAC, 0xF1, 'A'}})
	}()

	text, err := client.Read(500 * time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, "A", text)
	require.Empty(t, srv.Received())
	require.NoError(t, <-done)
}

func TestRead_DanglingSequenceAbandoned(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv, conn := telnetd.Pipe()
	defer srv.Close()

	client := NewClient(context.Background(), conn, Options{})
	defer client.Close()

	// The server opens a negotiation and then goes quiet. The dangling
	// sequence is abandoned silently: decoded text survives, no reply is
	// sent, and the read still honors its deadline.
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(telnetd.Step{Send: []byte{'h', 'i', IAC, DO}})
	}()

	start := time.Now()
	text, err := client.Read(500 * time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, "hi", text)
	require.Less(t, time.Since(start), 2*time.Second)
	require.Empty(t, srv.Received())
	require.NoError(t, <-done)
}

func TestRead_StreamClosesMidSequence(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv, conn := telnetd.Pipe()

	client := NewClient(context.Background(), conn, Options{})
	defer client.Close()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(telnetd.Step{Send: []byte{IAC}})
	}()

	got := make(chan string, 1)
	go func() {
		text, _ := client.Read(10 * time.Second)
		got <- text
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, <-done)
	require.NoError(t, srv.Close())

	select {
	case text := <-got:
		require.Empty(t, text)
	case <-time.After(2 * time.Second):
		t.Fatal("Read did not unwind when the stream closed mid-sequence")
	}
	require.Empty(t, srv.Received())
}
