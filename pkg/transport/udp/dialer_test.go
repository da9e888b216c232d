package udp

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"dominicbreuker/telcat/pkg/config"

	kcp "github.com/xtaci/kcp-go/v5"
)

func TestNewDialer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{
			name:    "valid address",
			addr:    "localhost:9000",
			wantErr: false,
		},
		{
			name:    "valid IPv4 address",
			addr:    "127.0.0.1:9000",
			wantErr: false,
		},
		{
			name:    "invalid address - no port",
			addr:    "localhost",
			wantErr: true,
		},
		{
			name:    "invalid address - bad port",
			addr:    "localhost:abc",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d, err := NewDialer(tc.addr, nil)
			if (err != nil) != tc.wantErr {
				t.Errorf("NewDialer(%q) error = %v, wantErr %v", tc.addr, err, tc.wantErr)
			}
			if !tc.wantErr && d == nil {
				t.Error("NewDialer() returned nil dialer")
			}
		})
	}
}

func TestDialer_UsesInjectedPacketListener(t *testing.T) {
	t.Parallel()

	calls := 0
	deps := &config.Dependencies{
		PacketListener: func(network, address string) (net.PacketConn, error) {
			calls++
			return net.ListenPacket(network, address)
		},
	}

	d, err := NewDialer("127.0.0.1:9000", deps)
	if err != nil {
		t.Fatalf("NewDialer() error = %v", err)
	}

	// KCP sends nothing at dial time, so no listener is needed on the far end
	conn, err := d.Dial(context.Background())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if calls != 1 {
		t.Errorf("packet listener calls = %d, want 1", calls)
	}
}

func TestDialer_Dial_Echo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping network test in short mode")
	}

	lis, err := kcp.ListenWithOptions("127.0.0.1:0", nil, 0, 0)
	if err != nil {
		t.Fatalf("kcp.ListenWithOptions() error = %v", err)
	}
	defer lis.Close()

	go func() {
		s, err := lis.AcceptKCP()
		if err != nil {
			return
		}
		s.SetStreamMode(true)
		defer s.Close()

		buf := make([]byte, 5)
		if _, err := io.ReadFull(s, buf); err != nil {
			return
		}
		_, _ = s.Write(buf)
	}()

	d, err := NewDialer(lis.Addr().String(), nil)
	if err != nil {
		t.Fatalf("NewDialer() error = %v", err)
	}

	conn, err := d.Dial(context.Background())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("hello")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	buf := make([]byte, 5)
	if _, err := io.ReadFull(conn, buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(buf) != "hello" {
		t.Errorf("echo = %q, want %q", buf, "hello")
	}
}
