package shared

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
)

// shutdownGrace is how long a session gets to unwind after the first signal
// before the process exits anyway.
const shutdownGrace = 5 * time.Second

// SetupSignalHandling cancels the root context on the first interrupt so the
// session can tear down cleanly. A second signal, or an unwind that takes
// longer than the grace period, exits the process directly.
func SetupSignalHandling(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 2)

	sigs := []os.Signal{os.Interrupt}
	if runtime.GOOS != "windows" {
		sigs = append(sigs, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
		// A peer hanging up mid-write must surface as a write error, not
		// kill the process.
		signal.Ignore(syscall.SIGPIPE)
	}

	signal.Notify(sigCh, sigs...)

	go func() {
		s := <-sigCh
		cancel()

		select {
		case <-sigCh:
			// POSIX exit code 128+sig where the signal allows it
			if ss, ok := s.(syscall.Signal); ok {
				os.Exit(128 + int(ss))
			}
			os.Exit(1)
		case <-time.After(shutdownGrace):
			os.Exit(0)
		}
	}()
}
