// Package pipeio moves bytes between the local console and a remote
// session. Pipe does the bidirectional copying, Stdio is the console
// endpoint and Session adapts a telnet client to the same shape.
package pipeio

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Pipe copies in both directions between rwc1 and rwc2 until one side ends
// or the context is cancelled, then closes both ends. It returns once the
// first direction has finished and both ends are closed; the drained
// direction unwinds on its own as the closes take effect. Copy errors are
// passed to logfunc.
func Pipe(ctx context.Context, rwc1 io.ReadWriteCloser, rwc2 io.ReadWriteCloser, logfunc func(error)) {
	var wg sync.WaitGroup
	var o sync.Once

	closeBoth := func() {
		rwc1.Close()
		rwc2.Close()

		wg.Done()
	}
	wg.Add(1)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			o.Do(closeBoth)
		case <-done:
		}
	}()

	go func() {
		if _, err := io.Copy(rwc1, rwc2); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc1, rwc2): %s", err))
		}

		o.Do(closeBoth)
	}()

	go func() {
		if _, err := io.Copy(rwc2, rwc1); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc2, rwc1): %s", err))
		}

		o.Do(closeBoth)
	}()

	wg.Wait()
}
