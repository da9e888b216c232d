package telnet

import (
	"strings"
	"time"
	"unicode"

	"github.com/valyala/bytebufferpool"
)

// Read collects decoded session text until the server goes quiet. A zero
// timeout means the client's default window.
//
// Two deadlines govern the wait: the first byte must arrive within timeout,
// and each further byte within timeout/100 of the previous one. A burst
// drains completely while trailing silence ends the read quickly. Quiescence
// is not an error: Read returns whatever text accumulated, possibly none.
//
// A session that is already dead yields ("", ErrClosed). A session already
// cancelled yields ("", nil). Cancellation or stream end during the read
// returns the text accumulated so far.
func (c *Client) Read(timeout time.Duration) (string, error) {
	if !c.IsConnected() {
		return "", ErrClosed
	}
	if c.ctx.Err() != nil {
		return "", nil
	}
	if timeout <= 0 {
		timeout = c.readTimeout
	}

	if err := c.recvLock.Acquire(c.ctx); err != nil {
		return "", nil // cancelled while waiting for the receive lock
	}
	defer c.recvLock.Release()

	return c.read(timeout), nil
}

// read runs one adaptive read pass. The caller must hold the receive lock.
func (c *Client) read(timeout time.Duration) string {
	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	width := timeout / 100

	now := time.Now()
	initialDeadline := now.Add(timeout)
	rollingDeadline := now.Add(width)

	for {
		// Drain everything already queued, one parser step at a time.
		// Every consumed byte extends the rolling deadline.
		for c.step(out, width) {
			rollingDeadline = time.Now().Add(width)
			if c.ctx.Err() != nil {
				return out.String()
			}
		}

		if c.ctx.Err() != nil {
			break
		}

		// While the buffer is still empty the initial deadline governs,
		// if it is the later one; afterwards only the rolling deadline.
		deadline := rollingDeadline
		if out.Len() == 0 && initialDeadline.After(deadline) {
			deadline = initialDeadline
		}

		wait := time.Until(deadline)
		if wait <= 0 {
			c.logger.VerboseMsg("Read quiesced with %d bytes", out.Len())
			break
		}

		timer := time.NewTimer(wait)
		select {
		case b, ok := <-c.in:
			timer.Stop()
			if !ok {
				// Stream ended. Whatever came through is the result;
				// the next call reports the dead session.
				return out.String()
			}
			c.handle(b, out, width)
			rollingDeadline = time.Now().Add(width)

		case <-timer.C:
			// Nothing arrived in time; the loop re-checks the deadlines.

		case <-c.ctx.Done():
			timer.Stop()
			return out.String()
		}
	}

	return out.String()
}

// ReadUntil reads until the accumulated text, ignoring trailing whitespace,
// ends with terminator. It uses the client's default timeout and poll
// interval.
func (c *Client) ReadUntil(terminator string) (string, error) {
	return c.ReadUntilTimeout(terminator, c.readTimeout, c.pollInterval)
}

// ReadUntilTimeout reads in small slices until the accumulated text ends
// with terminator (trailing whitespace ignored) or the deadline passes.
// Zero timeout or poll mean the client's defaults.
//
// A missing terminator is a soft condition: the call returns the accumulated
// text either way, and only the verbose trace reveals the expiry. The error
// is non-nil only for a session already dead at entry.
func (c *Client) ReadUntilTimeout(terminator string, timeout, poll time.Duration) (string, error) {
	if !c.IsConnected() {
		return "", ErrClosed
	}
	if c.ctx.Err() != nil {
		return "", nil
	}
	if timeout <= 0 {
		timeout = c.readTimeout
	}
	if poll <= 0 {
		poll = c.pollInterval
	}

	if err := c.recvLock.Acquire(c.ctx); err != nil {
		return "", nil
	}
	defer c.recvLock.Release()

	deadline := time.Now().Add(timeout)

	var sb strings.Builder
	for {
		sb.WriteString(c.read(readSlice))

		if endsWith(sb.String(), terminator) {
			return sb.String(), nil
		}
		if !c.IsConnected() || c.ctx.Err() != nil {
			break
		}
		if !time.Now().Before(deadline) {
			c.logger.VerboseMsg("ReadUntil(%q): deadline passed after %s", terminator, timeout)
			break
		}
		if !c.sleep(poll) {
			break
		}
	}

	return sb.String(), nil
}

// endsWith reports whether text, ignoring trailing whitespace, ends with
// suffix.
func endsWith(text, suffix string) bool {
	return strings.HasSuffix(strings.TrimRightFunc(text, unicode.IsSpace), suffix)
}

// sleep pauses for d, returning false early if the session is cancelled.
func (c *Client) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-c.ctx.Done():
		return false
	}
}
