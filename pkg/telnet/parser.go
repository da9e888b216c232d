package telnet

import (
	"time"

	"github.com/valyala/bytebufferpool"
)

// recv takes one queued byte without waiting. It reports false when the
// queue is momentarily empty or the stream has ended.
func (c *Client) recv() (byte, bool) {
	select {
	case b, ok := <-c.in:
		if !ok {
			return 0, false
		}
		return b, true
	default:
		return 0, false
	}
}

// recvWait waits up to window for the next queued byte. It reports false
// when nothing arrives in time, the stream ends, or the session is
// cancelled. The window is the read loop's rolling width: a control
// sequence split across TCP segments reassembles here, while one that
// stalls is abandoned like any other quiescent stream.
func (c *Client) recvWait(window time.Duration) (byte, bool) {
	if b, ok := c.recv(); ok {
		return b, true
	}

	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case b, ok := <-c.in:
		return b, ok
	case <-timer.C:
		return 0, false
	case <-c.ctx.Done():
		return 0, false
	}
}

// step consumes at most one top-level byte, or one full IAC sequence, from
// the inbound queue without waiting for new data. It reports whether
// anything was consumed.
func (c *Client) step(out *bytebufferpool.ByteBuffer, window time.Duration) bool {
	b, ok := c.recv()
	if !ok {
		return false
	}

	c.handle(b, out, window)
	return true
}

// handle runs one parser step on a byte already taken from the queue.
// Plain bytes land in the output buffer. IAC opens a control sequence:
// a doubled IAC decodes to one literal 0xFF, the four negotiation verbs
// hand off to the responder, and any other verb is ignored. A sequence
// whose continuation never arrives is abandoned silently.
func (c *Client) handle(b byte, out *bytebufferpool.ByteBuffer, window time.Duration) {
	if b != IAC {
		_ = out.WriteByte(b)
		return
	}

	verb, ok := c.recvWait(window)
	if !ok {
		return
	}

	switch verb {
	case IAC:
		_ = out.WriteByte(IAC)
	case DO, DONT, WILL, WONT:
		c.negotiate(verb, window)
	default:
		// unknown verb, ignored
	}
}

// negotiate answers one option request. The reply mirrors the incoming
// triple: suppress-go-ahead is accepted (DO earns WILL, everything else
// earns DO), any other option is refused (DO earns WONT, everything else
// DONT). If the option byte never arrives, nothing is sent and the
// sequence is abandoned where it stopped.
//
// Replies go straight to the connection rather than through the send lock:
// a reply is a single three-byte write answered inline from the read path.
func (c *Client) negotiate(verb byte, window time.Duration) {
	opt, ok := c.recvWait(window)
	if !ok {
		return
	}

	var reply byte
	if opt == OptSuppressGoAhead {
		if verb == DO {
			reply = WILL
		} else {
			reply = DO
		}
	} else {
		if verb == DO {
			reply = WONT
		} else {
			reply = DONT
		}
	}

	c.logger.VerboseMsg("Negotiation: %s %s answered with %s %s",
		verbName(verb), optName(opt), verbName(reply), optName(opt))

	if _, err := c.conn.Write([]byte{IAC, reply, opt}); err != nil {
		c.logger.VerboseMsg("Negotiation reply failed: %v", err)
	}
}
