package telnet

import (
	"bytes"
	"fmt"
)

// Write sends text over the session. Any 0xFF byte in the text is escaped
// by doubling, per the wire protocol. Writes are strictly serialized: the
// full byte sequence of one call reaches the wire before the next begins.
//
// On a dead or cancelled session Write is a silent no-op returning nil,
// matching the read side's graceful unwind. A transport-level write failure
// is returned wrapped.
func (c *Client) Write(text string) error {
	if !c.IsConnected() || c.ctx.Err() != nil {
		return nil
	}

	if err := c.sendLock.Acquire(c.ctx); err != nil {
		return nil // cancelled while waiting for the send lock
	}
	defer c.sendLock.Release()

	data := bytes.ReplaceAll([]byte(text), []byte{IAC}, []byte{IAC, IAC})

	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("writing %d bytes: %w", len(data), err)
	}

	return nil
}

// WriteLine sends text followed by a newline.
func (c *Client) WriteLine(text string) error {
	return c.Write(text + "\n")
}
