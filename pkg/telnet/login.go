package telnet

import (
	"time"
)

// Login walks a prompt-driven authentication exchange: wait for a username
// prompt ending in ":", send the username, wait for a password prompt ending
// in ":", send the password, then wait for a shell prompt ending in ">".
// Each wait gets the full timeout.
//
// Login reports success only. Prompt timeouts, stream end, write failures
// and cancellation all collapse to false rather than returning an error.
func (c *Client) Login(username, password string, timeout time.Duration) bool {
	text, err := c.ReadUntilTimeout(":", timeout, c.pollInterval)
	if err != nil || !endsWith(text, ":") {
		return false
	}
	if err := c.WriteLine(username); err != nil {
		return false
	}

	text, err = c.ReadUntilTimeout(":", timeout, c.pollInterval)
	if err != nil || !endsWith(text, ":") {
		return false
	}
	if err := c.WriteLine(password); err != nil {
		return false
	}

	text, err = c.ReadUntilTimeout(">", timeout, c.pollInterval)
	if err != nil || !endsWith(text, ">") {
		return false
	}

	c.logger.VerboseMsg("Login as %s succeeded", username)
	return true
}
