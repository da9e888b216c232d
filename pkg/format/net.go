package format

import (
	"fmt"
	"strings"
)

func Addr(host string, port int) string {
	if strings.ContainsAny(host, ":") { // IPv6
		return fmt.Sprintf("[%s]:%d", host, port)
	} else { // IPv4
		return fmt.Sprintf("%s:%d", host, port)
	}
}

// Target renders a dial target including its transport scheme,
// e.g. "tcp://example.com:23" or "ws://[::1]:8080".
func Target(proto string, host string, port int) string {
	return fmt.Sprintf("%s://%s", proto, Addr(host, port))
}
