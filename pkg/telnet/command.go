package telnet

import "fmt"

// Telnet command bytes (RFC 854). IAC introduces every control sequence;
// a doubled IAC stands for one literal 0xFF data byte.
const (
	IAC  byte = 0xFF // Interpret As Command
	DONT byte = 0xFE
	DO   byte = 0xFD
	WONT byte = 0xFC
	WILL byte = 0xFB
)

// Telnet option codes. Suppress-go-ahead is the only option the client
// accepts; every other option is refused.
const (
	OptSuppressGoAhead byte = 0x03
	OptTerminalType    byte = 0x18
)

func verbName(b byte) string {
	switch b {
	case IAC:
		return "IAC"
	case DONT:
		return "DONT"
	case DO:
		return "DO"
	case WONT:
		return "WONT"
	case WILL:
		return "WILL"
	default:
		return fmt.Sprintf("0x%02X", b)
	}
}

func optName(b byte) string {
	switch b {
	case OptSuppressGoAhead:
		return "SUPPRESS-GO-AHEAD"
	case OptTerminalType:
		return "TERMINAL-TYPE"
	default:
		return fmt.Sprintf("0x%02X", b)
	}
}
