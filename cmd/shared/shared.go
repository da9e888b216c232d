// Package shared provides common CLI flag definitions and utility functions
// used across telcat's command-line interface.
package shared

import (
	"strings"

	"github.com/urfave/cli/v3"
)

const categoryCommon = "common"

// VerboseFlag is the name of the flag to enable verbose error logging.
const VerboseFlag = "verbose"

// TimeoutFlag is the name of the flag to specify operation timeout in milliseconds.
const TimeoutFlag = "timeout" // TODO for future: consider changing to time.Duration type, cmd.Duration(...)

// RetriesFlag is the name of the flag to specify extra connection attempts.
const RetriesFlag = "retries"

// GetBaseDescription returns the base description text for transport
// specifications used in CLI commands.
func GetBaseDescription() string {
	return strings.Join([]string{
		"Specify the remote end like this: tcp://127.0.0.1:23 (supports tcp|ws|wss|udp)",
		"Classic telnet servers speak tcp. Use ws|wss|udp for gateways that tunnel telnet.",
	}, "\n")
}

// GetArgsUsage returns the arguments usage string for CLI commands.
func GetArgsUsage() string {
	return strings.Join([]string{
		"transport",
	}, " ")
}

// GetCommonFlags returns the CLI flags shared by all commands that open
// a connection.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose error logging",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
		&cli.IntFlag{
			Name:     TimeoutFlag,
			Aliases:  []string{"t"},
			Usage:    "Dial and login prompt timeout in milliseconds",
			Category: categoryCommon,
			Value:    10000, // 10 seconds default
			Required: false,
		},
		&cli.IntFlag{
			Name:     RetriesFlag,
			Aliases:  []string{"r"},
			Usage:    "Extra connection attempts before giving up",
			Category: categoryCommon,
			Value:    0,
			Required: false,
		},
	}
}

const categorySession = "session"

// LoginFlag is the name of the flag to specify a username for automatic login.
const LoginFlag = "login"

// PasswordFlag is the name of the flag to specify a password for automatic login.
const PasswordFlag = "password"

// RawFlag is the name of the flag to enable raw terminal mode.
const RawFlag = "raw"

// LogFileFlag is the name of the flag to specify a transcript file.
const LogFileFlag = "log"

// GetSessionFlags returns the CLI flags controlling the interactive session.
func GetSessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     LoginFlag,
			Aliases:  []string{"u"},
			Usage:    "Username for automatic login, leave empty to log in manually",
			Category: categorySession,
			Value:    "",
			Required: false,
		},
		&cli.StringFlag{
			Name:     PasswordFlag,
			Aliases:  []string{},
			Usage:    "Password for automatic login, requires --login",
			Category: categorySession,
			Value:    "",
			Required: false,
		},
		&cli.BoolFlag{
			Name:     RawFlag,
			Aliases:  []string{},
			Usage:    "Put the local terminal in raw mode (character-at-a-time, no local echo)",
			Category: categorySession,
			Value:    false,
			Required: false,
		},
		&cli.StringFlag{
			Name:     LogFileFlag,
			Aliases:  []string{"l"},
			Usage:    "Transcript file capturing all session traffic",
			Category: categorySession,
			Value:    "",
			Required: false,
		},
	}
}
