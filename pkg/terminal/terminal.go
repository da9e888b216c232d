// Package terminal attaches the local console to a telnet session, with
// optional raw mode for character-at-a-time interaction.
package terminal

import (
	"context"
	"fmt"
	"os"

	"dominicbreuker/telcat/pkg/config"
	"dominicbreuker/telcat/pkg/log"
	"dominicbreuker/telcat/pkg/pipeio"
	"dominicbreuker/telcat/pkg/telnet"

	"golang.org/x/term"
)

// Pipe bridges the local console and the session until one side ends or
// the context is cancelled. Copy errors are logged when verbose is set.
func Pipe(ctx context.Context, client *telnet.Client, deps *config.Dependencies, verbose bool) {
	pipeio.Pipe(ctx, pipeio.NewStdio(deps), pipeio.NewSession(client), func(err error) {
		if verbose {
			log.ErrorMsg("Pipe(stdio, session): %s\n", err)
		}
	})
}

// PipeRaw is Pipe with the local terminal in raw mode, passing keystrokes
// through unbuffered and without local echo. The terminal state is restored
// on return.
func PipeRaw(ctx context.Context, client *telnet.Client, deps *config.Dependencies, verbose bool) error {
	log.InfoMsg("Enabling raw mode\n")
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("setting terminal to raw mode: %s", err)
	}

	defer func() {
		log.InfoMsg("Disabling raw mode\n")
		term.Restore(int(os.Stdin.Fd()), oldState)
		fmt.Printf("\033[2K\r") // clear line
	}()

	Pipe(ctx, client, deps, verbose)

	return nil
}
