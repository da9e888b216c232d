package main

import (
	"context"
	"dominicbreuker/telcat/cmd/connect"
	"dominicbreuker/telcat/cmd/shared"
	"dominicbreuker/telcat/cmd/version"
	"dominicbreuker/telcat/pkg/log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shared.SetupSignalHandling(cancel)

	cmd := &cli.Command{
		Name:  "telcat",
		Usage: "telnet client for interactive sessions and scripted logins",
		Commands: []*cli.Command{
			connect.GetCommand(),
			version.GetCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.ErrorMsg("%s\n", err)
		os.Exit(1)
	}
}
