// Package connect implements the connect command, which opens a telnet
// session to a remote host and attaches it to the local console.
package connect

import (
	"context"
	"dominicbreuker/telcat/cmd/shared"
	"dominicbreuker/telcat/pkg/config"
	"dominicbreuker/telcat/pkg/entrypoint"
	"dominicbreuker/telcat/pkg/log"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

// GetCommand returns the CLI command for connect mode.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "connect",
		Usage:       "Connect to a remote host",
		Description: shared.GetBaseDescription(),
		ArgsUsage:   shared.GetArgsUsage(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return fmt.Errorf("must provide exactly one argument, got %d (%s)", args.Len(), strings.Join(args.Slice(), ", "))
			}

			proto, host, port, err := shared.ParseTransport(args.Get(0))
			if err != nil {
				return fmt.Errorf("parsing transport: %s", err)
			}
			if host == "" {
				return fmt.Errorf("parsing transport: %s: specify a host", args.Get(0))
			}

			cfg := &config.Shared{
				Protocol: proto,
				Host:     host,
				Port:     port,
				Timeout:  time.Duration(cmd.Int(shared.TimeoutFlag)) * time.Millisecond,
				Retries:  int(cmd.Int(shared.RetriesFlag)),
				Verbose:  cmd.Bool(shared.VerboseFlag),
			}
			cfg.Logger = log.NewLogger(cfg.Verbose)

			sCfg := &config.Session{
				Login:    cmd.String(shared.LoginFlag),
				Password: cmd.String(shared.PasswordFlag),
				Raw:      cmd.Bool(shared.RawFlag),
				LogFile:  cmd.String(shared.LogFileFlag),
			}

			if errs := config.Validate(cfg, sCfg); len(errs) > 0 {
				log.ErrorMsg("Argument validation errors:\n")
				for _, err := range errs {
					log.ErrorMsg(" - %s\n", err)
				}
				return fmt.Errorf("exiting")
			}

			return entrypoint.Connect(ctx, cfg, sCfg)
		},
		Flags: getFlags(),
	}
}

func getFlags() []cli.Flag {
	flags := []cli.Flag{}

	flags = append(flags, shared.GetCommonFlags()...)
	flags = append(flags, shared.GetSessionFlags()...)

	return flags
}
