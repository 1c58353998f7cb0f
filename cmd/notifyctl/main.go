package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	flags := &Flags{}

	app := &cli.Command{
		Name:      "notifyctl",
		Usage:     "Operate the gigboard notification service",
		UsageText: "notifyctl [global options] command [command options]",
		Description: `notifyctl applies database migrations, writes notifications on behalf of
producers and issues development tokens for the notification API.

Configuration is read from the same environment (and .env file) as the server.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "path to an env file loaded before the environment",
				Sources:     cli.EnvVars("ENV_FILE"),
				Value:       ".env",
				Destination: &flags.EnvFile,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("NOTIFYCTL_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var level slog.Level
			if err := level.UnmarshalText([]byte(flags.LogLevel)); err != nil {
				return ctx, fmt.Errorf("parse log level: %w", err)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return ctx, os.Setenv("ENV_FILE", flags.EnvFile)
		},
	}

	NewMigrateCmd(flags).Register(app)
	NewSendCmd(flags).Register(app)
	NewTokenCmd(flags).Register(app)

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "notifyctl: %v\n", err)
		os.Exit(1)
	}
}
