package main

import (
	"context"
	"fmt"

	"gigboard-notify/internal/infra/db"
	"gigboard-notify/internal/pkg/config"

	"github.com/urfave/cli/v3"
)

type MigrateCmd struct {
	flags *Flags
}

func NewMigrateCmd(flags *Flags) *MigrateCmd {
	return &MigrateCmd{flags: flags}
}

func (cmd *MigrateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "migrate",
		Usage:     "Apply the embedded Postgres migrations",
		UsageText: "notifyctl migrate",
		Description: `Creates the notifications table and the triggers that publish changes
on the per-user LISTEN/NOTIFY channels. Already applied versions are skipped.

The SQLite and Mongo stores migrate themselves when they are opened.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *MigrateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Store.Driver != config.StorePostgres {
		return fmt.Errorf("migrate only applies to the postgres store, configured driver is %q", cfg.Store.Driver)
	}

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer cleanup()

	applied, err := db.Migrate(ctx, pool)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	out := c.Root().Writer
	if len(applied) == 0 {
		_, _ = fmt.Fprintln(out, "database is up to date")
		return nil
	}
	for _, v := range applied {
		_, _ = fmt.Fprintf(out, "applied %04d\n", v)
	}
	return nil
}
