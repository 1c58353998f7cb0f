package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gigboard-notify/cmd/bootstrap"
	"gigboard-notify/cmd/bootstrap/components"
	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/handler/dto/response"
	"gigboard-notify/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type SendCmd struct {
	flags *Flags

	user    string
	typ     string
	message string
	link    string
}

func NewSendCmd(flags *Flags) *SendCmd {
	return &SendCmd{flags: flags}
}

func (cmd *SendCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "send",
		Usage:     "Write a notification for a user",
		UsageText: "notifyctl send --user <uuid> --type <type> --message <text> [--link <url>]",
		Description: `Writes a notification through the configured store, the way a producer
service would. With the postgres store every open session of the user receives
it at once; the sqlite and mongo stores publish in-process, so other processes
see it on their next reload.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "user",
				Usage:       "recipient user id",
				Required:    true,
				Destination: &cmd.user,
			},
			&cli.StringFlag{
				Name:        "type",
				Usage:       "notification type, e.g. new-job or payment-received",
				Required:    true,
				Destination: &cmd.typ,
			},
			&cli.StringFlag{
				Name:        "message",
				Usage:       "notification text",
				Required:    true,
				Destination: &cmd.message,
			},
			&cli.StringFlag{
				Name:        "link",
				Usage:       "optional deep link",
				Destination: &cmd.link,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SendCmd) run(ctx context.Context, c *cli.Command) error {
	userID, err := uuid.Parse(cmd.user)
	if err != nil {
		return fmt.Errorf("invalid --user: %w", err)
	}
	var link *string
	if cmd.link != "" {
		link = &cmd.link
	}
	typ := notification.ParseType(cmd.typ)
	if !typ.IsKnown() {
		return fmt.Errorf("unknown --type %q, expected one of %v", cmd.typ, notification.KnownTypes())
	}
	draft, err := notification.NewDraft(userID, typ, cmd.message, link)
	if err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	var repo shared.NotificationRepository
	app := fx.New(
		bootstrap.ConfigModule,
		components.PersistenceModule,
		fx.Provide(slog.Default),
		fx.Populate(&repo),
		fx.NopLogger,
	)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := app.Stop(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("failed to close store", "error", err)
		}
	}()

	created, err := repo.Insert(ctx, draft)
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(response.FromNotification(created))
}
