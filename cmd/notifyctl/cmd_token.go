package main

import (
	"context"
	"fmt"
	"time"

	"gigboard-notify/cmd/bootstrap"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

type TokenCmd struct {
	flags *Flags

	user     string
	ttl      time.Duration
	producer bool
}

func NewTokenCmd(flags *Flags) *TokenCmd {
	return &TokenCmd{flags: flags}
}

func (cmd *TokenCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "token",
		Usage:     "Issue an access token for a user",
		UsageText: "notifyctl token --user <uuid> [--ttl 1h] [--producer]",
		Description: `Signs an access token with JWT_SECRET. Without --ttl the token lives for
JWT_DURATION. Send it as a bearer header, the access_token cookie or, for the
WebSocket stream, the token query parameter. A --producer token may add
notifications addressed to other users.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "user",
				Usage:       "user id the token is issued for",
				Required:    true,
				Destination: &cmd.user,
			},
			&cli.DurationFlag{
				Name:        "ttl",
				Usage:       "token lifetime",
				Destination: &cmd.ttl,
			},
			&cli.BoolFlag{
				Name:        "producer",
				Usage:       "allow adding notifications for other users",
				Destination: &cmd.producer,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *TokenCmd) run(_ context.Context, c *cli.Command) error {
	userID, err := uuid.Parse(cmd.user)
	if err != nil {
		return fmt.Errorf("invalid --user: %w", err)
	}

	cfg, err := cmd.flags.loadConfig()
	if err != nil {
		return err
	}
	svc, err := bootstrap.NewJWTService(cfg)
	if err != nil {
		return err
	}

	var token string
	switch {
	case cmd.producer:
		token, err = svc.GenerateProducerToken(userID, cmd.ttl)
	case cmd.ttl > 0:
		token, err = svc.GenerateTokenWithTTL(userID, cmd.ttl)
	default:
		token, err = svc.GenerateToken(userID)
	}
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, token)
	return nil
}
