package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/aether/cmd/app/commands"
	"github.com/allisson/aether/internal/app"
	"github.com/allisson/aether/internal/config"
)

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   "Password (read from stdin when omitted)",
	}
}

func getPasswordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "hash-password",
			Usage: "Hash a password with PBKDF2 and print the encoded record",
			Flags: []cli.Flag{
				passwordFlag(),
				&cli.BoolFlag{
					Name:  "enforce-rule",
					Value: true,
					Usage: "Reject passwords that violate the configured password rule",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				hashService, err := container.HashService()
				if err != nil {
					return err
				}

				rule, err := container.PasswordRule()
				if err != nil {
					return err
				}

				return commands.RunHashPassword(
					hashService,
					rule,
					container.Logger(),
					cmd.String("password"),
					cmd.Bool("enforce-rule"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "verify-password",
			Usage: "Verify a password against an encoded hash record",
			Flags: []cli.Flag{
				passwordFlag(),
				&cli.StringFlag{
					Name:     "hash",
					Required: true,
					Usage:    "Encoded hash record, e.g. Base64:<hash>:<salt>:<iterations>:SHA384",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				hashService, err := container.HashService()
				if err != nil {
					return err
				}

				return commands.RunVerifyPassword(
					hashService,
					container.Logger(),
					cmd.String("password"),
					cmd.String("hash"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "check-password",
			Usage: "Check a password against the configured password rule",
			Flags: []cli.Flag{
				passwordFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				rule, err := container.PasswordRule()
				if err != nil {
					return err
				}

				return commands.RunCheckPassword(
					rule,
					cmd.String("password"),
					cmd.String("format"),
					time.Now(),
					commands.DefaultIO(),
				)
			},
		},
	}
}
