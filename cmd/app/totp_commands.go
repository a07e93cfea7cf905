package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/aether/cmd/app/commands"
	"github.com/allisson/aether/internal/app"
	"github.com/allisson/aether/internal/config"
)

func getTOTPCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "totp-setup",
			Usage: "Generate a TOTP secret, provisioning URI and optional QR code",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "account",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Account name shown in the authenticator app",
				},
				&cli.StringFlag{
					Name:  "issuer",
					Usage: "Issuer shown in the authenticator app (defaults to TOTP_ISSUER)",
				},
				&cli.StringFlag{
					Name:    "secret",
					Aliases: []string{"s"},
					Usage:   "Existing Base32 secret (a new one is generated when omitted)",
				},
				&cli.StringFlag{
					Name:  "qr-out",
					Usage: "Write the QR code PNG to this path",
				},
				&cli.IntFlag{
					Name:  "qr-pixels",
					Usage: "QR code pixels per module (defaults to TOTP_QR_PIXELS_PER_MODULE)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				authenticator, err := container.Authenticator()
				if err != nil {
					return err
				}

				issuer := cmd.String("issuer")
				if issuer == "" {
					issuer = cfg.TOTPIssuer
				}
				pixels := int(cmd.Int("qr-pixels"))
				if pixels == 0 {
					pixels = cfg.TOTPQRPixelsPerModule
				}

				return commands.RunTOTPSetup(
					authenticator,
					container.RandomSource(),
					container.Fs(),
					container.Logger(),
					commands.TOTPSetupOptions{
						Account:         cmd.String("account"),
						Issuer:          issuer,
						Secret:          cmd.String("secret"),
						QRPath:          cmd.String("qr-out"),
						PixelsPerModule: pixels,
					},
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "totp-code",
			Usage: "Print the current TOTP pin, or validate one with --pin",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "secret",
					Aliases: []string{"s"},
					Usage:   "Base32 secret (read from stdin when omitted)",
				},
				&cli.StringFlag{
					Name:  "pin",
					Usage: "Pin to validate instead of printing the current one",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				authenticator, err := container.Authenticator()
				if err != nil {
					return err
				}

				return commands.RunTOTPCode(
					authenticator,
					cmd.String("secret"),
					cmd.String("pin"),
					cfg.TOTPTolerance,
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
