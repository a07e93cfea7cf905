package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/aether/cmd/app/commands"
	"github.com/allisson/aether/internal/app"
	"github.com/allisson/aether/internal/config"
)

func passphraseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "in",
			Aliases:  []string{"i"},
			Required: true,
			Usage:    "Input file path",
		},
		&cli.StringFlag{
			Name:     "out",
			Aliases:  []string{"o"},
			Required: true,
			Usage:    "Output file path",
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Aliases: []string{"p"},
			Sources: cli.EnvVars("AETHER_PASSPHRASE"),
			Usage:   "Passphrase (read from stdin when omitted)",
		},
		&cli.StringFlag{
			Name:  "wrapped-passphrase",
			Usage: "KMS-wrapped passphrase produced by wrap-passphrase",
		},
		&cli.StringFlag{
			Name:  "kms-key-uri",
			Usage: "KMS key URI used to unwrap --wrapped-passphrase (defaults to KMS_KEY_URI)",
		},
		formatFlag(),
	}
}

func passphraseSource(cmd *cli.Command, cfg *config.Config) commands.PassphraseSource {
	keyURI := cmd.String("kms-key-uri")
	if keyURI == "" {
		keyURI = cfg.KMSKeyURI
	}
	return commands.PassphraseSource{
		Plain:   cmd.String("passphrase"),
		Wrapped: cmd.String("wrapped-passphrase"),
		KeyURI:  keyURI,
	}
}

func getCryptoCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt-file",
			Usage: "Encrypt a file into an AES-CBC envelope",
			Flags: passphraseFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				encryptionService, err := container.EncryptionService()
				if err != nil {
					return err
				}

				return commands.RunEncryptFile(
					ctx,
					encryptionService,
					container.PassphraseResolver(),
					container.Logger(),
					cmd.String("in"),
					cmd.String("out"),
					passphraseSource(cmd, cfg),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "decrypt-file",
			Usage: "Decrypt an envelope file produced by encrypt-file",
			Flags: passphraseFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				encryptionService, err := container.EncryptionService()
				if err != nil {
					return err
				}

				return commands.RunDecryptFile(
					ctx,
					encryptionService,
					container.PassphraseResolver(),
					container.Logger(),
					cmd.String("in"),
					cmd.String("out"),
					passphraseSource(cmd, cfg),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "wrap-passphrase",
			Usage: "Encrypt a file passphrase with a KMS key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "passphrase",
					Aliases: []string{"p"},
					Usage:   "Passphrase to wrap (read from stdin when omitted)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI (defaults to KMS_KEY_URI)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyURI := cmd.String("kms-key-uri")
				if keyURI == "" {
					keyURI = cfg.KMSKeyURI
				}

				return commands.RunWrapPassphrase(
					ctx,
					container.PassphraseResolver(),
					container.Logger(),
					keyURI,
					cmd.String("passphrase"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
