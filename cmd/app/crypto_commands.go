package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/appsecrets/cmd/app/commands"
	"github.com/allisson/appsecrets/internal/app"
	"github.com/allisson/appsecrets/internal/config"
)

func getCryptoCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt-value",
			Usage: "Encrypt a value with the root encryption key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "Plaintext value to encrypt",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				cipher, err := container.FieldCipher(ctx)
				if err != nil {
					return err
				}

				return commands.RunEncryptValue(
					cipher,
					commands.DefaultIO().Writer,
					cmd.String("value"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "decrypt-value",
			Usage: "Decrypt a value produced by encrypt-value",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "iv",
					Required: true,
					Usage:    "Base64-encoded nonce",
				},
				&cli.StringFlag{
					Name:     "data",
					Required: true,
					Usage:    "Base64-encoded ciphertext",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				cipher, err := container.FieldCipher(ctx)
				if err != nil {
					return err
				}

				return commands.RunDecryptValue(
					cipher,
					commands.DefaultIO().Writer,
					cmd.String("iv"),
					cmd.String("data"),
				)
			},
		},
		{
			Name:  "hash-password",
			Usage: "Hash a password with Argon2id",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Plaintext password to hash",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunHashPassword(
					container.PasswordHasher(),
					commands.DefaultIO().Writer,
					cmd.String("password"),
				)
			},
		},
		{
			Name:  "verify-password",
			Usage: "Verify a password against an Argon2id hash",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Plaintext password to verify",
				},
				&cli.StringFlag{
					Name:     "hash",
					Required: true,
					Usage:    "Encoded Argon2id hash",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunVerifyPassword(
					container.PasswordHasher(),
					commands.DefaultIO().Writer,
					cmd.String("password"),
					cmd.String("hash"),
				)
			},
		},
	}
}
