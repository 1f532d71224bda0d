package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/appsecrets/cmd/app/commands"
	"github.com/allisson/appsecrets/internal/app"
	"github.com/allisson/appsecrets/internal/config"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "bootstrap",
			Usage: "Create the root secrets record if it does not exist",
			Flags: []cli.Flag{
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

				store, err := container.SecretStore(ctx)
				if err != nil {
					return err
				}

				return commands.RunBootstrap(
					ctx,
					store,
					container.Logger(),
					commands.DefaultIO().Writer,
					cfg.SecretsFilePath(),
					cmd.String("format"),
				)
			},
		},
	}
}
