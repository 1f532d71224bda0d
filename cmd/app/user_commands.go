package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/appsecrets/cmd/app/commands"
	"github.com/allisson/appsecrets/internal/app"
	"github.com/allisson/appsecrets/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Register a new admin user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Email address used to sign in",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password (omit to be prompted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("name"),
					cmd.String("email"),
					cmd.String("password"),
				)
			},
		},
	}
}
