package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/appsecrets/cmd/app/commands"
	"github.com/allisson/appsecrets/internal/app"
	"github.com/allisson/appsecrets/internal/config"
)

func getSettingCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "set-setting",
			Usage: "Encrypt and store a setting value",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Setting key (e.g., smtp.password)",
				},
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "Plaintext value to store",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				settingUseCase, err := container.SettingUseCase(ctx)
				if err != nil {
					return err
				}

				return commands.RunSetSetting(
					ctx,
					settingUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("key"),
					cmd.String("value"),
				)
			},
		},
		{
			Name:  "get-setting",
			Usage: "Retrieve and decrypt a setting value",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Setting key",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				settingUseCase, err := container.SettingUseCase(ctx)
				if err != nil {
					return err
				}

				return commands.RunGetSetting(
					ctx,
					settingUseCase,
					commands.DefaultIO().Writer,
					cmd.String("key"),
				)
			},
		},
		{
			Name:  "list-settings",
			Usage: "List the keys of all stored settings",
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

				settingUseCase, err := container.SettingUseCase(ctx)
				if err != nil {
					return err
				}

				return commands.RunListSettings(
					ctx,
					settingUseCase,
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "delete-setting",
			Usage: "Delete a stored setting",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Setting key",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				settingUseCase, err := container.SettingUseCase(ctx)
				if err != nil {
					return err
				}

				return commands.RunDeleteSetting(
					ctx,
					settingUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("key"),
				)
			},
		},
	}
}
