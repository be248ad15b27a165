package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/mist/cmd/app/commands"
	"github.com/allisson/mist/internal/app"
	"github.com/allisson/mist/internal/config"
)

// capabilityFlag reads the admin capability from a flag or the environment.
func capabilityFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "capability",
		Aliases:  []string{"c"},
		Required: true,
		Sources:  cli.EnvVars("MIST_ADMIN_CAPABILITY"),
		Usage:    "Admin capability secret printed by init-ledger",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getLedgerCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init-ledger",
			Usage: "Register the first Authority and mint the admin capability",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "authority",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Hex encoded 32-byte Authority identity",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				adminUseCase, err := container.AdminUseCase()
				if err != nil {
					return err
				}

				return commands.RunInitLedger(
					ctx,
					adminUseCase,
					container.Logger(),
					cmd.String("authority"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "set-pause",
			Usage: "Pause or resume deposits, intents and settlement",
			Flags: []cli.Flag{
				capabilityFlag(),
				&cli.BoolFlag{
					Name:    "paused",
					Aliases: []string{"p"},
					Value:   true,
					Usage:   "Whether the ledger should be paused",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				adminUseCase, err := container.AdminUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetPause(
					ctx,
					adminUseCase,
					container.Logger(),
					cmd.String("capability"),
					cmd.Bool("paused"),
				)
			},
		},
		{
			Name:  "rotate-authority",
			Usage: "Replace the settlement Authority",
			Flags: []cli.Flag{
				capabilityFlag(),
				&cli.StringFlag{
					Name:     "authority",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Hex encoded 32-byte identity of the new Authority",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				adminUseCase, err := container.AdminUseCase()
				if err != nil {
					return err
				}

				return commands.RunRotateAuthority(
					ctx,
					adminUseCase,
					container.Logger(),
					cmd.String("capability"),
					cmd.String("authority"),
				)
			},
		},
		{
			Name:  "top-up",
			Usage: "Credit the custody pool without creating a deposit record",
			Flags: []cli.Flag{
				capabilityFlag(),
				&cli.StringFlag{
					Name:     "asset",
					Required: true,
					Usage:    "Asset type tag (e.g. 0x2::sui::SUI)",
				},
				&cli.Uint64Flag{
					Name:     "amount",
					Required: true,
					Usage:    "Amount in the asset's smallest unit",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				adminUseCase, err := container.AdminUseCase()
				if err != nil {
					return err
				}

				return commands.RunTopUp(
					ctx,
					adminUseCase,
					container.Logger(),
					cmd.String("capability"),
					cmd.String("asset"),
					cmd.Uint64("amount"),
				)
			},
		},
	}
}
