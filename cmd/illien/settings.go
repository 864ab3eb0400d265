package main

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/illien/illien/internal"
	"github.com/illien/illien/internal/models"
)

var errBadBool = errors.New("expected true or false")

func settingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change the stored preferences",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Print the settings as JSON; unset fields are null",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					svc := internal.NewBackend(cfg)
					enc := json.NewEncoder(stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(models.Settings{
						JournalDirectory: svc.JournalDirectory(ctx),
						DarkMode:         svc.DarkMode(ctx),
					})
				},
			},
			{
				Name:      "set-dir",
				Usage:     "Set the journal directory (not validated)",
				ArgsUsage: "<path>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dir, err := requireArg(cmd, "path")
					if err != nil {
						return err
					}
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return internal.NewBackend(cfg).SetJournalDirectory(ctx, dir)
				},
			},
			{
				Name:      "set-dark-mode",
				Usage:     "Set the dark-mode preference",
				ArgsUsage: "<true|false>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					raw, err := requireArg(cmd, "flag")
					if err != nil {
						return err
					}
					on, err := strconv.ParseBool(raw)
					if err != nil {
						return errBadBool
					}
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return internal.NewBackend(cfg).SetDarkMode(ctx, on)
				},
			},
		},
	}
}
