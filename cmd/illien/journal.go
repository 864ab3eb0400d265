package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/illien/illien/internal"
	"github.com/illien/illien/internal/backend"
)

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "Journal directory (defaults to the configured one)",
	}
}

func contentFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "content",
		Usage: "Entry content (read from stdin when omitted)",
	}
}

// withService loads the config, builds the service and resolves --dir.
func withService(fn func(ctx context.Context, svc *backend.Service, dir string, cmd *cli.Command) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc := internal.NewBackend(cfg)
		dir, err := svc.ResolveDirectory(ctx, cmd.String("dir"))
		if err != nil {
			return err
		}
		return fn(ctx, svc, dir, cmd)
	}
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one %s argument", name)
	}
	return cmd.Args().First(), nil
}

// readContent returns --content when given, otherwise all of stdin.
func readContent(cmd *cli.Command) (string, error) {
	if cmd.IsSet("content") {
		return cmd.String("content"), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func printLoaded(name, content string, found bool) {
	if !found {
		fmt.Fprintf(stderr, "no entry: %s\n", name)
		return
	}
	fmt.Fprint(stdout, content)
}

func journalCommand() *cli.Command {
	return &cli.Command{
		Name:  "journal",
		Usage: "Save, load, delete and list entries by file name",
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Write an entry, replacing any existing file",
				ArgsUsage: "<filename>",
				Flags:     []cli.Flag{dirFlag(), contentFlag()},
				Action: withService(func(ctx context.Context, svc *backend.Service, dir string, cmd *cli.Command) error {
					name, err := requireArg(cmd, "filename")
					if err != nil {
						return err
					}
					content, err := readContent(cmd)
					if err != nil {
						return err
					}
					return svc.SaveJournal(ctx, name, content, dir)
				}),
			},
			{
				Name:      "load",
				Usage:     "Print an entry",
				ArgsUsage: "<filename>",
				Flags:     []cli.Flag{dirFlag()},
				Action: withService(func(ctx context.Context, svc *backend.Service, dir string, cmd *cli.Command) error {
					name, err := requireArg(cmd, "filename")
					if err != nil {
						return err
					}
					content, found, err := svc.LoadJournal(ctx, name, dir)
					if err != nil {
						return err
					}
					printLoaded(name, content, found)
					return nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete an existing entry",
				ArgsUsage: "<filename>",
				Flags:     []cli.Flag{dirFlag()},
				Action: withService(func(ctx context.Context, svc *backend.Service, dir string, cmd *cli.Command) error {
					name, err := requireArg(cmd, "filename")
					if err != nil {
						return err
					}
					return svc.DeleteJournal(ctx, name, dir)
				}),
			},
			{
				Name:  "list",
				Usage: "List entries, daily entries first",
				Flags: []cli.Flag{
					dirFlag(),
					&cli.BoolFlag{Name: "daily", Usage: "Print only the dates of daily entries"},
					&cli.BoolFlag{Name: "json", Usage: "Print JSON"},
				},
				Action: withService(listEntries),
			},
		},
	}
}

func listEntries(ctx context.Context, svc *backend.Service, dir string, cmd *cli.Command) error {
	if cmd.Bool("daily") {
		dates, err := svc.ListDailyDates(ctx, dir)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return json.NewEncoder(stdout).Encode(dates)
		}
		for _, d := range dates {
			fmt.Fprintln(stdout, d)
		}
		return nil
	}
	entries, err := svc.ListJournalEntries(ctx, dir)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", e.EntryType, e.Title, e.Filename)
	}
	return nil
}

func dailyCommand() *cli.Command {
	return &cli.Command{
		Name:  "daily",
		Usage: "Save and load daily entries by YYYY-MM-DD date",
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Write the entry for a date",
				ArgsUsage: "<YYYY-MM-DD>",
				Flags:     []cli.Flag{dirFlag(), contentFlag()},
				Action: withService(func(ctx context.Context, svc *backend.Service, dir string, cmd *cli.Command) error {
					date, err := requireArg(cmd, "date")
					if err != nil {
						return err
					}
					content, err := readContent(cmd)
					if err != nil {
						return err
					}
					return svc.SaveDaily(ctx, date, content, dir)
				}),
			},
			{
				Name:      "load",
				Usage:     "Print the entry for a date",
				ArgsUsage: "<YYYY-MM-DD>",
				Flags:     []cli.Flag{dirFlag()},
				Action: withService(func(ctx context.Context, svc *backend.Service, dir string, cmd *cli.Command) error {
					date, err := requireArg(cmd, "date")
					if err != nil {
						return err
					}
					content, found, err := svc.LoadDaily(ctx, date, dir)
					if err != nil {
						return err
					}
					printLoaded(date, content, found)
					return nil
				}),
			},
		},
	}
}
