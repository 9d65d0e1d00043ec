package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/five82/modsnap/internal/app"
	"github.com/five82/modsnap/internal/compare"
	"github.com/five82/modsnap/internal/ui"
)

// Exit codes reported by check.
const (
	exitDifferences = 2
	exitNoReference = 3
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "modsnap",
		Usage:     "Record a world's mods and registries and report what a load would lose",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			saveCommand(),
			checkCommand(),
			showCommand(),
			watchCommand(),
		},
		// run() maps exit codes itself so tests are not terminated.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file path (default ~/.config/modsnap/config.toml)",
			EnvVars: []string{"MODSNAP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: trace, debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: `log file path, or "-" for stderr`,
		},
	}
}

func worldFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "world",
		Aliases:  []string{"w"},
		Usage:    "world save directory",
		Required: true,
	}
}

func hostFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "host",
		Usage: "introspection host address (overrides config)",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format: text, json, yaml",
		Value:   string(formatText),
	}
}

func options(c *cli.Context) app.Options {
	return app.Options{
		ConfigPath: c.String("config"),
		WorldDir:   c.String("world"),
		Host:       c.String("host"),
		Against:    c.String("against"),
		LogLevel:   c.String("log-level"),
		LogFile:    c.String("log-file"),
		PollEvery:  c.Int("poll"),
	}
}

func saveCommand() *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Record the host's current mods and registries in the world directory",
		Flags: []cli.Flag{worldFlag(), hostFlag()},
		Action: func(c *cli.Context) error {
			env, err := app.Setup(options(c))
			if err != nil {
				return err
			}
			defer env.Close()

			snap, err := env.Save(c.Context)
			if err != nil {
				return err
			}
			mods, entries := snap.Len()
			fmt.Fprintf(c.App.Writer, "Saved %d mods and %d registry entries (version %s) to %s\n",
				mods, entries, displayVersion(snap.EnvironmentVersion()), env.Store.Dir())
			return nil
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Compare the world's recorded snapshot with the host (exit 2 on differences, 3 if nothing was recorded)",
		Flags: []cli.Flag{
			worldFlag(),
			hostFlag(),
			&cli.StringFlag{
				Name:  "against",
				Usage: "compare with another saved directory instead of the host",
			},
			outputFlag(),
		},
		Before: func(c *cli.Context) error {
			if c.String("host") != "" && c.String("against") != "" {
				return errors.New("--host and --against are mutually exclusive")
			}
			_, err := parseFormat(c.String("output"))
			return err
		},
		Action: func(c *cli.Context) error {
			format, _ := parseFormat(c.String("output"))
			env, err := app.Setup(options(c))
			if err != nil {
				return err
			}
			defer env.Close()

			diff, err := env.Compare(c.Context)
			usable := true
			switch {
			case errors.Is(err, app.ErrNoReference):
				usable = false
			case err != nil:
				return err
			}

			if format == formatText {
				fmt.Fprintln(c.App.Writer, ui.RenderReport(ui.Report{
					Diff:            diff,
					ReferenceUsable: usable,
					World:           env.Store.Dir(),
				}, ui.GetTheme(env.Config.Theme), 0))
			} else if err := writeStructured(c.App.Writer, format, newCheckReport(env.Store.Dir(), usable, diff)); err != nil {
				return err
			}

			switch {
			case !usable:
				return cli.Exit("", exitNoReference)
			case !diff.Equal:
				return cli.Exit("", exitDifferences)
			}
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the snapshot recorded in the world directory",
		Flags: []cli.Flag{worldFlag(), outputFlag()},
		Action: func(c *cli.Context) error {
			format, err := parseFormat(c.String("output"))
			if err != nil {
				return err
			}
			env, err := app.Setup(options(c))
			if err != nil {
				return err
			}
			defer env.Close()

			snap := env.Store.Load()
			if !snap.Usable() {
				return cli.Exit(fmt.Sprintf("no snapshot recorded in %s", env.Store.Dir()), exitNoReference)
			}
			if format == formatText {
				writeSnapshotText(c.App.Writer, snap)
				return nil
			}
			return writeStructured(c.App.Writer, format, newSnapshotView(snap))
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Continuously compare the world's snapshot with the host in a terminal UI",
		Flags: []cli.Flag{
			worldFlag(),
			hostFlag(),
			&cli.IntFlag{
				Name:  "poll",
				Usage: "poll interval in seconds (overrides config)",
			},
		},
		Action: func(c *cli.Context) error {
			return app.Run(c.Context, options(c))
		},
	}
}

func displayVersion(v string) string {
	if strings.TrimSpace(v) == "" {
		return compare.UnknownVersion
	}
	return v
}
