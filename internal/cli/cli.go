// Package cli provides the command-line interface for skillcatalog.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillcatalog/internal/config"
	"github.com/klauern/skillcatalog/internal/export"
	"github.com/klauern/skillcatalog/internal/logging"
	"github.com/klauern/skillcatalog/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
// With no subcommand it runs generate.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "skillcatalog",
		Usage:   "Export the skills index and catalog as a flat dataset",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "config",
				Usage:     "Load configuration from `FILE` (.yaml or .toml)",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.StringFlag{
				Name:      "index",
				Aliases:   []string{"i"},
				Usage:     "Skills index `FILE` (default: ../skills_index.json next to the binary)",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "catalog",
				Aliases:   []string{"c"},
				Usage:     "Markdown catalog `FILE` (default: ../CATALOG.md next to the binary)",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "output",
				Aliases:   []string{"o"},
				Usage:     "Output `FILE`, overwritten on every run (default: skills.csv next to the binary)",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: " + export.FormatList(),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return ctx, err
			}
			if err := configureColors(cmd, cfg); err != nil {
				return ctx, err
			}
			logger := configureLogging(cmd, cfg)
			return logging.NewContext(withConfig(ctx, cfg), logger), nil
		},
		Action: generateAction,
		Commands: []*cli.Command{
			generateCommand(),
			inspectCommand(),
			configCommand(),
			versionCommand(),
		},
	}
	return app.Run(ctx, args)
}

// loadConfig builds the effective configuration: defaults, config file,
// environment, then command-line flags. Paths given as flags are taken
// relative to the working directory.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with any path or format flags set on cmd and
// re-validates it. Subcommand actions call it again because flags given after
// the subcommand name are parsed after Before has run.
func applyFlags(cmd *cli.Command, cfg *config.Config) error {
	for flag, target := range map[string]*string{
		"index":   &cfg.Paths.Index,
		"catalog": &cfg.Paths.Catalog,
		"output":  &cfg.Paths.Output,
	} {
		if !cmd.IsSet(flag) {
			continue
		}
		abs, err := filepath.Abs(cmd.String(flag))
		if err != nil {
			return fmt.Errorf("invalid --%s path: %w", flag, err)
		}
		*target = abs
	}
	if cmd.IsSet("format") {
		cfg.Output.Format = cmd.String("format")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// configureColors applies --no-color, then the configured color mode.
func configureColors(cmd *cli.Command, cfg *config.Config) error {
	if cmd.Bool("no-color") {
		ui.DisableColors()
		return nil
	}
	return ui.ConfigureColor(cfg.Output.Color)
}

// configureLogging builds the run logger from CLI flags and config and makes
// it the process default for packages that log without a context.
func configureLogging(cmd *cli.Command, cfg *config.Config) *slog.Logger {
	opts := logging.DefaultOptions()

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") || cfg.Output.Verbose {
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)
	logger.Debug("logging configured", slog.String("level", opts.Level.String()))
	return logger
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration stored by Before, or defaults.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
