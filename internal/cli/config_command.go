package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Display the effective configuration",
		Description: `Print the configuration after defaults, config file, environment and
   flags are applied. With --write it is saved instead, as TOML when FILE
   ends in .toml and YAML otherwise.

   Examples:
     skillcatalog config --toml
     skillcatalog --format json config --write ~/.config/skillcatalog/config.yaml`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "toml",
				Usage: "Print the configuration as TOML instead of YAML",
			},
			&cli.StringFlag{
				Name:      "write",
				Aliases:   []string{"w"},
				Usage:     "Save the effective configuration to `FILE`",
				TakesFile: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFrom(ctx)
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}

			if path := cmd.String("write"); path != "" {
				if err := cfg.SaveToPath(path); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Printf("Wrote configuration to %s\n", path)
				return nil
			}

			data, err := cfg.Marshal(cmd.Bool("toml"))
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			fmt.Print(string(data))

			fmt.Println()
			fmt.Println("Resolved paths:")
			fmt.Printf("  index:   %s\n", cfg.IndexPath())
			fmt.Printf("  catalog: %s\n", cfg.CatalogPath())
			fmt.Printf("  output:  %s\n", cfg.OutputPath())
			return nil
		},
	}
}
