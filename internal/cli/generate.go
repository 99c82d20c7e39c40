package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillcatalog/internal/dataset"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Merge the index and catalog and write the dataset (default command)",
		UsageText: "skillcatalog generate [--index FILE] [--catalog FILE] [--output FILE] [--format FORMAT]",
		Description: `Join every skill in the index with its catalog tags and triggers and
   write one row per skill. A missing catalog only produces a warning;
   a missing or malformed index is an error.

   Examples:
     skillcatalog
     skillcatalog generate --output /tmp/skills.csv
     skillcatalog generate --format json --output skills.json`,
		Action: generateAction,
	}
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	cfg := configFrom(ctx)
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	_, err := dataset.Generate(ctx, dataset.Options{
		IndexPath:   cfg.IndexPath(),
		CatalogPath: cfg.CatalogPath(),
		OutputPath:  cfg.OutputPath(),
		Format:      cfg.GetFormat(),
	})
	return err
}
