package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillcatalog/internal/catalog"
	"github.com/klauern/skillcatalog/internal/dataset"
	"github.com/klauern/skillcatalog/internal/index"
	"github.com/klauern/skillcatalog/internal/logging"
	"github.com/klauern/skillcatalog/internal/ui"
)

// CatalogSkill summarizes one catalog row.
type CatalogSkill struct {
	ID       string `json:"id"`
	Tags     int    `json:"tags"`
	Triggers int    `json:"triggers"`
}

// InspectReport describes how the catalog lines up with the index.
type InspectReport struct {
	CatalogPath    string         `json:"catalog_path"`
	CatalogMissing bool           `json:"catalog_missing"`
	Matched        int            `json:"matched_rows"`
	Skipped        int            `json:"skipped_lines"`
	Skills         []CatalogSkill `json:"skills"`
	IndexPath      string         `json:"index_path"`
	IndexRecords   int            `json:"index_records"`
	IndexError     string         `json:"index_error,omitempty"`
	// Unmatched are catalog ids with no index record (dropped on export).
	Unmatched []string `json:"unmatched,omitempty"`
	// Uncovered are index ids with no catalog row (exported without tags).
	Uncovered []string `json:"uncovered,omitempty"`
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Show which catalog rows were recognized and how they match the index",
		Description: `Parse the catalog and index without writing anything.

   Examples:
     skillcatalog inspect
     skillcatalog inspect --json --catalog docs/CATALOG.md`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output in JSON format for scripting",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFrom(ctx)
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}

			report, err := collectReport(ctx, cfg.IndexPath(), cfg.CatalogPath())
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(report)
			}
			printReport(report)
			return nil
		},
	}
}

// collectReport parses both sources. Unlike generate, an unreadable index is
// reported rather than returned, since the catalog is still worth showing.
func collectReport(ctx context.Context, indexPath, catalogPath string) (*InspectReport, error) {
	log := logging.WithContext(ctx)
	report := &InspectReport{CatalogPath: catalogPath, IndexPath: indexPath}

	cat, err := catalog.Extract(catalogPath)
	switch {
	case errors.Is(err, catalog.ErrCatalogMissing):
		report.CatalogMissing = true
	case err != nil:
		return nil, err
	}
	report.Matched = cat.Matched
	report.Skipped = cat.Skipped
	for _, id := range cat.IDs() {
		report.Skills = append(report.Skills, CatalogSkill{
			ID:       id,
			Tags:     len(cat.Tags(id)),
			Triggers: len(cat.Triggers(id)),
		})
	}

	records, err := index.Load(indexPath)
	if err != nil {
		log.Warn("index could not be loaded", logging.Path(indexPath), logging.Err(err))
		report.IndexError = err.Error()
		return report, nil
	}
	report.IndexRecords = len(records)
	report.Unmatched = dataset.Unmatched(records, cat)
	for _, record := range records {
		if !cat.Has(record.GetID()) {
			log.Debug("index record has no catalog row", logging.Skill(record.GetID()))
			report.Uncovered = append(report.Uncovered, record.GetID())
		}
	}
	return report, nil
}

func printReport(r *InspectReport) {
	fmt.Println(ui.Bold("Catalog: ") + r.CatalogPath)
	if r.CatalogMissing {
		fmt.Println("  " + ui.StatusWarning("not found; exports will have empty tags and triggers"))
	} else {
		fmt.Println("  " + ui.StatusSuccess(fmt.Sprintf("%d data row(s)", r.Matched)))
		fmt.Println("  " + ui.Dim(fmt.Sprintf("%d other line(s) skipped", r.Skipped)))
	}
	for _, s := range r.Skills {
		fmt.Printf("    %-32s tags=%d triggers=%d\n", s.ID, s.Tags, s.Triggers)
	}
	fmt.Println()

	fmt.Println(ui.Bold("Index: ") + r.IndexPath)
	if r.IndexError != "" {
		fmt.Println("  " + ui.StatusError(r.IndexError))
		return
	}
	fmt.Println("  " + ui.StatusSuccess(fmt.Sprintf("%d record(s)", r.IndexRecords)))
	if len(r.Uncovered) > 0 {
		fmt.Println("  " + ui.StatusWarning(fmt.Sprintf("%d skill(s) without catalog row", len(r.Uncovered))))
		for _, id := range r.Uncovered {
			fmt.Printf("    %s\n", id)
		}
	}
	if len(r.Unmatched) > 0 {
		fmt.Println("  " + ui.StatusWarning(fmt.Sprintf("%d catalog row(s) without index record", len(r.Unmatched))))
		for _, id := range r.Unmatched {
			fmt.Printf("    %s\n", id)
		}
	}
}
