package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauern/skillcatalog/internal/catalog"
	"github.com/klauern/skillcatalog/internal/export"
	"github.com/klauern/skillcatalog/internal/index"
	"github.com/klauern/skillcatalog/internal/logging"
	"github.com/klauern/skillcatalog/internal/progress"
	"github.com/klauern/skillcatalog/internal/ui"
)

// Options configures an export run. All paths are used as given.
type Options struct {
	// IndexPath is the skills index (required).
	IndexPath string
	// CatalogPath is the markdown catalog (may be absent on disk).
	CatalogPath string
	// OutputPath receives the export; an existing file is replaced.
	OutputPath string
	// Format selects the output encoding. Defaults to CSV.
	Format export.Format
	// Stdout receives progress lines. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives warnings and the progress bar. Defaults to os.Stderr.
	Stderr io.Writer
}

// Result summarizes a completed run.
type Result struct {
	// Records is the number of index records loaded.
	Records int
	// Rows is the number of rows written. Always equal to Records.
	Rows int
	// CatalogMissing is true when the catalog file did not exist.
	CatalogMissing bool
	// CatalogMatched counts catalog lines recognized as data rows.
	CatalogMatched int
	// CatalogSkipped counts catalog lines that were not data rows.
	CatalogSkipped int
	// Unmatched lists catalog ids with no index record.
	Unmatched []string
	// OutputPath is where the export was written.
	OutputPath string
}

// Generate loads both sources, merges them and writes the export.
// Index failures are returned unchanged (see index.SourceError) and nothing
// is written. A missing catalog is reported as a warning and the run
// continues with empty tags and triggers.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Format == "" {
		opts.Format = export.FormatCSV
	}
	if opts.IndexPath == "" || opts.OutputPath == "" {
		return nil, errors.New("index and output paths are required")
	}

	log := logging.WithContext(ctx)
	defer logging.Timer(log, "generate")()

	printf(opts.Stdout, "Loading data...\n")
	records, err := index.Load(opts.IndexPath)
	if err != nil {
		log.Error("failed to load index", logging.Path(opts.IndexPath), logging.Err(err))
		return nil, err
	}

	result := &Result{Records: len(records), OutputPath: opts.OutputPath}

	printf(opts.Stdout, "Parsing catalog from %s...\n", opts.CatalogPath)
	cat, err := catalog.Extract(opts.CatalogPath)
	switch {
	case errors.Is(err, catalog.ErrCatalogMissing):
		result.CatalogMissing = true
		log.Warn("catalog not found, tags and triggers will be empty", logging.Path(opts.CatalogPath))
		ui.Warnf(opts.Stderr, "Catalog not found at %s; tags and triggers will be empty", opts.CatalogPath)
	case err != nil:
		return nil, err
	}
	result.CatalogMatched = cat.Matched
	result.CatalogSkipped = cat.Skipped

	printf(opts.Stdout, "Processing %d skills...\n", len(records))
	bar := progress.New(progress.Options{
		Max:         len(records),
		Description: "Merging",
		Writer:      opts.Stderr,
	})
	rows := mergeRows(records, cat, func() { _ = bar.Add(1) })
	_ = bar.Finish()

	result.Unmatched = Unmatched(records, cat)
	for _, id := range result.Unmatched {
		log.Debug("catalog row has no index record, dropped", logging.Skill(id))
	}

	printf(opts.Stdout, "Writing %d rows to %s...\n", len(rows), opts.OutputPath)
	if err := export.WriteFile(opts.OutputPath, rows, export.Options{Format: opts.Format, Pretty: true, Logger: log}); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", opts.OutputPath, err)
	}
	result.Rows = len(rows)

	printf(opts.Stdout, "Done.\n")
	log.Info("export finished",
		logging.Path(opts.OutputPath),
		logging.Count(result.Rows),
		logging.Format(opts.Format.String()),
	)
	return result, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
