// Package export writes merged skill rows to tabular and structured formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/klauern/skillcatalog/internal/logging"
	"github.com/klauern/skillcatalog/internal/model"
)

// Format represents the output format for exported rows.
type Format string

const (
	// FormatCSV exports rows as CSV with a fixed header. This is the default.
	FormatCSV Format = "csv"
	// FormatJSON exports rows as a JSON array.
	FormatJSON Format = "json"
	// FormatYAML exports rows as a YAML sequence.
	FormatYAML Format = "yaml"
	// FormatMarkdown exports rows as a Markdown table.
	FormatMarkdown Format = "markdown"
)

// IsValid returns true if the format is recognized.
func (f Format) IsValid() bool {
	for _, known := range AllFormats() {
		if f == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// AllFormats returns all supported export formats.
func AllFormats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatYAML, FormatMarkdown}
}

// FormatList joins AllFormats for flag usage and error text.
func FormatList() string {
	names := make([]string, 0, len(AllFormats()))
	for _, f := range AllFormats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if format == "md" {
		format = FormatMarkdown
	}
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported format %q (valid: %s)", s, FormatList())
	}
	return format, nil
}

// Options configures export behavior.
type Options struct {
	// Format specifies the output format.
	Format Format
	// Pretty enables indentation for JSON/YAML.
	Pretty bool
	// Logger receives export diagnostics. Nil uses the process logger.
	Logger *slog.Logger
}

// DefaultOptions returns the default export options.
func DefaultOptions() Options {
	return Options{
		Format: FormatCSV,
		Pretty: true,
	}
}

// Exporter writes rows in the configured format.
type Exporter struct {
	opts Options
	log  *slog.Logger
}

// New creates a new Exporter with the given options.
func New(opts Options) *Exporter {
	if opts.Format == "" {
		opts.Format = FormatCSV
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Exporter{opts: opts, log: log}
}

// Export writes rows to w in the configured format, preserving row order.
func (e *Exporter) Export(rows []model.OutputRow, w io.Writer) error {
	defer logging.Timer(e.log, "export")()

	e.log.Debug("starting export",
		logging.Format(e.opts.Format.String()),
		logging.Count(len(rows)),
		logging.Operation("export"),
	)

	var err error
	switch e.opts.Format {
	case FormatCSV:
		err = e.exportCSV(rows, w)
	case FormatJSON:
		err = e.exportJSON(rows, w)
	case FormatYAML:
		err = e.exportYAML(rows, w)
	case FormatMarkdown:
		err = e.exportMarkdown(rows, w)
	default:
		err = fmt.Errorf("unsupported format: %s", e.opts.Format)
	}

	if err != nil {
		e.log.Error("export failed",
			logging.Format(e.opts.Format.String()),
			logging.Err(err),
		)
		return err
	}

	e.log.Info("export completed successfully",
		logging.Format(e.opts.Format.String()),
		logging.Count(len(rows)),
	)
	return nil
}

// WriteFile exports rows to path, replacing any existing file.
// Parent directories are created as needed.
func (e *Exporter) WriteFile(path string, rows []model.OutputRow) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// #nosec G304 - path is supplied by configuration
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	e.log.Debug("writing output", logging.Path(path), logging.Count(len(rows)))
	return e.Export(rows, f)
}

// WriteFile is a convenience wrapper around New(opts).WriteFile.
func WriteFile(path string, rows []model.OutputRow, opts Options) error {
	return New(opts).WriteFile(path, rows)
}

// exportCSV writes the header row followed by one record per row.
func (e *Exporter) exportCSV(rows []model.OutputRow, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(model.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.Values()); err != nil {
			return fmt.Errorf("failed to write CSV row %q: %w", row.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// exportJSON writes rows as a JSON array.
func (e *Exporter) exportJSON(rows []model.OutputRow, w io.Writer) error {
	if rows == nil {
		rows = []model.OutputRow{}
	}

	encoder := json.NewEncoder(w)
	if e.opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(rows)
}

// exportYAML writes rows as a YAML sequence.
func (e *Exporter) exportYAML(rows []model.OutputRow, w io.Writer) error {
	if rows == nil {
		rows = []model.OutputRow{}
	}

	encoder := yaml.NewEncoder(w)
	if e.opts.Pretty {
		encoder.SetIndent(2)
	}
	if err := encoder.Encode(rows); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

// exportMarkdown writes rows as a single Markdown table.
func (e *Exporter) exportMarkdown(rows []model.OutputRow, w io.Writer) error {
	var sb strings.Builder
	title := cases.Title(language.English)

	sb.WriteString("# Skills\n\n")
	sb.WriteString(fmt.Sprintf("Total: %d skill(s)\n\n", len(rows)))

	headers := make([]string, len(model.Columns))
	rules := make([]string, len(model.Columns))
	for i, col := range model.Columns {
		headers[i] = title.String(col)
		rules[i] = "---"
	}
	writeMarkdownRow(&sb, headers)
	writeMarkdownRow(&sb, rules)

	for _, row := range rows {
		values := row.Values()
		values[0] = "`" + values[0] + "`"
		writeMarkdownRow(&sb, values)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMarkdownRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, cell := range cells {
		sb.WriteString(" ")
		sb.WriteString(markdownEscaper.Replace(cell))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")
