// Package catalog extracts per-skill tags and triggers from the markdown
// catalog document.
//
// The catalog is a human-authored table. Only rows of the shape
//
//	| `<id>` | <description> | <tag>, <tag> | <trigger>, <trigger> |
//
// are data rows. Everything else (headings, the header row, |---| rules,
// prose, rows with a missing cell) is skipped without error.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/klauern/skillcatalog/internal/logging"
	"github.com/klauern/skillcatalog/internal/model"
)

// ErrCatalogMissing is returned by Extract when the catalog file does not
// exist. It is not fatal: the accompanying Catalog is empty and usable.
var ErrCatalogMissing = errors.New("catalog file not found")

// rowPattern matches a data row anywhere in a line. The description cell
// needs at least one character; tag and trigger cells may be empty.
var rowPattern = regexp.MustCompile("\\|\\s*`([^`]+)`\\s*\\|\\s*[^|]+\\s*\\|\\s*([^|]*)\\s*\\|\\s*([^|]*)\\s*\\|")

// maxLineSize bounds a single catalog line.
const maxLineSize = 1024 * 1024

// Catalog holds the tags and triggers of every matched row, keyed by skill id.
// Tags and triggers always share the same key set.
type Catalog struct {
	tags     map[string][]string
	triggers map[string][]string
	order    []string

	// Matched counts lines recognized as data rows.
	Matched int
	// Skipped counts lines that were not data rows.
	Skipped int
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		tags:     make(map[string][]string),
		triggers: make(map[string][]string),
	}
}

// Add records an entry. A later entry for the same id replaces the earlier one.
func (c *Catalog) Add(e model.CatalogEntry) {
	if _, ok := c.tags[e.ID]; !ok {
		c.order = append(c.order, e.ID)
	}
	c.tags[e.ID] = e.Tags
	c.triggers[e.ID] = e.Triggers
}

// Tags returns the tags for id, or nil if the catalog has no row for it.
func (c *Catalog) Tags(id string) []string {
	if c == nil {
		return nil
	}
	return c.tags[id]
}

// Triggers returns the triggers for id, or nil if the catalog has no row for it.
func (c *Catalog) Triggers(id string) []string {
	if c == nil {
		return nil
	}
	return c.triggers[id]
}

// Has reports whether the catalog contains a row for id.
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.tags[id]
	return ok
}

// Len returns the number of distinct skill ids.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tags)
}

// IDs returns the distinct skill ids in first-seen order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// MatchRow parses a single line. It returns false for any line that is not a
// complete data row; partial matches are never attempted.
func MatchRow(line string) (model.CatalogEntry, bool) {
	m := rowPattern.FindStringSubmatch(line)
	if m == nil {
		return model.CatalogEntry{}, false
	}
	return model.CatalogEntry{
		ID:       strings.TrimSpace(m[1]),
		Tags:     SplitList(m[2]),
		Triggers: SplitList(m[3]),
	}, true
}

// SplitList splits a cell on commas, trims each piece and drops empty ones.
// Order and duplicates are preserved. The result is never nil.
func SplitList(cell string) []string {
	parts := strings.Split(cell, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Parse reads a catalog document line by line.
func Parse(r io.Reader) (*Catalog, error) {
	c := New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		entry, ok := MatchRow(scanner.Text())
		if !ok {
			c.Skipped++
			continue
		}
		c.Matched++
		c.Add(entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	logging.Debug("catalog parsed",
		slog.Int("matched", c.Matched),
		slog.Int("skipped", c.Skipped),
		logging.Count(c.Len()),
	)
	return c, nil
}

// Extract parses the catalog at path. When the file does not exist it
// returns an empty catalog together with ErrCatalogMissing.
func Extract(path string) (*Catalog, error) {
	// #nosec G304 - path is supplied by configuration
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), fmt.Errorf("%w: %s", ErrCatalogMissing, path)
		}
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
