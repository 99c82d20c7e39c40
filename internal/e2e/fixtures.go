package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Fixture provides helpers for creating test fixtures in E2E tests.
type Fixture struct {
	t       *testing.T
	baseDir string
}

// NewFixture creates a new fixture helper rooted at the given directory.
func NewFixture(t *testing.T, baseDir string) *Fixture {
	t.Helper()
	return &Fixture{
		t:       t,
		baseDir: baseDir,
	}
}

// WriteFile writes content to a file relative to the fixture base directory.
// It creates parent directories as needed.
func (f *Fixture) WriteFile(relPath, content string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		f.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}

	return fullPath
}

// WriteIndex encodes entries as the skills index. Entries are written as
// given, so callers control which optional fields are present or null.
func (f *Fixture) WriteIndex(entries ...map[string]any) string {
	f.t.Helper()
	if entries == nil {
		entries = []map[string]any{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		f.t.Fatalf("failed to encode index: %v", err)
	}
	return f.WriteFile("skills_index.json", string(data))
}

// CatalogRow is one data row of a catalog table.
type CatalogRow struct {
	ID          string
	Description string
	Tags        string
	Triggers    string
}

// WriteCatalog writes a catalog document with a heading, a table header,
// the separator line and one line per row.
func (f *Fixture) WriteCatalog(rows ...CatalogRow) string {
	f.t.Helper()
	var sb strings.Builder
	sb.WriteString("# Skill Catalog\n\n")
	sb.WriteString("| Skill | Description | Tags | Triggers |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, r := range rows {
		sb.WriteString("| `" + r.ID + "` | " + r.Description + " | " + r.Tags + " | " + r.Triggers + " |\n")
	}
	return f.WriteFile("CATALOG.md", sb.String())
}

// Path returns the full path for a relative path.
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.baseDir, relPath)
}

// Exists returns true if the file or directory exists.
func (f *Fixture) Exists(relPath string) bool {
	f.t.Helper()
	_, err := os.Stat(filepath.Join(f.baseDir, relPath))
	return err == nil
}

// ReadFile reads and returns the content of a file.
func (f *Fixture) ReadFile(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	// #nosec G304 - fullPath is constructed from trusted test fixture base and test-provided path
	data, err := os.ReadFile(fullPath)
	if err != nil {
		f.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}

	return string(data)
}

// SourceFixture returns a fixture rooted where the default configuration
// looks for the index and catalog.
func (h *Harness) SourceFixture() *Fixture {
	h.t.Helper()
	return NewFixture(h.t, h.rootDir)
}

// DatasetFixture returns a fixture rooted at the dataset directory.
func (h *Harness) DatasetFixture() *Fixture {
	h.t.Helper()
	if err := os.MkdirAll(h.DatasetDir(), 0o750); err != nil {
		h.t.Fatalf("failed to create dataset directory: %v", err)
	}
	return NewFixture(h.t, h.DatasetDir())
}

// TempFixture creates a fixture helper for a new temporary directory.
func (h *Harness) TempFixture() *Fixture {
	h.t.Helper()
	return NewFixture(h.t, h.t.TempDir())
}
