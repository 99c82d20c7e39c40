package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klauern/skillcatalog/internal/export"
	"github.com/klauern/skillcatalog/internal/index"
	"github.com/klauern/skillcatalog/internal/logging"
	"github.com/klauern/skillcatalog/internal/model"
	"github.com/klauern/skillcatalog/internal/ui"
	"github.com/klauern/skillcatalog/internal/util"
)

const header = "id,name,description,category,risk,source,path,tags,triggers\n"

func TestMain(m *testing.M) {
	ui.DisableColors()
	os.Exit(m.Run())
}

type run struct {
	result *Result
	err    error
	stdout string
	stderr string
	output string
}

func generate(t *testing.T, opts Options) run {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts.Stdout = &stdout
	opts.Stderr = &stderr

	res, err := Generate(context.Background(), opts)

	r := run{result: res, err: err, stdout: stdout.String(), stderr: stderr.String()}
	if data, rerr := os.ReadFile(opts.OutputPath); rerr == nil {
		r.output = string(data)
	}
	return r
}

func TestGenerate_ScenarioA(t *testing.T) {
	dir := t.TempDir()
	indexPath, catalogPath := util.WriteSources(t, dir,
		`[{"id":"x","name":"X"}]`,
		"| `x` | desc | a, b | c |\n")

	r := generate(t, Options{IndexPath: indexPath, CatalogPath: catalogPath, OutputPath: filepath.Join(dir, "skills.csv")})

	require.NoError(t, r.err)
	assert.Equal(t, header+"x,X,,uncategorized,unknown,unknown,,\"a,b\",c\n", r.output)
	assert.Equal(t, 1, r.result.Rows)
	assert.Equal(t, 1, r.result.CatalogMatched)
	assert.False(t, r.result.CatalogMissing)
}

func TestGenerate_ScenarioB_CatalogAbsent(t *testing.T) {
	dir := t.TempDir()
	indexPath, catalogPath := util.WriteSources(t, dir, `[{"id":"y"}]`, "")

	r := generate(t, Options{IndexPath: indexPath, CatalogPath: catalogPath, OutputPath: filepath.Join(dir, "skills.csv")})

	require.NoError(t, r.err)
	assert.Equal(t, header+"y,,,uncategorized,unknown,unknown,,,\n", r.output)
	assert.True(t, r.result.CatalogMissing)
	assert.Contains(t, r.stderr, "Catalog not found at "+catalogPath)
}

func TestGenerate_CatalogAbsentKeepsEveryRow(t *testing.T) {
	dir := t.TempDir()
	indexPath, catalogPath := util.WriteSources(t, dir, `[{"id":"a"},{"id":"b"},{"id":"c"}]`, "")

	r := generate(t, Options{IndexPath: indexPath, CatalogPath: catalogPath, OutputPath: filepath.Join(dir, "skills.csv")})

	require.NoError(t, r.err)
	lines := strings.Split(strings.TrimSuffix(r.output, "\n"), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines[1:] {
		assert.True(t, strings.HasSuffix(line, ",,"), "expected empty tags/triggers in %q", line)
	}
}

func TestGenerate_ScenarioC(t *testing.T) {
	dir := t.TempDir()
	indexPath, catalogPath := util.WriteSources(t, dir,
		`[{"id":"x"}]`,
		"| `x` | d | a | b |\n| `z` | d | q | r |\n")

	r := generate(t, Options{IndexPath: indexPath, CatalogPath: catalogPath, OutputPath: filepath.Join(dir, "skills.csv")})

	require.NoError(t, r.err)
	assert.NotContains(t, r.output, "\nz,")
	assert.Equal(t, []string{"z"}, r.result.Unmatched)
}

func TestGenerate_IndexMissing(t *testing.T) {
	dir := t.TempDir()
	_, catalogPath := util.WriteSources(t, dir, `[]`, "| `x` | d | a | b |\n")
	outputPath := filepath.Join(dir, "skills.csv")

	r := generate(t, Options{
		IndexPath:   filepath.Join(dir, "absent.json"),
		CatalogPath: catalogPath,
		OutputPath:  outputPath,
	})

	require.Error(t, r.err)
	assert.True(t, errors.Is(r.err, index.ErrSourceMissing))
	assert.Nil(t, r.result)
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr), "no output file may be written")
}

func TestGenerate_IndexMalformed(t *testing.T) {
	dir := t.TempDir()
	indexPath, catalogPath := util.WriteSources(t, dir, `[{"id": "x"`, "")
	outputPath := filepath.Join(dir, "skills.csv")

	r := generate(t, Options{IndexPath: indexPath, CatalogPath: catalogPath, OutputPath: outputPath})

	require.Error(t, r.err)
	assert.True(t, errors.Is(r.err, index.ErrSourceMalformed))
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_ProgressLines(t *testing.T) {
	dir := t.TempDir()
	indexPath, catalogPath := util.WriteSources(t, dir, `[{"id":"x"},{"id":"y"}]`, "| `x` | d | a | b |\n")
	outputPath := filepath.Join(dir, "skills.csv")

	r := generate(t, Options{IndexPath: indexPath, CatalogPath: catalogPath, OutputPath: outputPath})

	require.NoError(t, r.err)
	want := "Loading data...\n" +
		"Parsing catalog from " + catalogPath + "...\n" +
		"Processing 2 skills...\n" +
		"Writing 2 rows to " + outputPath + "...\n" +
		"Done.\n"
	assert.Equal(t, want, r.stdout)
	assert.Empty(t, r.stderr)
}

func TestGenerate_OverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	indexPath, catalogPath := util.WriteSources(t, dir, `[{"id":"y"}]`, "")
	outputPath := filepath.Join(dir, "skills.csv")
	util.WriteFile(t, outputPath, strings.Repeat("old,row\n", 100))

	r := generate(t, Options{IndexPath: indexPath, CatalogPath: catalogPath, OutputPath: outputPath})

	require.NoError(t, r.err)
	assert.Equal(t, header+"y,,,uncategorized,unknown,unknown,,,\n", r.output)
}

func TestGenerate_JSONFormat(t *testing.T) {
	dir := t.TempDir()
	indexPath, catalogPath := util.WriteSources(t, dir, `[{"id":"x","name":"X"}]`, "| `x` | desc | a, b | c |\n")
	outputPath := filepath.Join(dir, "skills.json")

	r := generate(t, Options{IndexPath: indexPath, CatalogPath: catalogPath, OutputPath: outputPath, Format: export.FormatJSON})

	require.NoError(t, r.err)
	var rows []model.OutputRow
	require.NoError(t, json.Unmarshal([]byte(r.output), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "a,b", rows[0].Tags)
}

func TestGenerate_RequiresPaths(t *testing.T) {
	_, err := Generate(context.Background(), Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestGenerate_Golden(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "skills.csv")

	r := generate(t, Options{
		IndexPath:   filepath.Join("testdata", "skills_index.json"),
		CatalogPath: filepath.Join("testdata", "CATALOG.md"),
		OutputPath:  outputPath,
	})

	require.NoError(t, r.err)
	assert.Equal(t, 3, r.result.Records)
	assert.Equal(t, 3, r.result.CatalogMatched)
	assert.Equal(t, []string{"retired"}, r.result.Unmatched)
	util.GoldenFile(t, "testdata", "skills.csv", r.output)
}

func TestGenerate_LogsThroughContextLogger(t *testing.T) {
	dir := t.TempDir()
	indexPath, catalogPath := util.WriteSources(t, dir,
		`[{"id":"x"}]`,
		"| `x` | d | a | b |\n| `z` | d | q | r |\n")

	var logs bytes.Buffer
	ctx := logging.NewContext(context.Background(),
		logging.New(logging.Options{Level: logging.LevelDebug, Output: &logs}))

	var stdout, stderr bytes.Buffer
	_, err := Generate(ctx, Options{
		IndexPath:   indexPath,
		CatalogPath: catalogPath,
		OutputPath:  filepath.Join(dir, "skills.csv"),
		Stdout:      &stdout,
		Stderr:      &stderr,
	})

	require.NoError(t, err)
	out := logs.String()
	assert.Contains(t, out, "catalog row has no index record, dropped")
	assert.Contains(t, out, "skill=z")
	assert.NotContains(t, out, "skill=x")
	assert.Contains(t, out, "starting export", "exporter should share the run logger")
	assert.Contains(t, out, "operation=generate")
}
