package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = "# Skill Catalog\n" +
	"\n" +
	"Generated list of skills.\n" +
	"\n" +
	"| Skill | Description | Tags | Triggers |\n" +
	"|---|---|---|---|\n" +
	"| `angular` | Modern Angular development | angular | angular, v20, signals |\n" +
	"| `x` | desc | a, b | c |\n" +
	"| `no-tags` | Nothing to tag |  | run it |\n" +
	"| `broken` | missing a cell | a, b |\n"

func TestMatchRow(t *testing.T) {
	tests := map[string]struct {
		line         string
		wantOK       bool
		wantID       string
		wantTags     []string
		wantTriggers []string
	}{
		"simple row": {
			line:         "| `x` | desc | a, b | c |",
			wantOK:       true,
			wantID:       "x",
			wantTags:     []string{"a", "b"},
			wantTriggers: []string{"c"},
		},
		"padded id": {
			line:         "|   ` spaced-id ` |  text  |tag|trig|",
			wantOK:       true,
			wantID:       "spaced-id",
			wantTags:     []string{"tag"},
			wantTriggers: []string{"trig"},
		},
		"empty tags cell": {
			line:         "| `x` | desc |  | c |",
			wantOK:       true,
			wantID:       "x",
			wantTags:     []string{},
			wantTriggers: []string{"c"},
		},
		"empty tags and triggers": {
			line:         "| `x` | desc | | |",
			wantOK:       true,
			wantID:       "x",
			wantTags:     []string{},
			wantTriggers: []string{},
		},
		"duplicates and blanks preserved in order": {
			line:         "| `x` | desc | b, a, , b,  | t1,,t2 |",
			wantOK:       true,
			wantID:       "x",
			wantTags:     []string{"b", "a", "b"},
			wantTriggers: []string{"t1", "t2"},
		},
		"extra trailing cells ignored": {
			line:         "| `x` | desc | a | b | extra |",
			wantOK:       true,
			wantID:       "x",
			wantTags:     []string{"a"},
			wantTriggers: []string{"b"},
		},
		"header row":          {line: "| Skill | Description | Tags | Triggers |"},
		"separator rule":      {line: "|---|---|---|---|"},
		"aligned separator":   {line: "| :--- | :---: | ---: | --- |"},
		"free text":           {line: "Use `x` to build things, quickly."},
		"heading":             {line: "## Frontend"},
		"blank":               {line: ""},
		"missing cell":        {line: "| `x` | desc | a, b |"},
		"empty description":   {line: "| `x` || a | b |"},
		"unquoted identifier": {line: "| x | desc | a | b |"},
		"empty identifier":    {line: "| `` | desc | a | b |"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			entry, ok := MatchRow(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantID, entry.ID)
			assert.Equal(t, tt.wantTags, entry.Tags)
			assert.Equal(t, tt.wantTriggers, entry.Triggers)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{}, SplitList(" , ,"))
	assert.Equal(t, []string{"a b", "c"}, SplitList(" a b ,c"))
}

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 3, c.Matched)
	assert.Equal(t, 7, c.Skipped)
	assert.Equal(t, []string{"angular", "x", "no-tags"}, c.IDs())

	assert.Equal(t, []string{"angular"}, c.Tags("angular"))
	assert.Equal(t, []string{"angular", "v20", "signals"}, c.Triggers("angular"))

	assert.True(t, c.Has("no-tags"))
	assert.NotNil(t, c.Tags("no-tags"))
	assert.Empty(t, c.Tags("no-tags"))
	assert.Equal(t, []string{"run it"}, c.Triggers("no-tags"))

	assert.False(t, c.Has("broken"))
	assert.Nil(t, c.Tags("broken"))
	assert.Nil(t, c.Triggers("missing"))
}

func TestParse_KeysetsMatch(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	require.Len(t, c.IDs(), c.Len())
	for _, id := range c.IDs() {
		assert.True(t, c.Has(id))
		assert.NotNil(t, c.Tags(id), "tags missing key %q", id)
		assert.NotNil(t, c.Triggers(id), "triggers missing key %q", id)
	}
}

func TestParse_LastRowWins(t *testing.T) {
	doc := "| `x` | first | a | b |\n| `x` | second | c | d |\n"

	c, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Matched)
	assert.Equal(t, []string{"c"}, c.Tags("x"))
	assert.Equal(t, []string{"d"}, c.Triggers("x"))
}

func TestParse_CRLF(t *testing.T) {
	c, err := Parse(strings.NewReader("| `x` | desc | a | b |\r\n| `y` | desc | c | d |\r\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, c.Triggers("x"))
	assert.Equal(t, []string{"d"}, c.Triggers("y"))
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Skipped)
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CATALOG.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	c, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"a", "b"}, c.Tags("x"))
}

func TestExtract_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CATALOG.md")

	c, err := Extract(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCatalogMissing))
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.IDs())
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	assert.Nil(t, c.Tags("x"))
	assert.Nil(t, c.Triggers("x"))
	assert.False(t, c.Has("x"))
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.IDs())
}
