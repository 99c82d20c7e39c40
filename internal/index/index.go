// Package index loads the canonical skills index.
//
// The index is authoritative: a missing or unreadable file is fatal to an
// export run, so every failure is reported as a *SourceError whose kind can
// be tested with errors.Is against ErrSourceMissing or ErrSourceMalformed.
package index

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klauern/skillcatalog/internal/logging"
	"github.com/klauern/skillcatalog/internal/model"
)

// Sentinel kinds for index failures.
var (
	// ErrSourceMissing indicates the index file does not exist.
	ErrSourceMissing = errors.New("index file not found")
	// ErrSourceMalformed indicates the index file cannot be parsed.
	ErrSourceMalformed = errors.New("index file malformed")
)

// SourceError describes why the index could not be loaded.
type SourceError struct {
	// Path is the index file that failed.
	Path string
	// Kind is ErrSourceMissing or ErrSourceMalformed.
	Kind error
	// Err is the underlying I/O or decode error.
	Err error
}

// Error returns a message including the underlying error detail.
func (e *SourceError) Error() string {
	if errors.Is(e.Kind, ErrSourceMissing) {
		return fmt.Sprintf("file not found at %s", e.Path)
	}
	return fmt.Sprintf("error decoding %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying error.
func (e *SourceError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Load reads and decodes the index at path.
// Files ending in .yaml or .yml are decoded as YAML; everything else as JSON.
func Load(path string) ([]model.SkillRecord, error) {
	logging.Debug("loading index", logging.Path(path))

	// #nosec G304 - path is supplied by configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceError{Path: path, Kind: ErrSourceMissing, Err: err}
		}
		return nil, fmt.Errorf("failed to read index %s: %w", path, err)
	}

	records, err := Decode(data, formatFor(path))
	if err != nil {
		return nil, &SourceError{Path: path, Kind: ErrSourceMalformed, Err: err}
	}

	logging.Debug("index loaded", logging.Path(path), logging.Count(len(records)))
	return records, nil
}

// Format identifies the encoding of an index file.
type Format string

const (
	// FormatJSON is the canonical skills_index.json encoding.
	FormatJSON Format = "json"
	// FormatYAML decodes the same list of records written as YAML.
	FormatYAML Format = "yaml"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data as a list of skill records.
// The top level must be a list; each element must be an object whose known
// keys hold strings (or null). Unknown keys are ignored.
func Decode(data []byte, format Format) ([]model.SkillRecord, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported index format %q", format)
	}
}

func decodeJSON(data []byte) ([]model.SkillRecord, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, err
	}
	if elems == nil && bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, errors.New("index is null, expected a list")
	}

	records := make([]model.SkillRecord, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, fmt.Errorf("element %d: expected a skill object, got %s", i, elem)
		}
		if err := json.Unmarshal(elem, &records[i]); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return records, nil
}

func decodeYAML(data []byte) ([]model.SkillRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, errors.New("index is empty, expected a list")
	}
	root := node.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list of skills", root.Line)
	}
	for i, elem := range root.Content {
		target := elem
		if target.Kind == yaml.AliasNode && target.Alias != nil {
			target = target.Alias
		}
		if target.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: element %d: expected a skill mapping", elem.Line, i)
		}
	}

	records := []model.SkillRecord{}
	if err := root.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}
