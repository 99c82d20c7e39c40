package model

import "strings"

// ListSeparator joins tag and trigger tokens in flat output.
// A token that itself contains a comma cannot be recovered after joining.
const ListSeparator = ","

// Columns is the fixed column order of the exported dataset.
var Columns = []string{"id", "name", "description", "category", "risk", "source", "path", "tags", "triggers"}

// OutputRow is one denormalized skill: an index record joined with its
// catalog tags and triggers.
type OutputRow struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Risk        string `json:"risk" yaml:"risk"`
	Source      string `json:"source" yaml:"source"`
	Path        string `json:"path" yaml:"path"`
	Tags        string `json:"tags" yaml:"tags"`
	Triggers    string `json:"triggers" yaml:"triggers"`
}

// NewOutputRow builds the row for record with the given catalog lists.
// Nil lists produce empty tag/trigger fields.
func NewOutputRow(record SkillRecord, tags, triggers []string) OutputRow {
	return OutputRow{
		ID:          record.GetID(),
		Name:        record.GetName(),
		Description: record.GetDescription(),
		Category:    record.GetCategory(),
		Risk:        record.GetRisk(),
		Source:      record.GetSource(),
		Path:        record.GetPath(),
		Tags:        strings.Join(tags, ListSeparator),
		Triggers:    strings.Join(triggers, ListSeparator),
	}
}

// Values returns the row's fields in Columns order.
func (r OutputRow) Values() []string {
	return []string{r.ID, r.Name, r.Description, r.Category, r.Risk, r.Source, r.Path, r.Tags, r.Triggers}
}
