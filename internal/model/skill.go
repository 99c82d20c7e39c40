package model

// Field defaults applied when an index record omits the key.
const (
	DefaultCategory = "uncategorized"
	DefaultRisk     = "unknown"
	DefaultSource   = "unknown"
)

// SkillRecord is one entry of the canonical skills index.
// Every field is optional; a nil pointer means the key was absent (or null)
// and the accessors substitute the field's default.
type SkillRecord struct {
	ID          *string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        *string `json:"name,omitempty" yaml:"name,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    *string `json:"category,omitempty" yaml:"category,omitempty"`
	Risk        *string `json:"risk,omitempty" yaml:"risk,omitempty"`
	Source      *string `json:"source,omitempty" yaml:"source,omitempty"`
	Path        *string `json:"path,omitempty" yaml:"path,omitempty"`
}

// GetID returns the record's identifier, or "" when absent.
func (r SkillRecord) GetID() string { return valueOr(r.ID, "") }

// GetName returns the skill name, or "" when absent.
func (r SkillRecord) GetName() string { return valueOr(r.Name, "") }

// GetDescription returns the description, or "" when absent.
func (r SkillRecord) GetDescription() string { return valueOr(r.Description, "") }

// GetCategory returns the category, or DefaultCategory when absent.
func (r SkillRecord) GetCategory() string { return valueOr(r.Category, DefaultCategory) }

// GetRisk returns the risk classification, or DefaultRisk when absent.
func (r SkillRecord) GetRisk() string { return valueOr(r.Risk, DefaultRisk) }

// GetSource returns the provenance label, or DefaultSource when absent.
func (r SkillRecord) GetSource() string { return valueOr(r.Source, DefaultSource) }

// GetPath returns the filesystem path, or "" when absent.
func (r SkillRecord) GetPath() string { return valueOr(r.Path, "") }

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// String returns a pointer to s. Handy for building records in code and tests.
func String(s string) *string { return &s }

// CatalogEntry is a data row extracted from the markdown catalog.
type CatalogEntry struct {
	ID       string
	Tags     []string
	Triggers []string
}
