package dataset

import (
	"github.com/klauern/skillcatalog/internal/catalog"
	"github.com/klauern/skillcatalog/internal/model"
)

// Merge returns one row per record, in record order. A nil catalog behaves
// like an empty one.
func Merge(records []model.SkillRecord, cat *catalog.Catalog) []model.OutputRow {
	return mergeRows(records, cat, nil)
}

func mergeRows(records []model.SkillRecord, cat *catalog.Catalog, onRow func()) []model.OutputRow {
	rows := make([]model.OutputRow, 0, len(records))
	for _, record := range records {
		id := record.GetID()
		rows = append(rows, model.NewOutputRow(record, cat.Tags(id), cat.Triggers(id)))
		if onRow != nil {
			onRow()
		}
	}
	return rows
}

// Unmatched returns the catalog ids that have no index record, in catalog
// order. These rows never reach the output.
func Unmatched(records []model.SkillRecord, cat *catalog.Catalog) []string {
	known := make(map[string]struct{}, len(records))
	for _, record := range records {
		known[record.GetID()] = struct{}{}
	}

	var unmatched []string
	for _, id := range cat.IDs() {
		if _, ok := known[id]; !ok {
			unmatched = append(unmatched, id)
		}
	}
	return unmatched
}
