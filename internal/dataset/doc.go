// Package dataset joins the skills index with the markdown catalog and
// writes the flat export.
//
// The join is a left join with the index as the base relation: every index
// record yields exactly one row, in index order, and catalog rows whose id
// is not in the index are dropped. Records without a catalog row get empty
// tags and triggers.
//
// Generate runs the whole export: load the index (fatal on failure), extract
// the catalog (a missing catalog only degrades the output), merge, and write.
package dataset
