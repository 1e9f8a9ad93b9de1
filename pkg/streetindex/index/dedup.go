// Package index groups street entries by name and classifies them into
// printable references.
package index

import "github.com/ukaji3/streetindex-go/pkg/streetindex/models"

// Deduplicate groups entries by street name, collapsing repeated positions.
// The result does not depend on the order of entries.
//
// Input:
//
//	Mayer Street A4
//	Mayer Street A5
//	Mayer Street A4
//
// Output:
//
//	Mayer Street -> [A4, A5]
func Deduplicate(entries []models.StreetEntry) *models.DeduplicatedRoads {
	roads := models.NewDeduplicatedRoads()
	for _, e := range entries {
		roads.Add(e.StreetName, e.Position)
	}
	return roads
}

// Merge returns the per-street union of a and b. Neither input is modified.
// Merge is associative and commutative, so partial results built from
// disjoint batches of labels can be combined in any order.
func Merge(a, b *models.DeduplicatedRoads) *models.DeduplicatedRoads {
	out := models.NewDeduplicatedRoads()
	for _, src := range []*models.DeduplicatedRoads{a, b} {
		if src == nil {
			continue
		}
		for _, name := range src.Streets() {
			for _, pos := range src.Positions(name) {
				out.Add(name, pos)
			}
		}
	}
	return out
}
