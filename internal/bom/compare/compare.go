// Package compare computes categorized diffs between a master part set
// and each target, and aggregates them into a comparison session.
package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/partsync/bomcompare/internal/bom"
)

// Diff compares master against target and returns one entry per part
// number in the union of both sets, sorted ascending by part number.
// The function is pure: identical inputs always yield an identical
// sequence, never the insertion order of the source files.
func Diff(master, target []bom.PartRecord) ([]bom.DiffEntry, error) {
	masterIdx, err := indexByPart(master, "master")
	if err != nil {
		return nil, err
	}
	targetIdx, err := indexByPart(target, "target")
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(masterIdx)+len(targetIdx))
	for k := range masterIdx {
		keys = append(keys, k)
	}
	for k := range targetIdx {
		if _, ok := masterIdx[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	entries := make([]bom.DiffEntry, 0, len(keys))
	for _, key := range keys {
		m, inMaster := masterIdx[key]
		t, inTarget := targetIdx[key]

		switch {
		case inMaster && !inTarget:
			entries = append(entries, bom.DiffEntry{PartNumber: key, Status: bom.StatusMissing, Master: m})
		case !inMaster && inTarget:
			entries = append(entries, bom.DiffEntry{PartNumber: key, Status: bom.StatusExtra, Target: t})
		default:
			entry := bom.DiffEntry{PartNumber: key, Master: m, Target: t}
			entry.MismatchedFields = mismatchedFields(m, t)
			if len(entry.MismatchedFields) == 0 {
				entry.Status = bom.StatusMatch
			} else {
				entry.Status = bom.StatusMismatch
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// mismatchedFields names exactly the canonical fields that differ.
// Quantity is exact integer equality, designators set equality,
// description trimmed case-sensitive string equality.
func mismatchedFields(m, t *bom.PartRecord) []string {
	var fields []string
	if m.Quantity != t.Quantity {
		fields = append(fields, bom.FieldQuantity)
	}
	if !bom.SameRefDesignators(m.RefDesignators, t.RefDesignators) {
		fields = append(fields, bom.FieldRefDesignators)
	}
	if strings.TrimSpace(m.Description) != strings.TrimSpace(t.Description) {
		fields = append(fields, bom.FieldDescription)
	}
	return fields
}

// indexByPart builds a key-indexed view of a record set. A duplicate
// part number here means normalization failed its invariant; that is
// an implementation bug, not bad input.
func indexByPart(records []bom.PartRecord, side string) (map[string]*bom.PartRecord, error) {
	idx := make(map[string]*bom.PartRecord, len(records))
	for i := range records {
		r := &records[i]
		if _, dup := idx[r.PartNumber]; dup {
			return nil, &bom.ComparisonError{
				Message: fmt.Sprintf("duplicate part number %q survived normalization in %s set", r.PartNumber, side),
			}
		}
		idx[r.PartNumber] = r
	}
	return idx, nil
}
