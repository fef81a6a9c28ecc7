// Package normalize cleans mapped raw rows into canonical PartRecords:
// quantity coercion, reference-designator splitting, and duplicate
// part-number merging.
package normalize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/partsync/bomcompare/internal/bom"
	"github.com/partsync/bomcompare/internal/bom/columns"
	"github.com/partsync/bomcompare/internal/bom/extract"
)

// MergePolicy selects how duplicate part numbers are merged.
type MergePolicy string

const (
	// MergeSum sums quantities across duplicate rows. This is a
	// documented policy choice, not legacy behavior.
	MergeSum MergePolicy = "sum"
	// MergeFirst keeps the quantity of the first occurrence.
	MergeFirst MergePolicy = "first"
)

// Result is the normalization output: the canonical record set plus
// warnings for rows that had to be dropped. Row failures are
// recoverable and never fail the document.
type Result struct {
	Records  []bom.PartRecord
	Warnings []bom.RowWarning
}

// Records converts a mapped raw table into canonical PartRecords.
// Rows with an empty part number or an unusable quantity are dropped
// with a warning; duplicate part numbers are merged per policy.
func Records(table *extract.Table, mapping columns.Mapping, policy MergePolicy) Result {
	result := Result{Warnings: append([]bom.RowWarning(nil), table.Warnings...)}

	raw := make([]bom.PartRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		key := bom.NormalizeKey(cell(row.Cells, mapping.PartNumber))
		if key == "" {
			result.Warnings = append(result.Warnings, bom.RowWarning{
				Row:    row.Index,
				Reason: "empty part number",
			})
			continue
		}

		qtyText := cell(row.Cells, mapping.Quantity)
		qty, err := parseQuantity(qtyText)
		if err != nil {
			result.Warnings = append(result.Warnings, bom.RowWarning{
				Row:    row.Index,
				Reason: fmt.Sprintf("invalid quantity %q: %v", qtyText, err),
			})
			continue
		}

		raw = append(raw, bom.PartRecord{
			PartNumber:     key,
			Quantity:       qty,
			RefDesignators: SplitRefDesignators(cell(row.Cells, mapping.RefDesignators)),
			Description:    cell(row.Cells, mapping.Description),
			SourceRow:      row.Index,
		})
	}

	result.Records = Merge(raw, policy)
	return result
}

// Merge deduplicates records by part number: quantities combined per
// policy, designators unioned, the first description kept. First-seen
// order is preserved, so merging an already-merged set is a no-op.
func Merge(records []bom.PartRecord, policy MergePolicy) []bom.PartRecord {
	merged := make([]bom.PartRecord, 0, len(records))
	index := make(map[string]int, len(records))

	for _, r := range records {
		i, seen := index[r.PartNumber]
		if !seen {
			index[r.PartNumber] = len(merged)
			r.RefDesignators = dedupeSorted(r.RefDesignators)
			merged = append(merged, r)
			continue
		}
		if policy != MergeFirst {
			merged[i].Quantity += r.Quantity
		}
		merged[i].RefDesignators = dedupeSorted(append(merged[i].RefDesignators, r.RefDesignators...))
	}
	return merged
}

// SplitRefDesignators splits a designator cell on comma, semicolon and
// whitespace runs, returning a sorted deduplicated set.
func SplitRefDesignators(cellText string) []string {
	fields := strings.FieldsFunc(cellText, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return dedupeSorted(fields)
}

func dedupeSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// parseQuantity coerces quantity text to a non-negative integer.
// Spreadsheet exports often render integers as floats ("10.0"), so an
// integral float is accepted.
func parseQuantity(text string) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("empty")
	}
	if qty, err := strconv.Atoi(text); err == nil {
		if qty < 0 {
			return 0, fmt.Errorf("negative")
		}
		return qty, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if f < 0 {
		return 0, fmt.Errorf("negative")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}
