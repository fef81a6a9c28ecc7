package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/partsync/bomcompare/internal/bom"
)

// Excel caps sheet names at 31 characters.
const maxSheetNameLen = 31

var sheetHeader = []any{
	"part_number", "status",
	"master_quantity", "master_ref_designators", "master_description",
	"target_quantity", "target_ref_designators", "target_description",
	"mismatched_fields",
}

// WriteXLSX renders the session as a workbook with one sheet per
// target, one row per diff entry.
func WriteXLSX(w io.Writer, session *bom.ComparisonSession) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, result := range session.Targets {
		name := sheetName(i, result.Target.Filename)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := f.SetSheetRow(name, "A1", &sheetHeader); err != nil {
			return fmt.Errorf("failed to write header for %s: %w", name, err)
		}
		for rowIdx, entry := range result.Entries {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
			if err != nil {
				return err
			}
			row := entryRow(entry)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("failed to write row for %s: %w", name, err)
			}
		}
	}

	// Drop the default sheet so target sheets come first.
	if len(session.Targets) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func entryRow(entry bom.DiffEntry) []any {
	row := []any{entry.PartNumber, string(entry.Status)}
	row = append(row, recordCells(entry.Master)...)
	row = append(row, recordCells(entry.Target)...)
	row = append(row, strings.Join(entry.MismatchedFields, ", "))
	return row
}

func recordCells(r *bom.PartRecord) []any {
	if r == nil {
		return []any{"", "", ""}
	}
	return []any{r.Quantity, strings.Join(r.RefDesignators, ", "), r.Description}
}

func sheetName(index int, filename string) string {
	name := fmt.Sprintf("target_%d_%s", index+1, filename)
	// Characters Excel forbids in sheet names.
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen]
	}
	return name
}
