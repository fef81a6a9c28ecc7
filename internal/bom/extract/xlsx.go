package extract

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/partsync/bomcompare/internal/bom"
)

// XlsxExtractor reads the first sheet that contains data. The first
// non-empty row is the header row; excelize coerces numeric cells to
// their string form.
type XlsxExtractor struct{}

func (e *XlsxExtractor) Format() bom.Format { return bom.FormatXlsx }

func (e *XlsxExtractor) Extract(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &bom.ParseError{Message: "not a valid xlsx workbook", Err: err}
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, &bom.ParseError{Message: "failed to read sheet " + sheet, Err: err}
		}
		if table := tableFromRows(rows); table != nil {
			return table, nil
		}
	}
	return nil, &bom.ParseError{Message: "workbook contains no data"}
}

// tableFromRows builds a table from sheet rows, or nil if the sheet is
// empty.
func tableFromRows(rows [][]string) *Table {
	table := &Table{}
	for i, row := range rows {
		if emptyRecord(row) {
			continue
		}
		if table.Headers == nil {
			table.Headers = trimAll(row)
			continue
		}
		table.Rows = append(table.Rows, Row{Index: i + 1, Cells: trimAll(row)})
	}
	if table.Headers == nil {
		return nil
	}
	return table
}
