package extract

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/partsync/bomcompare/internal/bom"
)

// CsvExtractor reads delimited text with delimiter sniffing. The first
// non-empty row is the header row; data rows map positionally to it.
type CsvExtractor struct{}

func (e *CsvExtractor) Format() bom.Format { return bom.FormatCsv }

func (e *CsvExtractor) Extract(data []byte) (*Table, error) {
	data = normalizeTextBytes(data)

	headerLine := firstNonEmptyLine(data)
	if headerLine == "" {
		return nil, &bom.ParseError{Message: "file contains no data"}
	}
	delimiter, count := detectDelimiter(headerLine)
	if count == 0 {
		return nil, &bom.ParseError{Message: "could not detect a delimiter"}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	table := &Table{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &bom.ParseError{Message: "malformed delimited data", Err: err}
		}
		line, _ := reader.FieldPos(0)

		if emptyRecord(record) {
			continue
		}
		if table.Headers == nil {
			table.Headers = trimAll(record)
			continue
		}
		table.Rows = append(table.Rows, Row{Index: line, Cells: trimAll(record)})
	}

	if table.Headers == nil {
		return nil, &bom.ParseError{Message: "file contains no data"}
	}
	return table, nil
}

// firstNonEmptyLine returns the first line with content; the delimiter
// is sniffed from it.
func firstNonEmptyLine(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line != "" {
			return line
		}
	}
	return ""
}

// detectDelimiter picks the delimiter that splits the line into the
// most fields.
func detectDelimiter(line string) (rune, int) {
	delimiters := []rune{';', '\t', ',', '|'}
	bestDelimiter := rune(0)
	bestCount := 0
	for _, d := range delimiters {
		count := strings.Count(line, string(d))
		if count > bestCount {
			bestCount = count
			bestDelimiter = d
		}
	}
	return bestDelimiter, bestCount
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimAll(record []string) []string {
	cells := make([]string, len(record))
	for i, cell := range record {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}
