package extract

import (
	"strings"

	"github.com/partsync/bomcompare/internal/bom"
)

// TxtExtractor reads plain text tables. The delimiter is sniffed from
// the header line: comma first, then tab, then whitespace-run.
type TxtExtractor struct{}

func (e *TxtExtractor) Format() bom.Format { return bom.FormatTxt }

func (e *TxtExtractor) Extract(data []byte) (*Table, error) {
	data = normalizeTextBytes(data)

	lines := strings.Split(string(data), "\n")
	table := &Table{}
	var split func(string) []string

	for i, line := range lines {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" {
			continue
		}
		if table.Headers == nil {
			split = sniffSplitter(line)
			table.Headers = split(line)
			continue
		}
		table.Rows = append(table.Rows, Row{Index: i + 1, Cells: split(line)})
	}

	if table.Headers == nil {
		return nil, &bom.ParseError{Message: "file contains no data"}
	}
	return table, nil
}

// sniffSplitter picks the split strategy from the header line.
func sniffSplitter(header string) func(string) []string {
	for _, d := range []string{",", "\t"} {
		if strings.Contains(header, d) {
			delim := d
			return func(line string) []string {
				return trimAll(strings.Split(line, delim))
			}
		}
	}
	return strings.Fields
}
