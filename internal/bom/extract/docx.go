package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/partsync/bomcompare/internal/bom"
)

// DocxExtractor scans table structures inside a Word document. The
// first row of each table is a header row; tables are concatenated in
// document order. Tables whose column count disagrees with the first
// table are skipped with a warning.
type DocxExtractor struct{}

func (e *DocxExtractor) Format() bom.Format { return bom.FormatDocx }

func (e *DocxExtractor) Extract(data []byte) (*Table, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &bom.ParseError{Message: "not a valid docx archive", Err: err}
	}

	content, err := readArchiveFile(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}

	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, &bom.ParseError{Message: "malformed document xml", Err: err}
	}

	if len(doc.Body.Tables) == 0 {
		return nil, &bom.ParseError{Message: "document contains no tables"}
	}

	table := &Table{}
	rowNum := 0
	for ti, t := range doc.Body.Tables {
		if len(t.Rows) == 0 {
			continue
		}
		header := t.Rows[0].cells()
		if table.Headers == nil {
			table.Headers = header
		} else if len(header) != len(table.Headers) {
			rowNum += len(t.Rows)
			table.Warnings = append(table.Warnings, bom.RowWarning{
				Row:    rowNum,
				Reason: fmt.Sprintf("table %d has %d columns, expected %d; skipped", ti+1, len(header), len(table.Headers)),
			})
			continue
		}
		rowNum++ // header row
		for _, r := range t.Rows[1:] {
			rowNum++
			cells := r.cells()
			if emptyRecord(cells) {
				continue
			}
			table.Rows = append(table.Rows, Row{Index: rowNum, Cells: cells})
		}
	}

	if table.Headers == nil {
		return nil, &bom.ParseError{Message: "document tables contain no rows"}
	}
	return table, nil
}

func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, &bom.ParseError{Message: "corrupt docx archive", Err: err}
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, &bom.ParseError{Message: "corrupt docx archive", Err: err}
		}
		return content, nil
	}
	return nil, &bom.ParseError{Message: "missing " + name}
}

// Minimal OOXML structures; encoding/xml matches local names, so the
// w: prefix needs no namespace handling.
type documentXML struct {
	Body struct {
		Tables []tableXML `xml:"tbl"`
	} `xml:"body"`
}

type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text []textXML `xml:"t"`
}

type textXML struct {
	Content string `xml:",chardata"`
}

func (r tableRowXML) cells() []string {
	cells := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		var b strings.Builder
		for _, p := range c.Paragraphs {
			for _, run := range p.Runs {
				for _, t := range run.Text {
					b.WriteString(t.Content)
				}
			}
		}
		cells[i] = strings.TrimSpace(b.String())
	}
	return cells
}
