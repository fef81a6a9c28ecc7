package extract

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/ledongthuc/pdf"

	"github.com/partsync/bomcompare/internal/bom"
)

// lineYTolerance groups glyphs whose baselines differ by less than this
// many points into the same text line.
const lineYTolerance = 2.0

// PdfExtractor recovers table-like text from text-based PDFs. Glyphs
// are merged into tokens, tokens are clustered into lines by baseline,
// and lines are aligned against the column positions of the first line
// (the header). Rows whose token count mismatches the detected column
// count are dropped with a warning instead of failing the extraction.
// Scanned/image PDFs yield no text and fail with a ParseError; no OCR
// is attempted.
type PdfExtractor struct {
	// AlignTolerance is the maximum horizontal drift, in points, for a
	// token to count as aligned with a column anchor.
	AlignTolerance float64
}

func (e *PdfExtractor) Format() bom.Format { return bom.FormatPdf }

func (e *PdfExtractor) Extract(data []byte) (out *Table, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &bom.ParseError{Message: fmt.Sprintf("corrupt pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &bom.ParseError{Message: "not a valid pdf", Err: err}
	}

	var lines [][]token
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		lines = append(lines, tokenizePage(page.Content().Text)...)
	}

	if len(lines) == 0 {
		return nil, &bom.ParseError{Message: "pdf contains no extractable text (scanned documents are not supported)"}
	}

	tol := e.AlignTolerance
	if tol <= 0 {
		tol = 6.0
	}
	return tableFromLines(lines, tol), nil
}

// token is one whitespace-separated text run with its horizontal
// position on the page.
type token struct {
	x float64
	s string
}

// tokenizePage merges positioned glyphs into tokens and groups them
// into lines. PDF y-coordinates grow upward, so lines are ordered by
// descending y to recover reading order.
func tokenizePage(texts []pdf.Text) [][]token {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > lineYTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines [][]token
	var line []token
	var cur *token
	var curEnd, curY float64

	flushToken := func() {
		if cur != nil {
			line = append(line, *cur)
			cur = nil
		}
	}
	flushLine := func() {
		flushToken()
		if len(line) > 0 {
			lines = append(lines, line)
			line = nil
		}
	}

	for _, t := range sorted {
		if t.S == "" {
			continue
		}
		if cur == nil && len(line) == 0 {
			curY = t.Y
		}
		if math.Abs(t.Y-curY) > lineYTolerance {
			flushLine()
			curY = t.Y
		}

		// A gap wider than a fraction of the font size starts a new token.
		gap := t.FontSize * 0.3
		if gap <= 0 {
			gap = 2.0
		}
		if cur != nil && t.X-curEnd > gap {
			flushToken()
		}
		if cur == nil {
			cur = &token{x: t.X, s: t.S}
		} else {
			cur.s += t.S
		}
		curEnd = t.X + t.W
	}
	flushLine()
	return lines
}

// tableFromLines treats the first line as the header and aligns every
// following line against the header's token x-positions.
func tableFromLines(lines [][]token, tol float64) *Table {
	header := lines[0]
	anchors := make([]float64, len(header))
	headers := make([]string, len(header))
	for i, t := range header {
		anchors[i] = t.x
		headers[i] = t.s
	}

	table := &Table{Headers: headers}
	for i, line := range lines[1:] {
		rowNum := i + 2
		if len(line) != len(anchors) {
			table.Warnings = append(table.Warnings, bom.RowWarning{
				Row:    rowNum,
				Reason: fmt.Sprintf("expected %d columns, found %d", len(anchors), len(line)),
			})
			continue
		}
		if !aligned(line, anchors, tol) {
			table.Warnings = append(table.Warnings, bom.RowWarning{
				Row:    rowNum,
				Reason: "row does not align with detected columns",
			})
			continue
		}
		cells := make([]string, len(line))
		for j, t := range line {
			cells[j] = t.s
		}
		table.Rows = append(table.Rows, Row{Index: rowNum, Cells: cells})
	}
	return table
}

// aligned reports whether every token starts within tol points of its
// column anchor.
func aligned(line []token, anchors []float64, tol float64) bool {
	for i, t := range line {
		if math.Abs(t.x-anchors[i]) > tol {
			return false
		}
	}
	return true
}
