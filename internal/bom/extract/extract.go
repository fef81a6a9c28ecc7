// Package extract turns raw file bytes into ordered tabular rows.
// One extractor per supported format, all satisfying the same contract;
// adding a format means adding one extractor, not editing a dispatch
// chain.
package extract

import (
	"unicode/utf8"

	"github.com/partsync/bomcompare/internal/bom"
)

// Row is one raw data row. Index is the 1-based position of the row in
// the source file, kept for diagnostics.
type Row struct {
	Index int
	Cells []string
}

// Table is the raw tabular output of an extractor: a header row plus
// data rows mapped positionally to it. Warnings record rows the
// extractor had to drop (PDF alignment failures, odd DOCX tables);
// they are recoverable and never fail the extraction.
type Table struct {
	Headers  []string
	Rows     []Row
	Warnings []bom.RowWarning
}

// Extractor produces a raw table from a file's bytes. Implementations
// return *bom.ParseError when the bytes cannot be decoded as their
// format; they never return an empty table for a failed read.
type Extractor interface {
	Format() bom.Format
	Extract(data []byte) (*Table, error)
}

// Config carries the extraction tunables.
type Config struct {
	// PDFAlignTolerance is the maximum horizontal drift, in PDF points,
	// for a token to count as aligned with a detected column.
	PDFAlignTolerance float64
}

// ForFormat returns the extractor for the given format.
func ForFormat(f bom.Format, cfg Config) (Extractor, error) {
	switch f {
	case bom.FormatXlsx:
		return &XlsxExtractor{}, nil
	case bom.FormatCsv:
		return &CsvExtractor{}, nil
	case bom.FormatTxt:
		return &TxtExtractor{}, nil
	case bom.FormatDocx:
		return &DocxExtractor{}, nil
	case bom.FormatPdf:
		return &PdfExtractor{AlignTolerance: cfg.PDFAlignTolerance}, nil
	default:
		return nil, &bom.UnsupportedFormatError{Filename: string(f)}
	}
}

// normalizeTextBytes strips a UTF-8 BOM and falls back to a latin-1
// reinterpretation when the bytes are not valid UTF-8.
func normalizeTextBytes(data []byte) []byte {
	data = stripUTF8BOM(data)
	if utf8.Valid(data) {
		return data
	}
	return decodeLatin1(data)
}

func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

func decodeLatin1(data []byte) []byte {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return []byte(string(runes))
}
