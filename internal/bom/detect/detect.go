// Package detect classifies input files into one of the supported BOM
// formats using the filename extension and, when that fails, the byte
// signature.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/partsync/bomcompare/internal/bom"
)

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// Detect returns the format of the given file. The extension wins when
// it names a supported format; otherwise the content signature decides.
// Returns *bom.UnsupportedFormatError when neither matches.
func Detect(filename string, data []byte) (bom.Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "xlsx":
		return bom.FormatXlsx, nil
	case "csv":
		return bom.FormatCsv, nil
	case "txt":
		return bom.FormatTxt, nil
	case "docx":
		return bom.FormatDocx, nil
	case "pdf":
		return bom.FormatPdf, nil
	}

	if f, ok := sniff(data); ok {
		return f, nil
	}
	return "", &bom.UnsupportedFormatError{Filename: filename}
}

// sniff inspects the leading bytes. OOXML containers (xlsx, docx) share
// the zip magic; the inner directory name tells them apart.
func sniff(data []byte) (bom.Format, bool) {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return bom.FormatPdf, true
	case bytes.HasPrefix(data, zipMagic):
		if bytes.Contains(data, []byte("word/")) {
			return bom.FormatDocx, true
		}
		if bytes.Contains(data, []byte("xl/")) {
			return bom.FormatXlsx, true
		}
		return "", false
	}

	if len(data) == 0 || !utf8.Valid(data) {
		return "", false
	}
	head := firstLine(data)
	if strings.ContainsAny(head, ",;\t|") {
		return bom.FormatCsv, true
	}
	if strings.TrimSpace(head) != "" {
		return bom.FormatTxt, true
	}
	return "", false
}

func firstLine(data []byte) string {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	return string(data)
}
