package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsync/bomcompare/internal/bom"
)

// buildDocx assembles a minimal Word archive containing the given
// tables, each a slice of rows of cell texts.
func buildDocx(t *testing.T, tables ...[][]string) []byte {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, table := range tables {
		body.WriteString(`<w:tbl>`)
		for _, row := range table {
			body.WriteString(`<w:tr>`)
			for _, cell := range row {
				body.WriteString(`<w:tc><w:p><w:r><w:t>`)
				body.WriteString(cell)
				body.WriteString(`</w:t></w:r></w:p></w:tc>`)
			}
			body.WriteString(`</w:tr>`)
		}
		body.WriteString(`</w:tbl>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDocxExtract_SingleTable(t *testing.T) {
	data := buildDocx(t, [][]string{
		{"MPN", "Qty", "Description"},
		{"R-100", "2", "Resistor 1k"},
		{"C-200", "1", "Cap 10uF"},
	})

	table, err := (&DocxExtractor{}).Extract(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"MPN", "Qty", "Description"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"R-100", "2", "Resistor 1k"}, table.Rows[0].Cells)
	assert.Empty(t, table.Warnings)
}

func TestDocxExtract_ConcatenatesMatchingTables(t *testing.T) {
	data := buildDocx(t,
		[][]string{
			{"MPN", "Qty"},
			{"R-100", "2"},
		},
		[][]string{
			{"MPN", "Qty"},
			{"C-200", "1"},
		},
	)

	table, err := (&DocxExtractor{}).Extract(data)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"R-100", "2"}, table.Rows[0].Cells)
	assert.Equal(t, []string{"C-200", "1"}, table.Rows[1].Cells, "second table header dropped, data kept")
}

func TestDocxExtract_SkipsMismatchedTable(t *testing.T) {
	data := buildDocx(t,
		[][]string{
			{"MPN", "Qty"},
			{"R-100", "2"},
		},
		[][]string{
			{"Revision", "Author", "Date"},
			{"B", "jdoe", "2026-01-15"},
		},
	)

	table, err := (&DocxExtractor{}).Extract(data)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"R-100", "2"}, table.Rows[0].Cells)
	require.Len(t, table.Warnings, 1)
	assert.Contains(t, table.Warnings[0].Reason, "columns")
}

func TestDocxExtract_Errors(t *testing.T) {
	t.Run("not a zip", func(t *testing.T) {
		_, err := (&DocxExtractor{}).Extract([]byte("plain text"))
		var pe *bom.ParseError
		require.ErrorAs(t, err, &pe)
	})

	t.Run("zip without document xml", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("other.txt")
		require.NoError(t, err)
		_, err = f.Write([]byte("hello"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		_, err = (&DocxExtractor{}).Extract(buf.Bytes())
		var pe *bom.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Contains(t, pe.Message, "word/document.xml")
	})

	t.Run("no tables", func(t *testing.T) {
		_, err := (&DocxExtractor{}).Extract(buildDocx(t))
		var pe *bom.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Contains(t, pe.Message, "no tables")
	})
}
