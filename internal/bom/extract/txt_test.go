package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsync/bomcompare/internal/bom"
)

func TestTxtExtract_WhitespaceColumns(t *testing.T) {
	data := []byte("MPN     Qty\nR-100   2\nC-200   1\n")

	table, err := (&TxtExtractor{}).Extract(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"MPN", "Qty"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"R-100", "2"}, table.Rows[0].Cells)
	assert.Equal(t, 2, table.Rows[0].Index)
}

func TestTxtExtract_CommaPreferredOverWhitespace(t *testing.T) {
	data := []byte("Part Number, Qty\nR-100, 2\n")

	table, err := (&TxtExtractor{}).Extract(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Part Number", "Qty"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"R-100", "2"}, table.Rows[0].Cells)
}

func TestTxtExtract_TabDelimited(t *testing.T) {
	data := []byte("MPN\tQty\nR-100\t2\n")

	table, err := (&TxtExtractor{}).Extract(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"MPN", "Qty"}, table.Headers)
}

func TestTxtExtract_SkipsBlankLines(t *testing.T) {
	data := []byte("\nMPN Qty\n\nR-100 2\n")

	table, err := (&TxtExtractor{}).Extract(data)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 4, table.Rows[0].Index)
}

func TestTxtExtract_EmptyFile(t *testing.T) {
	_, err := (&TxtExtractor{}).Extract([]byte("\n\n  \n"))
	var pe *bom.ParseError
	require.ErrorAs(t, err, &pe)
}
