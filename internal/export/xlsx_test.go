package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	session := sampleSession()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, session))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Equal(t, "target_1_target.csv", sheets[0])

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "part_number", rows[0][0])
	assert.Equal(t, "status", rows[0][1])

	assert.Equal(t, "R-100", rows[1][0])
	assert.Equal(t, "mismatch", rows[1][1])
	assert.Equal(t, "2", rows[1][2], "master quantity")
	assert.Equal(t, "R1, R2", rows[1][3])
	assert.Equal(t, "3", rows[1][5], "target quantity")
	assert.Equal(t, "quantity", rows[1][8])

	assert.Equal(t, "U-300", rows[2][0])
	assert.Equal(t, "missing", rows[2][1])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "target_1_bom.csv", sheetName(0, "bom.csv"))
	assert.Equal(t, "target_2_a_b_c.csv", sheetName(1, "a/b:c.csv"))

	long := sheetName(0, "a_very_long_filename_that_never_ends.xlsx")
	assert.LessOrEqual(t, len(long), 31)
}
