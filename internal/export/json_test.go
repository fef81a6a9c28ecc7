package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsync/bomcompare/internal/bom"
)

func sampleSession() *bom.ComparisonSession {
	master := &bom.BOMDocument{
		Role:     bom.RoleMaster,
		Format:   bom.FormatCsv,
		Filename: "master.csv",
		Records: []bom.PartRecord{
			{PartNumber: "R-100", Quantity: 2, RefDesignators: []string{"R1", "R2"}, Description: "Resistor 1k"},
			{PartNumber: "U-300", Quantity: 1, RefDesignators: []string{"U1"}, Description: "MCU"},
		},
	}
	target := &bom.BOMDocument{
		Role:     bom.RoleTarget,
		Format:   bom.FormatCsv,
		Filename: "target.csv",
		Records: []bom.PartRecord{
			{PartNumber: "R-100", Quantity: 3, RefDesignators: []string{"R1", "R2"}, Description: "Resistor 1k"},
		},
	}
	return &bom.ComparisonSession{
		ID:     uuid.New(),
		Master: master,
		Targets: []bom.TargetComparisonResult{
			{
				Target: target,
				Entries: []bom.DiffEntry{
					{
						PartNumber:       "R-100",
						Status:           bom.StatusMismatch,
						Master:           &master.Records[0],
						Target:           &target.Records[0],
						MismatchedFields: []string{bom.FieldQuantity},
					},
					{
						PartNumber: "U-300",
						Status:     bom.StatusMissing,
						Master:     &master.Records[1],
					},
				},
				Summary: bom.Summary{
					TotalMasterParts: 2,
					TotalTargetParts: 1,
					MissingCount:     1,
					MismatchCount:    1,
				},
			},
		},
		Summary: bom.Summary{
			TotalMasterParts: 2,
			TotalTargetParts: 1,
			MissingCount:     1,
			MismatchCount:    1,
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteJSON(t *testing.T) {
	session := sampleSession()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, session))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, session.ID.String(), decoded["id"])

	targets, ok := decoded["targets"].([]any)
	require.True(t, ok)
	require.Len(t, targets, 1)

	entries := targets[0].(map[string]any)["entries"].([]any)
	require.Len(t, entries, 2)

	first := entries[0].(map[string]any)
	assert.Equal(t, "R-100", first["part_number"])
	assert.Equal(t, "mismatch", first["status"])
	assert.Equal(t, []any{"quantity"}, first["mismatched_fields"])

	second := entries[1].(map[string]any)
	assert.Equal(t, "missing", second["status"])
	_, hasTarget := second["target"]
	assert.False(t, hasTarget, "absent side omitted from output")
}
