package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxTargets)
	assert.Equal(t, MergeSum, cfg.Merge)
	assert.Equal(t, 6.0, cfg.PDFAlignTolerance)
	assert.False(t, cfg.History.Enabled)
	assert.Contains(t, cfg.Aliases.PartNumber, "mpn")
	assert.Contains(t, cfg.Aliases.Quantity, "qty")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BOM_MAX_TARGETS", "3")
	t.Setenv("BOM_MERGE_POLICY", "first")
	t.Setenv("BOM_PDF_ALIGN_TOLERANCE", "12.5")
	t.Setenv("BOM_ALIASES_PART_NUMBER", "item code, sku")
	t.Setenv("BOM_HISTORY_DSN", "postgres://localhost/bom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxTargets)
	assert.Equal(t, MergeFirst, cfg.Merge)
	assert.Equal(t, 12.5, cfg.PDFAlignTolerance)
	assert.Equal(t, []string{"item code", "sku"}, cfg.Aliases.PartNumber)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "postgres://localhost/bom", cfg.History.DSN)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad merge policy", func(t *testing.T) {
		t.Setenv("BOM_MERGE_POLICY", "average")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("zero max targets", func(t *testing.T) {
		t.Setenv("BOM_MAX_TARGETS", "0")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("negative tolerance", func(t *testing.T) {
		t.Setenv("BOM_PDF_ALIGN_TOLERANCE", "-1")
		_, err := Load()
		require.Error(t, err)
	})
}
