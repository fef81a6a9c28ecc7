// Package config loads the comparison engine configuration from
// environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	// Load environment variables from a .env file when present.
	_ "github.com/joho/godotenv/autoload"
)

// MergePolicy selects how duplicate part numbers within one document
// are merged during normalization.
type MergePolicy string

const (
	// MergeSum sums quantities across duplicate rows (default).
	MergeSum MergePolicy = "sum"
	// MergeFirst keeps the quantity of the first occurrence.
	MergeFirst MergePolicy = "first"
)

// Config holds all tunables consumed by the comparison core.
type Config struct {
	// MaxTargets bounds how many target documents one session accepts.
	MaxTargets int

	// Aliases are the per-field column-name alias lists used by the
	// column mapper. Matching is case-insensitive.
	Aliases AliasConfig

	// Merge is the duplicate part-number merge policy.
	Merge MergePolicy

	// PDFAlignTolerance is the maximum horizontal drift, in PDF points,
	// for a token to count as aligned with a detected column.
	PDFAlignTolerance float64

	// History configures the optional Postgres-backed session store.
	History HistoryConfig
}

// AliasConfig lists accepted raw header names per canonical field.
type AliasConfig struct {
	PartNumber     []string
	Quantity       []string
	RefDesignators []string
	Description    []string
}

// HistoryConfig holds the Postgres connection settings for the history
// store collaborator. Only used when the store is enabled.
type HistoryConfig struct {
	Enabled bool
	DSN     string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxTargets: 5,
		Aliases: AliasConfig{
			PartNumber: []string{
				"mpn", "part number", "part_number", "p/n", "pn",
				"part no", "manufacturer part number", "part",
			},
			Quantity: []string{
				"quantity", "qty", "qty.", "q'ty", "count",
			},
			RefDesignators: []string{
				"ref_des", "ref des", "refdes", "reference designator",
				"reference designators", "reference", "designator",
			},
			Description: []string{
				"description", "desc", "part description", "comment",
			},
		},
		Merge:             MergeSum,
		PDFAlignTolerance: 6.0,
	}
}

// Load reads configuration from environment variables on top of the
// defaults.
func Load() (*Config, error) {
	cfg := Default()

	cfg.MaxTargets = getEnvAsInt("BOM_MAX_TARGETS", cfg.MaxTargets)
	cfg.PDFAlignTolerance = getEnvAsFloat("BOM_PDF_ALIGN_TOLERANCE", cfg.PDFAlignTolerance)

	if v := getEnv("BOM_MERGE_POLICY", string(cfg.Merge)); v != "" {
		switch MergePolicy(v) {
		case MergeSum, MergeFirst:
			cfg.Merge = MergePolicy(v)
		default:
			return nil, errors.New("BOM_MERGE_POLICY must be \"sum\" or \"first\"")
		}
	}

	cfg.Aliases.PartNumber = getEnvAsList("BOM_ALIASES_PART_NUMBER", cfg.Aliases.PartNumber)
	cfg.Aliases.Quantity = getEnvAsList("BOM_ALIASES_QUANTITY", cfg.Aliases.Quantity)
	cfg.Aliases.RefDesignators = getEnvAsList("BOM_ALIASES_REF_DESIGNATORS", cfg.Aliases.RefDesignators)
	cfg.Aliases.Description = getEnvAsList("BOM_ALIASES_DESCRIPTION", cfg.Aliases.Description)

	cfg.History.DSN = getEnv("BOM_HISTORY_DSN", "")
	cfg.History.Enabled = cfg.History.DSN != ""

	if cfg.MaxTargets < 1 {
		return nil, errors.New("BOM_MAX_TARGETS must be at least 1")
	}
	if cfg.PDFAlignTolerance <= 0 {
		return nil, errors.New("BOM_PDF_ALIGN_TOLERANCE must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
