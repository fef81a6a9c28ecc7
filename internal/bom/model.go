// Package bom defines the canonical part-record model shared by the
// extraction, normalization and comparison layers.
package bom

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format identifies one of the supported input file formats.
type Format string

const (
	FormatXlsx Format = "xlsx"
	FormatCsv  Format = "csv"
	FormatTxt  Format = "txt"
	FormatDocx Format = "docx"
	FormatPdf  Format = "pdf"
)

// Role distinguishes the authoritative document from the candidates.
type Role string

const (
	RoleMaster Role = "master"
	RoleTarget Role = "target"
)

// Canonical field names. These are part of the output contract and must
// not change; downstream consumers match on them bit-exactly.
const (
	FieldPartNumber     = "part_number"
	FieldQuantity       = "quantity"
	FieldRefDesignators = "ref_designators"
	FieldDescription    = "description"
)

// PartRecord is one normalized BOM line. PartNumber is the canonical
// key (uppercased, whitespace-collapsed) and is unique within a
// document after normalization. RefDesignators is kept sorted so that
// set equality is plain slice equality.
type PartRecord struct {
	PartNumber     string   `json:"part_number"`
	Quantity       int      `json:"quantity"`
	RefDesignators []string `json:"ref_designators"`
	Description    string   `json:"description"`
	SourceRow      int      `json:"source_row"`
}

// NormalizeKey produces the canonical form of a part number.
func NormalizeKey(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}

// SameRefDesignators reports set equality between two sorted
// designator slices. Ordering in the source file never matters.
func SameRefDesignators(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SortRefDesignators sorts a designator slice in place.
func SortRefDesignators(refs []string) {
	sort.Strings(refs)
}

// RowWarning records a data row that was dropped during normalization.
// Row warnings are recoverable; they never fail the document.
type RowWarning struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// BOMDocument is one parsed and normalized input file. It is immutable
// once normalization completes, which makes concurrent comparisons
// against the same master safe without locking.
type BOMDocument struct {
	Role     Role         `json:"role"`
	Format   Format       `json:"format"`
	Filename string       `json:"filename"`
	Records  []PartRecord `json:"records"`
	Warnings []RowWarning `json:"warnings,omitempty"`
}

// DroppedRows is the number of recoverable row-level failures.
func (d *BOMDocument) DroppedRows() int {
	return len(d.Warnings)
}

// DiffStatus categorizes one comparison outcome.
type DiffStatus string

const (
	StatusMatch    DiffStatus = "match"
	StatusMissing  DiffStatus = "missing"  // present in master, absent from target
	StatusExtra    DiffStatus = "extra"    // present in target, absent from master
	StatusMismatch DiffStatus = "mismatch" // present in both, fields differ
)

// DiffEntry is one categorized outcome for a single part number.
// Master is nil iff Status is StatusExtra; Target is nil iff Status is
// StatusMissing. MismatchedFields is non-empty iff Status is
// StatusMismatch and names the canonical fields that differ.
type DiffEntry struct {
	PartNumber       string      `json:"part_number"`
	Status           DiffStatus  `json:"status"`
	Master           *PartRecord `json:"master,omitempty"`
	Target           *PartRecord `json:"target,omitempty"`
	MismatchedFields []string    `json:"mismatched_fields,omitempty"`
}

// Summary holds the per-comparison counters. The four status counts
// always sum to the number of distinct part numbers across both sides.
type Summary struct {
	TotalMasterParts int `json:"total_master_parts"`
	TotalTargetParts int `json:"total_target_parts"`
	MissingCount     int `json:"missing_count"`
	ExtraCount       int `json:"extra_count"`
	MismatchCount    int `json:"mismatch_count"`
	MatchCount       int `json:"match_count"`
}

// Add accumulates another summary into s. Used for the session-level
// rollup, which is a plain sum across targets.
func (s *Summary) Add(other Summary) {
	s.TotalMasterParts += other.TotalMasterParts
	s.TotalTargetParts += other.TotalTargetParts
	s.MissingCount += other.MissingCount
	s.ExtraCount += other.ExtraCount
	s.MismatchCount += other.MismatchCount
	s.MatchCount += other.MatchCount
}

// TargetComparisonResult is the diff of one target against the master.
type TargetComparisonResult struct {
	Target  *BOMDocument `json:"target"`
	Entries []DiffEntry  `json:"entries"`
	Summary Summary      `json:"summary"`
}

// ComparisonSession is the result of comparing one master against all
// requested targets. Immutable once built; the history store persists
// or discards it as a whole.
type ComparisonSession struct {
	ID        uuid.UUID                `json:"id"`
	Master    *BOMDocument             `json:"master"`
	Targets   []TargetComparisonResult `json:"targets"`
	Summary   Summary                  `json:"summary"`
	CreatedAt time.Time                `json:"created_at"`
}
