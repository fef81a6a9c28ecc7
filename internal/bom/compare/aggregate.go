package compare

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/partsync/bomcompare/internal/bom"
)

// TargetResult runs the diff for one target document and packages the
// summary counters. The count-conservation invariant (missing + extra +
// mismatch + match == distinct parts across both sides) is checked
// defensively; a violation is a ComparisonError.
func TargetResult(master *bom.BOMDocument, target *bom.BOMDocument) (bom.TargetComparisonResult, error) {
	entries, err := Diff(master.Records, target.Records)
	if err != nil {
		return bom.TargetComparisonResult{}, err
	}

	summary := bom.Summary{
		TotalMasterParts: len(master.Records),
		TotalTargetParts: len(target.Records),
	}
	for _, e := range entries {
		switch e.Status {
		case bom.StatusMissing:
			summary.MissingCount++
		case bom.StatusExtra:
			summary.ExtraCount++
		case bom.StatusMismatch:
			summary.MismatchCount++
		case bom.StatusMatch:
			summary.MatchCount++
		}
	}

	total := summary.MissingCount + summary.ExtraCount + summary.MismatchCount + summary.MatchCount
	if total != len(entries) {
		return bom.TargetComparisonResult{}, &bom.ComparisonError{
			Message: fmt.Sprintf("summary counts (%d) do not cover %d diff entries for target %q", total, len(entries), target.Filename),
		}
	}

	return bom.TargetComparisonResult{
		Target:  target,
		Entries: entries,
		Summary: summary,
	}, nil
}

// Session assembles the per-target results into one immutable
// comparison session. The session summary is a plain sum across
// targets, used for history-listing display only.
func Session(master *bom.BOMDocument, results []bom.TargetComparisonResult) (*bom.ComparisonSession, error) {
	if master == nil || len(master.Records) == 0 {
		return nil, &bom.ValidationError{Message: "empty master BOM"}
	}
	if len(results) == 0 {
		return nil, &bom.ValidationError{Message: "no target results"}
	}

	session := &bom.ComparisonSession{
		ID:        uuid.New(),
		Master:    master,
		Targets:   results,
		CreatedAt: time.Now().UTC(),
	}
	for _, r := range results {
		session.Summary.Add(r.Summary)
	}
	return session, nil
}
