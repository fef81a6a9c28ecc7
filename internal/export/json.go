// Package export renders a finished comparison session as JSON or as a
// spreadsheet. Both renderings are direct structural serializations of
// the session; no additional computation happens here.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/partsync/bomcompare/internal/bom"
)

// WriteJSON serializes the session, indented for operator consumption.
func WriteJSON(w io.Writer, session *bom.ComparisonSession) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(session); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return nil
}
