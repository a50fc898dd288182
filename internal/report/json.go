package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/ledger-pulse/internal/analytics"
)

// WriteJSON writes report as indented JSON followed by a newline.
func WriteJSON(w io.Writer, report *analytics.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
