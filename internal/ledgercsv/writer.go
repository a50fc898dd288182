package ledgercsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// Write emits entries with the canonical header. The output can be read
// back with Reader.
func Write(w io.Writer, entries []model.LedgerEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.ID,
			e.Day(),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			string(e.Direction),
			e.Category,
			e.Description,
			e.PaymentMethod,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write entry %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
