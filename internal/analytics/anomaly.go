package analytics

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// DetectAnomalies runs the duplicate and outlier passes over entries.
// The passes are independent: an entry may appear in both.
func DetectAnomalies(entries []model.LedgerEntry, cfg AnomalyConfig) []Anomaly {
	anomalies := detectDuplicates(entries)
	anomalies = append(anomalies, detectOutliers(entries, cfg)...)
	return anomalies
}

type duplicateGroup struct {
	ids    []string
	amount float64
	day    string
	desc   string
}

// detectDuplicates groups entries by amount, calendar day, and description.
// Groups are reported in the order their first entry appears.
func detectDuplicates(entries []model.LedgerEntry) []Anomaly {
	groups := make(map[string]*duplicateGroup)
	var order []string

	for i := range entries {
		e := &entries[i]
		key := strconv.FormatFloat(e.Amount, 'f', -1, 64) + "|" + e.Day() + "|" + e.Description
		g, ok := groups[key]
		if !ok {
			g = &duplicateGroup{amount: e.Amount, day: e.Day(), desc: e.Description}
			groups[key] = g
			order = append(order, key)
		}
		g.ids = append(g.ids, e.ID)
	}

	var anomalies []Anomaly
	for _, key := range order {
		g := groups[key]
		if len(g.ids) < 2 {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			ID:       fmt.Sprintf("duplicate-%d", len(anomalies)+1),
			Kind:     AnomalyDuplicate,
			Severity: SeverityMedium,
			Description: fmt.Sprintf("%d entries of %.2f on %s look identical (%q)",
				len(g.ids), g.amount, dayLabel(g.day), g.desc),
			SuggestedAction: "Check whether these were recorded twice and remove the extra entries",
			AffectedAmount:  g.amount,
			RelatedEntryIDs: g.ids,
		})
	}
	return anomalies
}

// detectOutliers flags entries far above the mean amount of the whole ledger.
func detectOutliers(entries []model.LedgerEntry, cfg AnomalyConfig) []Anomaly {
	if len(entries) == 0 {
		return nil
	}

	amounts := make([]float64, len(entries))
	for i, e := range entries {
		amounts[i] = e.Amount
	}
	avg := mean(amounts)
	if avg == 0 {
		return nil
	}

	threshold := avg * cfg.OutlierMultiplier
	severe := avg * cfg.SevereOutlierMultiplier

	var anomalies []Anomaly
	for _, e := range entries {
		if e.Amount <= threshold {
			continue
		}
		severity := SeverityMedium
		if e.Amount > severe {
			severity = SeverityHigh
		}
		anomalies = append(anomalies, Anomaly{
			ID:       "outlier-" + e.ID,
			Kind:     AnomalyOutlier,
			Severity: severity,
			Description: fmt.Sprintf("Amount %.2f is %.1fx the average entry of %.2f",
				e.Amount, e.Amount/avg, avg),
			SuggestedAction: "Verify this transaction is legitimate and correctly recorded",
			AffectedAmount:  e.Amount,
			RelatedEntryIDs: []string{e.ID},
		})
	}
	return anomalies
}

func dayLabel(day string) string {
	if day == "" {
		return "an unknown date"
	}
	return day
}
