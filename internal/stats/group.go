package stats

import (
	"fmt"

	"github.com/martinsvarc/teamtables/internal/clock"
	"github.com/martinsvarc/teamtables/internal/types"
)

// NormalizedRecord pairs a call record with its canonical calendar date
type NormalizedRecord struct {
	Record types.CallRecord
	Date   clock.Date
}

// Normalize resolves every record's raw timestamp to a canonical date in
// the reference zone. Records whose timestamp cannot be parsed are dropped
// and reported as data-quality warnings; one bad record never fails the
// rest of the snapshot. Out-of-range scores are cleared to missing on the
// kept record, each with its own warning, so they can never skew averages.
func Normalize(records []types.CallRecord, clk clock.ReferenceClock) ([]NormalizedRecord, []types.DataQualityWarning) {
	normalized := make([]NormalizedRecord, 0, len(records))
	var warnings []types.DataQualityWarning

	for _, rec := range records {
		d, err := clk.Normalize(rec.CallTimestamp)
		if err != nil {
			warnings = append(warnings, types.DataQualityWarning{
				CallID: rec.CallID,
				UserID: rec.UserID,
				Reason: err.Error(),
			})
			continue
		}

		for _, dim := range types.AllDimensions {
			v := rec.Scores.Get(dim)
			if v == nil || (*v >= 0 && *v <= 100) {
				continue
			}
			warnings = append(warnings, types.DataQualityWarning{
				CallID: rec.CallID,
				UserID: rec.UserID,
				Reason: fmt.Sprintf("out-of-range %s score (%g)", dim, *v),
			})
			rec.Scores.Set(dim, nil)
		}

		normalized = append(normalized, NormalizedRecord{Record: rec, Date: d})
	}

	return normalized, warnings
}

// GroupByUser partitions normalized records by user id. When teamID is
// non-empty, records of other teams are skipped. The partition neither
// drops nor duplicates records beyond that filter.
func GroupByUser(records []NormalizedRecord, teamID string) map[string][]NormalizedRecord {
	byUser := make(map[string][]NormalizedRecord)
	for _, rec := range records {
		if teamID != "" && rec.Record.TeamID != teamID {
			continue
		}
		byUser[rec.Record.UserID] = append(byUser[rec.Record.UserID], rec)
	}
	return byUser
}
