package reshape

import (
	"fmt"
	"sort"
	"time"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

type groupKey struct {
	timestamp string
	meter     string
}

// Aggregate folds flat records back into one row per (timestamp, meter)
// pair. Within a pair the first record for each reading type wins; later
// duplicates are dropped. Rows come back sorted by chronological timestamp,
// then meter name, so repeated conversions of the same file produce
// identical output. Zero surviving rows is a fatal ErrEmptyAfterAggregation.
func Aggregate(records []domain.FlatRecord) ([]domain.OutputRow, error) {
	groups := make(map[groupKey]*domain.OutputRow)

	for _, rec := range records {
		key := groupKey{timestamp: rec.Timestamp, meter: rec.Meter}
		row, ok := groups[key]
		if !ok {
			row = &domain.OutputRow{
				Timestamp: rec.Timestamp,
				Meter:     rec.Meter,
				Readings:  make(map[string]float64),
			}
			groups[key] = row
		}
		if _, exists := row.Readings[rec.ReadingType]; exists {
			continue
		}
		row.Readings[rec.ReadingType] = rec.Value
	}

	rows := make([]domain.OutputRow, 0, len(groups))
	for _, row := range groups {
		if len(row.Readings) == 0 {
			continue
		}
		rows = append(rows, *row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no meter produced a reading for any timestamp", ErrEmptyAfterAggregation)
	}

	parsed := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		if _, ok := parsed[row.Timestamp]; ok {
			continue
		}
		if t, err := time.Parse(CanonicalTimestampLayout, row.Timestamp); err == nil {
			parsed[row.Timestamp] = t
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		ti, okI := parsed[rows[i].Timestamp]
		tj, okJ := parsed[rows[j].Timestamp]
		if okI && okJ && !ti.Equal(tj) {
			return ti.Before(tj)
		}
		if rows[i].Timestamp != rows[j].Timestamp {
			return rows[i].Timestamp < rows[j].Timestamp
		}
		return rows[i].Meter < rows[j].Meter
	})

	return rows, nil
}
