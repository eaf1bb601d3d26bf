package domain

// ColumnDescriptor is the parsed meaning of one composite column header.
// Derived once per data column at the start of a run and immutable after.
type ColumnDescriptor struct {
	RawHeader   string `json:"raw_header"`
	Meter       string `json:"meter"`
	ReadingType string `json:"reading_type"`
	Unit        string `json:"unit"`
}

// FlatRecord is a single observed reading in long form: one cell of the
// wide input joined with the semantics of its column header. Cells holding
// a missing value never become records.
type FlatRecord struct {
	Timestamp   string  `json:"timestamp" validate:"required"`
	Meter       string  `json:"meter" validate:"required"`
	ReadingType string  `json:"reading_type" validate:"required"`
	Unit        string  `json:"unit"`
	Value       float64 `json:"value"`
}

// OutputRow is one row of the aggregated output, keyed uniquely by
// (Timestamp, Meter). Readings holds only the reading types observed for
// this key; a reading type present elsewhere in the run but absent here is
// rendered as an explicit missing value, never as a dropped row.
type OutputRow struct {
	Timestamp string             `json:"timestamp"`
	Meter     string             `json:"meter"`
	Readings  map[string]float64 `json:"readings"`
}

// UnitMap maps a reading type to the unit it was first observed with.
// Conflicting units under the same reading type keep the first one; the
// conflict is a recognized inconsistency of the source format, not an error.
type UnitMap map[string]string
