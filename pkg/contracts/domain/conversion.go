package domain

// ConvertOptions controls how a source file is read and which artifact the
// caller wants back. Zero values select the defaults (UTF-8, comma, first
// sheet, JSON response).
type ConvertOptions struct {
	Encoding  string `json:"encoding" validate:"omitempty,oneof=utf-8 latin-1 iso-8859-1 cp1252 windows-1252"`
	Delimiter string `json:"delimiter" validate:"omitempty,oneof=comma semicolon tab pipe"`
	Sheet     string `json:"sheet,omitempty"`
	Output    string `json:"output" validate:"omitempty,oneof=json csv xlsx"`
}

// ConversionSummary carries the headline numbers of one conversion run.
type ConversionSummary struct {
	RunID        string   `json:"run_id"`
	SourceFile   string   `json:"source_file"`
	SourceRows   int      `json:"source_rows"`
	FlatRecords  int      `json:"flat_records"`
	OutputRows   int      `json:"output_rows"`
	Meters       int      `json:"meters"`
	ReadingTypes []string `json:"reading_types"`
	UsedFallback bool     `json:"used_timestamp_fallback"`
	DurationMS   int64    `json:"duration_ms"`
}

// ConversionResult is the full product of one run. Diagnostics and Summary
// are always populated; the table fields are only populated when the run
// succeeded. Data is the primary output table, UnitTable the reading-type
// unit metadata, ColumnTable the per-column descriptions.
type ConversionResult struct {
	Summary     ConversionSummary `json:"summary"`
	Diagnostics []Diagnostic      `json:"diagnostics"`
	Data        Table             `json:"data"`
	UnitTable   Table             `json:"units"`
	ColumnTable Table             `json:"columns"`
	Units       UnitMap           `json:"unit_map"`
}

// Warnings returns the warning-severity diagnostics of the run.
func (r *ConversionResult) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}
