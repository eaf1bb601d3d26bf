package reshape

import (
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// Diagnostic codes recorded during a run. Per-column header degradation is
// deliberately absent: a header falling back to sentinel values is part of
// the accepted grammar, not a structural issue worth reporting.
const (
	CodeMissingTimestampColumn   = "MissingTimestampColumn"
	CodeTimestampParseError      = "TimestampParseError"
	CodeEmptyAfterDecomposition  = "EmptyAfterDecomposition"
	CodeEmptyAfterAggregation    = "EmptyAfterAggregation"
	CodeSourceReadError          = "SourceReadError"
	CodeEncodingError            = "EncodingError"
	CodeTimestampFallbackUsed    = "TimestampFallbackUsed"
	CodeMultipleTimestampColumns = "MultipleTimestampColumnsFound"
	CodeTimestampColumnRenamed   = "TimestampColumnRenamed"
)

// Diagnostics is the ordered report of one conversion run. It is created
// empty at run start, appended to by every stage, and read once at run end:
// the run failed if and only if at least one error entry exists. Not safe
// for concurrent use; each run owns its collector.
type Diagnostics struct {
	entries []domain.Diagnostic
	errors  int
}

// NewDiagnostics returns an empty collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// AddWarning records a warning-severity entry. Warnings never block output.
func (d *Diagnostics) AddWarning(code, message string) {
	d.entries = append(d.entries, domain.Diagnostic{
		Severity: domain.SeverityWarning,
		Code:     code,
		Message:  message,
	})
}

// AddError records an error-severity entry, marking the run as failed.
func (d *Diagnostics) AddError(code, message string) {
	d.entries = append(d.entries, domain.Diagnostic{
		Severity: domain.SeverityError,
		Code:     code,
		Message:  message,
	})
	d.errors++
}

// HasErrors reports whether any error-severity entry was recorded.
func (d *Diagnostics) HasErrors() bool {
	return d.errors > 0
}

// HasWarnings reports whether any warning-severity entry was recorded.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.entries) > d.errors
}

// Failed reports whether the run should be presented as failed.
func (d *Diagnostics) Failed() bool {
	return d.HasErrors()
}

// Entries returns the recorded diagnostics in insertion order.
func (d *Diagnostics) Entries() []domain.Diagnostic {
	out := make([]domain.Diagnostic, len(d.entries))
	copy(out, d.entries)
	return out
}

// Warnings returns only the warning-severity entries, in insertion order.
func (d *Diagnostics) Warnings() []domain.Diagnostic {
	var out []domain.Diagnostic
	for _, e := range d.entries {
		if e.Severity == domain.SeverityWarning {
			out = append(out, e)
		}
	}
	return out
}
