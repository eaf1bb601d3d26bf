package domain

// Severity classifies a diagnostic entry. A run fails if and only if at
// least one error-severity entry was recorded; warnings never block output.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is one entry of a conversion run's report. Code carries the
// stable machine-readable name of the condition (e.g. "TimestampFallbackUsed"),
// Message the human-readable detail including offending values where relevant.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}
