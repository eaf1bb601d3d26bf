package reshape

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Timestamp layouts of the conversion contract.
const (
	// StrictTimestampLayout is the format the source system is expected to
	// emit, e.g. "Thursday, March 27, 2025 15:45".
	StrictTimestampLayout = "Monday, January 2, 2006 15:04"
	// CanonicalTimestampLayout is the output format, e.g. "27/03/2025 15:45".
	CanonicalTimestampLayout = "02/01/2006 15:04"
)

// NormalizeTimestamps rewrites every value of the designated timestamp
// column to the canonical DD/MM/YYYY HH:MM form. The strict source grammar
// is tried first over the whole column; if any value fails, the whole
// column is re-parsed permissively (auto-detected formats, month-first on
// ambiguous numeric dates) and the returned flag reports that the fallback
// was used. Values neither grammar accepts make the run fail with a
// TimestampParseError carrying the offending raw values; no partial
// conversion is emitted. Parsing uses fixed layouts, so results do not
// depend on the locale of the running environment.
func NormalizeTimestamps(column string, values []string) ([]string, bool, error) {
	out := make([]string, len(values))

	strictOK := true
	for i, v := range values {
		t, err := time.Parse(StrictTimestampLayout, strings.TrimSpace(v))
		if err != nil {
			strictOK = false
			break
		}
		out[i] = t.Format(CanonicalTimestampLayout)
	}
	if strictOK {
		return out, false, nil
	}

	// Permissive pass over the full column. Values the strict grammar does
	// accept are kept stable rather than left to format auto-detection.
	var offending []string
	failed := 0
	for i, v := range values {
		trimmed := strings.TrimSpace(v)
		if t, err := time.Parse(StrictTimestampLayout, trimmed); err == nil {
			out[i] = t.Format(CanonicalTimestampLayout)
			continue
		}
		if trimmed != "" {
			if t, err := dateparse.ParseAny(trimmed); err == nil {
				out[i] = t.Format(CanonicalTimestampLayout)
				continue
			}
		}
		failed++
		if len(offending) < maxReportedValues {
			offending = append(offending, v)
		}
	}

	if failed > 0 {
		return nil, false, &TimestampParseError{
			Column: column,
			Values: offending,
			Total:  failed,
		}
	}

	return out, true, nil
}
