package reshape

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the fatal conditions of a conversion run. Callers
// classify failures with errors.Is; the wrapped messages carry the
// offending column names and values.
var (
	ErrMissingTimestampColumn  = errors.New("no timestamp column found")
	ErrTimestampParse          = errors.New("timestamp parse failed")
	ErrEmptyAfterDecomposition = errors.New("no valid data after decomposition")
	ErrEmptyAfterAggregation   = errors.New("no rows after aggregation")
)

// maxReportedValues caps how many offending raw values a TimestampParseError
// carries; files can have thousands of bad cells and the report only needs
// enough to be actionable.
const maxReportedValues = 5

// TimestampParseError reports timestamp values that neither the strict nor
// the permissive grammar could parse. Values holds up to maxReportedValues
// offending raw values; Total the full count.
type TimestampParseError struct {
	Column string
	Values []string
	Total  int
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("column %q: %d timestamp value(s) not parseable by any supported format, e.g. %s",
		e.Column, e.Total, quoteValues(e.Values))
}

// Unwrap lets errors.Is(err, ErrTimestampParse) match.
func (e *TimestampParseError) Unwrap() error {
	return ErrTimestampParse
}

func quoteValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
