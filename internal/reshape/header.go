package reshape

import (
	"regexp"
	"strings"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// Sentinel values used when a header lacks a recognizable part.
const (
	UnknownReading = "Unknown Reading"
	UnknownUnit    = "Unknown Unit"
)

// meterSeparator splits the meter identity from the rest of a header.
const meterSeparator = " - "

// unitPattern matches a remainder of the form "<text> (<unit>)" with the
// parenthesized unit at the very end.
var unitPattern = regexp.MustCompile(`^(.+?)\s*\(([^()]*)\)$`)

// ParseHeader derives the (meter, reading type, unit) triple from one raw
// column header. Headers without the " - " separator degrade to the full
// header as meter with sentinel reading type and unit. The remainder after
// the first separator is matched against the trailing "(unit)" grammar
// first, then against a last-underscore split, then kept whole with an
// unknown unit. ParseHeader never fails; a malformed header must not abort
// the remaining columns.
func ParseHeader(raw string) domain.ColumnDescriptor {
	idx := strings.Index(raw, meterSeparator)
	if idx < 0 {
		return domain.ColumnDescriptor{
			RawHeader:   raw,
			Meter:       strings.TrimSpace(raw),
			ReadingType: UnknownReading,
			Unit:        UnknownUnit,
		}
	}

	meter := strings.TrimSpace(raw[:idx])
	remainder := strings.TrimSpace(raw[idx+len(meterSeparator):])
	readingType, unit := parseReadingAndUnit(remainder)

	return domain.ColumnDescriptor{
		RawHeader:   raw,
		Meter:       meter,
		ReadingType: readingType,
		Unit:        unit,
	}
}

// parseReadingAndUnit splits the post-separator remainder into reading type
// and unit.
func parseReadingAndUnit(remainder string) (string, string) {
	if m := unitPattern.FindStringSubmatch(remainder); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	if i := strings.LastIndex(remainder, "_"); i >= 0 {
		return strings.TrimSpace(remainder[:i]), strings.TrimSpace(remainder[i+1:])
	}

	return remainder, UnknownUnit
}
