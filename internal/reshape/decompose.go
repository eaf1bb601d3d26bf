package reshape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// naSentinels are the placeholder strings spreadsheet tooling writes for
// absent readings. Matched case-insensitively after trimming.
var naSentinels = map[string]struct{}{
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"#n/a": {},
}

// Decomposition is the accumulated long-form output of one wide-table scan:
// the flat records in column-then-row traversal order, the distinct reading
// types in first-seen order, the first-unit-wins unit map, and the parsed
// descriptor of every data column.
type Decomposition struct {
	Records      []domain.FlatRecord
	ReadingTypes []string
	Units        domain.UnitMap
	Descriptors  []domain.ColumnDescriptor
}

// Decompose scans every data column of the table in original column order
// and emits one FlatRecord per usable cell. timestamps holds the normalized
// timestamp for each row; timestampCol marks the column excluded from the
// scan. Cells that are missing or not numeric are skipped without a record
// and without a diagnostic. A reading type and its unit are registered when
// its first record is emitted, so fully-empty columns contribute nothing to
// the output shape. Zero records across all columns is a fatal
// ErrEmptyAfterDecomposition.
func Decompose(table domain.Table, timestampCol int, timestamps []string) (*Decomposition, error) {
	d := &Decomposition{
		Units: make(domain.UnitMap),
	}
	seen := make(map[string]struct{})

	for col, header := range table.Columns {
		if col == timestampCol {
			continue
		}

		desc := ParseHeader(header)
		d.Descriptors = append(d.Descriptors, desc)

		for row := range table.Rows {
			value, ok := parseValue(table.Cell(row, col))
			if !ok {
				continue
			}

			if _, known := seen[desc.ReadingType]; !known {
				seen[desc.ReadingType] = struct{}{}
				d.ReadingTypes = append(d.ReadingTypes, desc.ReadingType)
				d.Units[desc.ReadingType] = desc.Unit
			}

			d.Records = append(d.Records, domain.FlatRecord{
				Timestamp:   timestamps[row],
				Meter:       desc.Meter,
				ReadingType: desc.ReadingType,
				Unit:        desc.Unit,
				Value:       value,
			})
		}
	}

	if len(d.Records) == 0 {
		return nil, fmt.Errorf("%w: every data column held only missing or non-numeric values", ErrEmptyAfterDecomposition)
	}

	return d, nil
}

// isMissing reports whether a cell holds no reading: empty, whitespace-only
// or one of the NA placeholders.
func isMissing(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return true
	}
	_, ok := naSentinels[strings.ToLower(trimmed)]
	return ok
}

// parseValue extracts the numeric reading from a cell. Thousands separators
// are tolerated ("1,234.5"). Missing cells and non-numeric text yield no
// value.
func parseValue(cell string) (float64, bool) {
	if isMissing(cell) {
		return 0, false
	}
	trimmed := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
