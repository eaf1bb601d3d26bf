package reshape

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// TimestampColumnName is the canonical name of the timestamp column in
// converted output, regardless of what the source file called it.
const TimestampColumnName = "Timestamp"

// Engine runs the full wide-to-long-to-wide conversion over one parsed
// table. It is stateless between runs and safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a conversion engine. A nil logger falls back to
// slog.Default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Result carries everything one successful run produced: the aggregated
// rows, the reading types in first-seen order, the first-wins unit map, the
// parsed descriptor of every data column, and the run counters the service
// layer reports.
type Result struct {
	Rows         []domain.OutputRow
	ReadingTypes []string
	Units        domain.UnitMap
	Descriptors  []domain.ColumnDescriptor
	UsedFallback bool
	SourceRows   int
	FlatRecords  int
}

// Run converts one table. Diagnostics are appended to diags as the run
// proceeds; on a fatal condition the returned error has already been
// recorded there as an error-severity entry. The table is not modified.
func (e *Engine) Run(table domain.Table, diags *Diagnostics) (*Result, error) {
	tsCol, err := e.locateTimestampColumn(table, diags)
	if err != nil {
		return nil, err
	}

	raw := make([]string, table.RowCount())
	for i := range raw {
		raw[i] = table.Cell(i, tsCol)
	}

	normalized, usedFallback, err := NormalizeTimestamps(table.Columns[tsCol], raw)
	if err != nil {
		diags.AddError(CodeTimestampParseError, err.Error())
		return nil, err
	}
	if usedFallback {
		diags.AddWarning(CodeTimestampFallbackUsed,
			fmt.Sprintf("column %q did not match the export timestamp format; dates were auto-detected", table.Columns[tsCol]))
		e.logger.Debug("timestamp fallback engaged", "column", table.Columns[tsCol])
	}

	dec, err := Decompose(table, tsCol, normalized)
	if err != nil {
		diags.AddError(CodeEmptyAfterDecomposition, err.Error())
		return nil, err
	}
	e.logger.Debug("decomposition complete",
		"records", len(dec.Records),
		"reading_types", len(dec.ReadingTypes))

	rows, err := Aggregate(dec.Records)
	if err != nil {
		diags.AddError(CodeEmptyAfterAggregation, err.Error())
		return nil, err
	}

	return &Result{
		Rows:         rows,
		ReadingTypes: dec.ReadingTypes,
		Units:        dec.Units,
		Descriptors:  dec.Descriptors,
		UsedFallback: usedFallback,
		SourceRows:   table.RowCount(),
		FlatRecords:  len(dec.Records),
	}, nil
}

// locateTimestampColumn finds the column the conversion pivots on: the
// first whose name contains "timestamp" case-insensitively. No match is
// fatal. Extra matches and non-canonical names are warned about but never
// block the run.
func (e *Engine) locateTimestampColumn(table domain.Table, diags *Diagnostics) (int, error) {
	var matches []int
	for i, name := range table.Columns {
		if strings.Contains(strings.ToLower(strings.TrimSpace(name)), "timestamp") {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		diags.AddError(CodeMissingTimestampColumn,
			fmt.Sprintf("no timestamp column among %d columns; expected a column named %q", len(table.Columns), TimestampColumnName))
		return 0, fmt.Errorf("%w: columns %v", ErrMissingTimestampColumn, table.Columns)
	}

	chosen := matches[0]
	name := table.Columns[chosen]
	if len(matches) > 1 {
		diags.AddWarning(CodeMultipleTimestampColumns,
			fmt.Sprintf("%d columns look like timestamps; using %q", len(matches), name))
	}
	if name != TimestampColumnName {
		diags.AddWarning(CodeTimestampColumnRenamed,
			fmt.Sprintf("timestamp column %q will be written as %q", name, TimestampColumnName))
	}
	e.logger.Debug("timestamp column located", "column", name, "index", chosen)
	return chosen, nil
}

// DataTable renders the aggregated rows as the primary output table:
// Timestamp, Meter, then every reading type in first-seen order. Readings a
// meter never reported stay empty.
func (r *Result) DataTable() domain.Table {
	columns := make([]string, 0, len(r.ReadingTypes)+2)
	columns = append(columns, TimestampColumnName, "Meter")
	columns = append(columns, r.ReadingTypes...)

	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		out := make([]string, 0, len(columns))
		out = append(out, row.Timestamp, row.Meter)
		for _, rt := range r.ReadingTypes {
			if value, ok := row.Readings[rt]; ok {
				out = append(out, formatValue(value))
			} else {
				out = append(out, "")
			}
		}
		rows = append(rows, out)
	}

	return domain.Table{Name: "Converted Data", Columns: columns, Rows: rows}
}

// UnitTable renders the unit map as a two-column metadata table in
// reading-type first-seen order.
func (r *Result) UnitTable() domain.Table {
	rows := make([][]string, 0, len(r.ReadingTypes))
	for _, rt := range r.ReadingTypes {
		rows = append(rows, []string{rt, r.Units[rt]})
	}
	return domain.Table{Name: "Units", Columns: []string{"Reading Type", "Unit"}, Rows: rows}
}

// ColumnTable describes every column of the primary table, units included.
func (r *Result) ColumnTable() domain.Table {
	rows := make([][]string, 0, len(r.ReadingTypes)+2)
	rows = append(rows,
		[]string{TimestampColumnName, "Reading timestamp in DD/MM/YYYY HH:MM"},
		[]string{"Meter", "Meter identifier parsed from the source headers"},
	)
	for _, rt := range r.ReadingTypes {
		rows = append(rows, []string{rt, fmt.Sprintf("%s in %s", rt, r.Units[rt])})
	}
	return domain.Table{Name: "Columns", Columns: []string{"Column", "Description"}, Rows: rows}
}

// formatValue writes a reading with minimal round-trip precision, so 100
// stays "100" and 0.95 stays "0.95".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
