package reshape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

func TestDecompose_ColumnThenRowOrder(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Timestamp", "Building A - Energy (kWh)", "Building A - Power (kW)"},
		Rows: [][]string{
			{"raw", "100", "1.5"},
			{"raw", "", "2.5"},
			{"raw", "1,234.5", "n/a"},
		},
	}
	timestamps := []string{"01/01/2025 00:00", "01/01/2025 00:15", "01/01/2025 00:30"}

	dec, err := Decompose(table, 0, timestamps)
	require.NoError(t, err)

	want := []domain.FlatRecord{
		{Timestamp: "01/01/2025 00:00", Meter: "Building A", ReadingType: "Energy", Unit: "kWh", Value: 100},
		{Timestamp: "01/01/2025 00:30", Meter: "Building A", ReadingType: "Energy", Unit: "kWh", Value: 1234.5},
		{Timestamp: "01/01/2025 00:00", Meter: "Building A", ReadingType: "Power", Unit: "kW", Value: 1.5},
		{Timestamp: "01/01/2025 00:15", Meter: "Building A", ReadingType: "Power", Unit: "kW", Value: 2.5},
	}
	assert.Equal(t, want, dec.Records)
	assert.Equal(t, []string{"Energy", "Power"}, dec.ReadingTypes)
	assert.Equal(t, domain.UnitMap{"Energy": "kWh", "Power": "kW"}, dec.Units)
	require.Len(t, dec.Descriptors, 2)
	assert.Equal(t, "Building A - Energy (kWh)", dec.Descriptors[0].RawHeader)
}

func TestDecompose_SkipsMissingAndNonNumeric(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want int // records emitted from the single data column
	}{
		{name: "empty cell", cell: "", want: 0},
		{name: "whitespace cell", cell: "   ", want: 0},
		{name: "na", cell: "na", want: 0},
		{name: "upper NA", cell: "NA", want: 0},
		{name: "n/a", cell: "N/A", want: 0},
		{name: "nan", cell: "NaN", want: 0},
		{name: "null", cell: "NULL", want: 0},
		{name: "excel na", cell: "#N/A", want: 0},
		{name: "free text", cell: "offline", want: 0},
		{name: "trailing garbage", cell: "12x", want: 0},
		{name: "plain number", cell: "42", want: 1},
		{name: "negative number", cell: "-5.5", want: 1},
		{name: "thousands separators", cell: "1,234,567.8", want: 1},
		{name: "padded number", cell: "  7.25  ", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := domain.Table{
				Columns: []string{"Timestamp", "M - Energy (kWh)", "M - Power (kW)"},
				Rows: [][]string{
					{"raw", tt.cell, "1"}, // second data column keeps the run non-empty
				},
			}

			dec, err := Decompose(table, 0, []string{"01/01/2025 00:00"})
			require.NoError(t, err)

			var energy int
			for _, rec := range dec.Records {
				if rec.ReadingType == "Energy" {
					energy++
				}
			}
			assert.Equal(t, tt.want, energy)
		})
	}
}

func TestDecompose_ParsesFormattedNumbers(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Timestamp", "M - Energy (kWh)"},
		Rows: [][]string{
			{"raw", "1,234,567.8"},
		},
	}

	dec, err := Decompose(table, 0, []string{"01/01/2025 00:00"})
	require.NoError(t, err)
	require.Len(t, dec.Records, 1)
	assert.Equal(t, 1234567.8, dec.Records[0].Value)
}

func TestDecompose_EmptyColumnContributesNothing(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Timestamp", "M1 - Energy (kWh)", "M2 - Gas Volume (m3)"},
		Rows: [][]string{
			{"raw", "10", ""},
			{"raw", "20", "n/a"},
		},
	}

	dec, err := Decompose(table, 0, []string{"01/01/2025 00:00", "01/01/2025 00:15"})
	require.NoError(t, err)

	// The gas column never produced a record, so it must not appear in the
	// output shape. Its parsed descriptor is still kept.
	assert.Equal(t, []string{"Energy"}, dec.ReadingTypes)
	assert.NotContains(t, dec.Units, "Gas Volume")
	assert.Len(t, dec.Descriptors, 2)
}

func TestDecompose_HeaderWithoutSeparator(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Timestamp", "TotalLoad"},
		Rows: [][]string{
			{"raw", "42"},
		},
	}

	dec, err := Decompose(table, 0, []string{"01/01/2025 00:00"})
	require.NoError(t, err)

	require.Len(t, dec.Records, 1)
	assert.Equal(t, domain.FlatRecord{
		Timestamp:   "01/01/2025 00:00",
		Meter:       "TotalLoad",
		ReadingType: UnknownReading,
		Unit:        UnknownUnit,
		Value:       42,
	}, dec.Records[0])
	assert.Equal(t, domain.UnitMap{UnknownReading: UnknownUnit}, dec.Units)
}

func TestDecompose_FirstUnitWins(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Timestamp", "M1 - Energy (kWh)", "M2 - Energy (MWh)"},
		Rows: [][]string{
			{"raw", "10", "0.02"},
		},
	}

	dec, err := Decompose(table, 0, []string{"01/01/2025 00:00"})
	require.NoError(t, err)

	assert.Equal(t, domain.UnitMap{"Energy": "kWh"}, dec.Units)
	// Records keep the unit of their own column.
	require.Len(t, dec.Records, 2)
	assert.Equal(t, "kWh", dec.Records[0].Unit)
	assert.Equal(t, "MWh", dec.Records[1].Unit)
}

func TestDecompose_RaggedRows(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Timestamp", "M - Energy (kWh)", "M - Power (kW)"},
		Rows: [][]string{
			{"raw", "10", "1.5"},
			{"raw", "20"}, // short row: power cell absent
			{"raw"},       // only the timestamp survived
		},
	}
	timestamps := []string{"01/01/2025 00:00", "01/01/2025 00:15", "01/01/2025 00:30"}

	dec, err := Decompose(table, 0, timestamps)
	require.NoError(t, err)

	assert.Len(t, dec.Records, 3)
	for _, rec := range dec.Records {
		assert.NotEqual(t, "01/01/2025 00:30", rec.Timestamp, "row without data cells must emit nothing")
	}
}

func TestDecompose_AllCellsUnusable(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Timestamp", "M - Energy (kWh)"},
		Rows: [][]string{
			{"raw", ""},
			{"raw", "offline"},
		},
	}

	dec, err := Decompose(table, 0, []string{"01/01/2025 00:00", "01/01/2025 00:15"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyAfterDecomposition))
	assert.Nil(t, dec)
}
