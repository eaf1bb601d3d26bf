package reshape

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTimestamps_StrictColumn(t *testing.T) {
	values := []string{
		"Thursday, March 27, 2025 15:45",
		"Thursday, March 27, 2025 16:00",
		"Friday, March 28, 2025 00:15",
	}

	got, usedFallback, err := NormalizeTimestamps("Timestamp", values)

	require.NoError(t, err)
	assert.False(t, usedFallback, "fully strict column must not report fallback")
	assert.Equal(t, []string{
		"27/03/2025 15:45",
		"27/03/2025 16:00",
		"28/03/2025 00:15",
	}, got)
}

func TestNormalizeTimestamps_FallbackColumn(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{
			name: "iso dates",
			values: []string{
				"2025-03-27 15:45",
				"2025-03-27T16:00:00Z",
			},
			want: []string{
				"27/03/2025 15:45",
				"27/03/2025 16:00",
			},
		},
		{
			name: "mixed strict and iso keeps strict values stable",
			values: []string{
				"Thursday, March 27, 2025 15:45",
				"2025-03-28 09:30",
			},
			want: []string{
				"27/03/2025 15:45",
				"28/03/2025 09:30",
			},
		},
		{
			name: "ambiguous numeric dates read month first",
			values: []string{
				"03/04/2025 10:00",
			},
			// Month-first: March 4th, not April 3rd.
			want: []string{
				"04/03/2025 10:00",
			},
		},
		{
			name: "whitespace around values tolerated",
			values: []string{
				"  2025-01-02 08:00  ",
			},
			want: []string{
				"02/01/2025 08:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, usedFallback, err := NormalizeTimestamps("Timestamp", tt.values)

			require.NoError(t, err)
			assert.True(t, usedFallback)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTimestamps_UnparseableValues(t *testing.T) {
	values := []string{
		"Thursday, March 27, 2025 15:45",
		"not a date",
		"",
		"also not a date",
	}

	got, usedFallback, err := NormalizeTimestamps("Reading Timestamp", values)

	require.Error(t, err)
	assert.Nil(t, got, "no partial conversion on parse failure")
	assert.False(t, usedFallback)
	assert.True(t, errors.Is(err, ErrTimestampParse))

	var parseErr *TimestampParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Reading Timestamp", parseErr.Column)
	assert.Equal(t, 3, parseErr.Total)
	assert.Contains(t, parseErr.Values, "not a date")
	assert.Contains(t, parseErr.Values, "")
	assert.Contains(t, parseErr.Error(), `"not a date"`)
}

func TestNormalizeTimestamps_ReportCapsOffendingValues(t *testing.T) {
	values := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		values = append(values, fmt.Sprintf("junk-%d", i))
	}

	_, _, err := NormalizeTimestamps("Timestamp", values)

	var parseErr *TimestampParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Len(t, parseErr.Values, maxReportedValues)
	assert.Equal(t, 8, parseErr.Total)
}

func TestNormalizeTimestamps_EmptyColumn(t *testing.T) {
	got, usedFallback, err := NormalizeTimestamps("Timestamp", nil)

	require.NoError(t, err)
	assert.False(t, usedFallback)
	assert.Empty(t, got)
}
