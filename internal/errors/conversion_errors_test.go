package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/reshape"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/tableio"
)

func TestNewProblemDetails(t *testing.T) {
	problem := NewProblemDetails(
		http.StatusUnprocessableEntity,
		TypeNoNumericData,
		"No Numeric Data",
		"every data column held only missing values",
		"/api/convert",
	)

	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, TypeNoNumericData, problem.Type)
	assert.Equal(t, "No Numeric Data", problem.Title)
	assert.NotNil(t, problem.Extensions)
}

func TestProblemDetails_WithExtension(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "", "/api/convert").
		WithExtension("trace_id", "abc-123").
		WithExtension("error_code", "VALIDATION_FAILED")

	assert.Equal(t, "abc-123", problem.Extensions["trace_id"])
	assert.Equal(t, "VALIDATION_FAILED", problem.Extensions["error_code"])
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusUnprocessableEntity, TypeTimestampParse, "Timestamps Not Parseable", "", "/api/convert").
		WithExtension("column", "Timestamp").
		WithExtension("unparseable_count", 7)

	raw, err := json.Marshal(problem)
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &data))

	assert.Equal(t, TypeTimestampParse, data["type"])
	assert.Equal(t, "Timestamps Not Parseable", data["title"])
	assert.Equal(t, float64(http.StatusUnprocessableEntity), data["status"])
	assert.Equal(t, "Timestamp", data["column"])
	assert.Equal(t, float64(7), data["unparseable_count"])

	_, hasDetail := data["detail"]
	assert.False(t, hasDetail, "empty detail should be omitted")
}

func TestMapConversionError_Sentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   string
	}{
		{
			name:       "unsupported format",
			err:        fmt.Errorf("%w: .pdf", tableio.ErrUnsupportedFormat),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeUnsupportedFormat,
			wantCode:   "UNSUPPORTED_FORMAT",
		},
		{
			name:       "unsupported encoding",
			err:        fmt.Errorf("%w: %q", tableio.ErrUnsupportedEncoding, "utf-16"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeUnsupportedEncoding,
			wantCode:   "UNSUPPORTED_ENCODING",
		},
		{
			name:       "unsupported delimiter",
			err:        fmt.Errorf("%w: %q", tableio.ErrUnsupportedDelimiter, "colon"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeUnsupportedDelimiter,
			wantCode:   "UNSUPPORTED_DELIMITER",
		},
		{
			name:       "sheet not found",
			err:        fmt.Errorf("%w: %q, available sheets: [Export]", tableio.ErrSheetNotFound, "Data"),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeSheetNotFound,
			wantCode:   "SHEET_NOT_FOUND",
		},
		{
			name:       "encoding mismatch",
			err:        fmt.Errorf("%w: row 3", tableio.ErrEncoding),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeEncodingMismatch,
			wantCode:   "ENCODING_MISMATCH",
		},
		{
			name:       "unreadable source",
			err:        fmt.Errorf("%w: not a workbook", tableio.ErrSourceRead),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeUnreadableSource,
			wantCode:   "UNREADABLE_SOURCE",
		},
		{
			name:       "missing timestamp column",
			err:        fmt.Errorf("%w: columns [Meter Energy]", reshape.ErrMissingTimestampColumn),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeMissingTimestamp,
			wantCode:   "MISSING_TIMESTAMP_COLUMN",
		},
		{
			name:       "empty after decomposition",
			err:        fmt.Errorf("%w: every data column held only missing or non-numeric values", reshape.ErrEmptyAfterDecomposition),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeNoNumericData,
			wantCode:   "NO_NUMERIC_DATA",
		},
		{
			name:       "empty after aggregation",
			err:        fmt.Errorf("%w: no meter produced a reading for any timestamp", reshape.ErrEmptyAfterAggregation),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeNoOutputRows,
			wantCode:   "NO_OUTPUT_ROWS",
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("something unexpected"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := MapConversionError(tt.err, "trace-1")

			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, tt.wantCode, problem.Extensions["error_code"])
			assert.Equal(t, "trace-1", problem.Extensions["trace_id"])
			assert.Contains(t, problem.Instance, "trace-1")
		})
	}
}

func TestMapConversionError_TimestampParseDetails(t *testing.T) {
	parseErr := &reshape.TimestampParseError{
		Column: "Timestamp",
		Values: []string{"banana", "??"},
		Total:  14,
	}

	problem := MapConversionError(fmt.Errorf("normalize: %w", parseErr), "trace-2")

	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, TypeTimestampParse, problem.Type)
	assert.Equal(t, "Timestamp", problem.Extensions["column"])
	assert.Equal(t, []string{"banana", "??"}, problem.Extensions["sample_values"])
	assert.Equal(t, 14, problem.Extensions["unparseable_count"])
}

func TestMapConversionError_SupportedValuesExtensions(t *testing.T) {
	problem := MapConversionError(tableio.ErrUnsupportedEncoding, "trace-3")
	assert.Equal(t, tableio.Encodings(), problem.Extensions["supported_encodings"])

	problem = MapConversionError(tableio.ErrUnsupportedDelimiter, "trace-3")
	assert.Equal(t, tableio.Delimiters(), problem.Extensions["supported_delimiters"])
}

func TestMapConversionError_APIErrorPassthrough(t *testing.T) {
	problem := MapConversionError(ErrValidation("sheet", "sheet name is empty"), "trace-4")

	assert.Equal(t, http.StatusBadRequest, problem.Status)
	assert.Equal(t, "/errors/validation-failed", problem.Type)
	assert.Equal(t, "VALIDATION_FAILED", problem.Extensions["error_code"])
	require.NotNil(t, problem.Extensions["details"])
}

func TestMapConversionError_RenderedResponse(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/convert", nil)

	problem := MapConversionError(fmt.Errorf("%w: columns [A B]", reshape.ErrMissingTimestampColumn), "trace-5")
	require.NoError(t, render.Render(w, r, problem))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeMissingTimestamp, body["type"])
	assert.Equal(t, "trace-5", body["trace_id"])
	assert.Contains(t, body["detail"], "columns [A B]")
}
