package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/reshape"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/tableio"
)

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Additional fields for extensibility
	Extensions map[string]interface{} `json:"-"`
}

// Render implements the render.Renderer interface
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})

	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status

	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}

	for k, v := range pd.Extensions {
		data[k] = v
	}

	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// MapConversionError maps conversion domain errors to HTTP problem details.
// Unsupported request options map to 400; source files the converter could
// read but not make sense of map to 422. The caller may attach further
// extensions, such as the diagnostics collected before the failure.
func MapConversionError(err error, traceID string) *ProblemDetails {
	instance := fmt.Sprintf("/api/convert#trace-%s", traceID)

	// APIErrors carry their own status and code
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		problem := NewProblemDetails(
			apiErr.StatusCode,
			"/errors/"+strings.ToLower(strings.ReplaceAll(apiErr.ErrorCode, "_", "-")),
			http.StatusText(apiErr.StatusCode),
			apiErr.Message,
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", apiErr.ErrorCode)
		if apiErr.Details != nil {
			problem.WithExtension("details", apiErr.Details)
		}
		return problem
	}

	switch {
	case errors.Is(err, tableio.ErrUnsupportedFormat):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeUnsupportedFormat,
			"Unsupported File Format",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNSUPPORTED_FORMAT")

	case errors.Is(err, tableio.ErrUnsupportedEncoding):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeUnsupportedEncoding,
			"Unsupported Encoding",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNSUPPORTED_ENCODING").
			WithExtension("supported_encodings", tableio.Encodings())

	case errors.Is(err, tableio.ErrUnsupportedDelimiter):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeUnsupportedDelimiter,
			"Unsupported Delimiter",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNSUPPORTED_DELIMITER").
			WithExtension("supported_delimiters", tableio.Delimiters())

	case errors.Is(err, tableio.ErrSheetNotFound):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeSheetNotFound,
			"Worksheet Not Found",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "SHEET_NOT_FOUND")

	case errors.Is(err, tableio.ErrEncoding):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeEncodingMismatch,
			"Encoding Mismatch",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "ENCODING_MISMATCH").
			WithExtension("hint", "Re-upload with the encoding the file was actually saved in.")

	case errors.Is(err, tableio.ErrSourceRead):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeUnreadableSource,
			"Source File Not Readable",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNREADABLE_SOURCE")

	case errors.Is(err, reshape.ErrMissingTimestampColumn):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeMissingTimestamp,
			"No Timestamp Column",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "MISSING_TIMESTAMP_COLUMN")

	case errors.Is(err, reshape.ErrTimestampParse):
		problem := NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeTimestampParse,
			"Timestamps Not Parseable",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "TIMESTAMP_PARSE_FAILED")
		var parseErr *reshape.TimestampParseError
		if errors.As(err, &parseErr) {
			problem.WithExtension("column", parseErr.Column).
				WithExtension("sample_values", parseErr.Values).
				WithExtension("unparseable_count", parseErr.Total)
		}
		return problem

	case errors.Is(err, reshape.ErrEmptyAfterDecomposition):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeNoNumericData,
			"No Numeric Data",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "NO_NUMERIC_DATA")

	case errors.Is(err, reshape.ErrEmptyAfterAggregation):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeNoOutputRows,
			"No Output Rows",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "NO_OUTPUT_ROWS")

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred while processing your request.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INTERNAL_ERROR")
	}
}
