package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	// Two instances must not collide; each carries a private registry.
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordConversion(StatusSuccess, 120*time.Millisecond)
	m.RecordConversion(StatusFailure, 5*time.Millisecond)
	m.RecordSourceSize(2048)
	m.RecordVolume(500, 96)
	m.RecordWarning("TimestampFallbackUsed")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	exposition := string(body)
	assert.Contains(t, exposition, `meterconv_conversion_runs_total{status="success"} 1`)
	assert.Contains(t, exposition, `meterconv_conversion_runs_total{status="failure"} 1`)
	assert.Contains(t, exposition, "meterconv_conversion_duration_seconds_count 2")
	assert.Contains(t, exposition, "meterconv_conversion_records_decomposed_total 500")
	assert.Contains(t, exposition, "meterconv_conversion_rows_written_total 96")
	assert.Contains(t, exposition, `meterconv_conversion_warnings_total{code="TimestampFallbackUsed"} 1`)
	assert.Contains(t, exposition, "go_goroutines", "runtime collectors must be attached")
}
