package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/config"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/shared/testutil"
)

func TestHealthService_HealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)
	hs := NewHealthService("1.2.3", "", config.PathsConfig{DataDir: t.TempDir()}, logger)

	status := hs.HealthCheck(context.Background())

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)

	t.Run("writable data dir", func(t *testing.T) {
		hs := NewHealthService("1.2.3", "", config.PathsConfig{DataDir: t.TempDir()}, logger)

		status := hs.ReadinessCheck(context.Background())

		assert.Equal(t, "ready", status.Status)
		require.Contains(t, status.Checks, "data_dir")
		assert.Equal(t, "ready", status.Checks["data_dir"].Status)
	})

	t.Run("data dir blocked by a file", func(t *testing.T) {
		occupied := filepath.Join(t.TempDir(), "occupied")
		require.NoError(t, os.WriteFile(occupied, []byte("x"), 0644))

		hs := NewHealthService("1.2.3", "", config.PathsConfig{DataDir: filepath.Join(occupied, "data")}, logger)

		status := hs.ReadinessCheck(context.Background())

		assert.Equal(t, "not_ready", status.Status)
		assert.Equal(t, "not_ready", status.Checks["data_dir"].Status)
		assert.NotEmpty(t, status.Checks["data_dir"].Message)
	})
}

func TestHealthService_LivenessCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)
	hs := NewHealthService("1.2.3", "", config.PathsConfig{DataDir: t.TempDir()}, logger)

	status := hs.LivenessCheck(context.Background())

	assert.Equal(t, "alive", status.Status)
	require.NotNil(t, status.Runtime)
	assert.Contains(t, status.Runtime, "go_version")
	assert.Contains(t, status.Runtime, "goroutines")
}

func TestHealthService_Version(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)

	t.Run("with build time", func(t *testing.T) {
		hs := NewHealthService("1.2.3", "2025-03-27T10:00:00Z", config.PathsConfig{}, logger)

		info := hs.Version()

		assert.Equal(t, "1.2.3", info["version"])
		assert.Equal(t, "2025-03-27T10:00:00Z", info["build_time"])
		assert.Contains(t, info, "go_version")
		assert.Contains(t, info, "start_time")
	})

	t.Run("without build time", func(t *testing.T) {
		hs := NewHealthService("1.2.3", "", config.PathsConfig{}, logger)

		info := hs.Version()

		assert.NotContains(t, info, "build_time")
	})
}
