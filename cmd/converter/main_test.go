package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/config"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/metric"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/services"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/tableio"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

const sampleExport = "Timestamp,Building A - Energy (kWh),Building B - Energy (kWh)\n" +
	"\"Thursday, March 27, 2025 15:45\",100,200\n" +
	"\"Thursday, March 27, 2025 16:00\",110,\n"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService() *services.ConvertService {
	return services.NewConvertService(config.Default(), metric.New(), discardLogger())
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"second.csv", "first.xlsx", "notes.pdf", "~$second.csv", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	t.Run("directory is filtered and sorted", func(t *testing.T) {
		files, err := collectInputs(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "first.xlsx"),
			filepath.Join(dir, "second.csv"),
		}, files)
	})

	t.Run("single file passes through", func(t *testing.T) {
		path := filepath.Join(dir, "second.csv")
		files, err := collectInputs(path)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := collectInputs(filepath.Join(dir, "gone"))
		assert.Error(t, err)
	})
}

func TestSidecarFilename(t *testing.T) {
	tests := []struct {
		name   string
		source string
		suffix string
		want   string
	}{
		{"csv source", "march_export.csv", config.UnitsFileSuffix, "march_export_units.csv"},
		{"workbook source", "/data/uploads/Building 12.xlsx", config.ColumnsFileSuffix, "Building 12_columns.csv"},
		{"no extension", "export", config.UnitsFileSuffix, "export_units.csv"},
		{"empty source", "", config.UnitsFileSuffix, "export_units.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sidecarFilename(tt.source, tt.suffix))
		})
	}
}

func TestWriteOutputs_CSV(t *testing.T) {
	service := newTestService()
	result, err := service.Convert(context.Background(), strings.NewReader(sampleExport), "march_export.csv", domain.ConvertOptions{})
	require.NoError(t, err)

	outDir := t.TempDir()
	outputs, err := writeOutputs(result, "march_export.csv", outDir, "csv", tableio.WriteOptions{BOMPrefix: true})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(outDir, "march_export_converted.csv"),
		filepath.Join(outDir, "march_export_units.csv"),
		filepath.Join(outDir, "march_export_columns.csv"),
	}, outputs)

	data, err := os.ReadFile(outputs[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(data), "Timestamp,Meter,Energy")
	assert.Contains(t, string(data), "27/03/2025 15:45,Building A,100")

	units, err := os.ReadFile(outputs[1])
	require.NoError(t, err)
	assert.Contains(t, string(units), "kWh")
}

func TestWriteOutputs_XLSX(t *testing.T) {
	service := newTestService()
	result, err := service.Convert(context.Background(), strings.NewReader(sampleExport), "march_export.csv", domain.ConvertOptions{})
	require.NoError(t, err)

	outDir := t.TempDir()
	outputs, err := writeOutputs(result, "march_export.csv", outDir, "xlsx", tableio.WriteOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(outDir, "march_export_converted.xlsx")}, outputs)

	table, err := tableio.ReadFile(outputs[0], tableio.ReadOptions{Sheet: "Converted Data"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Timestamp", "Meter", "Energy"}, table.Columns)
	assert.Len(t, table.Rows, 3)

	units, err := tableio.ReadFile(outputs[0], tableio.ReadOptions{Sheet: "Units"})
	require.NoError(t, err)
	assert.Len(t, units.Rows, 1)
}

func TestWriteOutputs_Both(t *testing.T) {
	service := newTestService()
	result, err := service.Convert(context.Background(), strings.NewReader(sampleExport), "march_export.csv", domain.ConvertOptions{})
	require.NoError(t, err)

	outDir := t.TempDir()
	outputs, err := writeOutputs(result, "march_export.csv", outDir, "both", tableio.WriteOptions{Delimiter: "semicolon"})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(outDir, "march_export_converted.xlsx"),
		filepath.Join(outDir, "march_export_converted.csv"),
		filepath.Join(outDir, "march_export_units.csv"),
		filepath.Join(outDir, "march_export_columns.csv"),
	}, outputs)

	data, err := os.ReadFile(outputs[1])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Timestamp;Meter;Energy")
}

func TestRunBatch(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(inDir, "january.csv"), []byte(sampleExport), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "february.csv"), []byte(sampleExport), 0644))
	// No timestamp column at all
	bad := "Date,Building A - Energy (kWh)\n\"March 27\",100\n"
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "broken.csv"), []byte(bad), 0644))

	files, err := collectInputs(inDir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	summary := runBatch(context.Background(), newTestService(), discardLogger(), batchOptions{
		Files:     files,
		OutDir:    outDir,
		Format:    "csv",
		BOMPrefix: false,
		Workers:   2,
	})

	assert.Equal(t, 2, summary.Converted)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)

	assert.FileExists(t, filepath.Join(outDir, "january_converted.csv"))
	assert.FileExists(t, filepath.Join(outDir, "february_converted.csv"))
	assert.NoFileExists(t, filepath.Join(outDir, "broken_converted.csv"))
}

func TestRunBatch_CancelledContext(t *testing.T) {
	inDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "january.csv"), []byte(sampleExport), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := runBatch(ctx, newTestService(), discardLogger(), batchOptions{
		Files:   []string{filepath.Join(inDir, "january.csv")},
		OutDir:  t.TempDir(),
		Format:  "csv",
		Workers: 1,
	})

	assert.Equal(t, 0, summary.Converted)
	assert.Equal(t, 1, summary.Skipped)
}
