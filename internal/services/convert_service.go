package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/config"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/infrastructure"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/metric"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/reshape"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/tableio"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// ConvertService runs export-file conversions. It owns the run lifecycle:
// reading the source, driving the reshape engine, recording metrics, and
// rendering the downloadable artifacts.
type ConvertService struct {
	config  *config.Config
	engine  *reshape.Engine
	metrics *metric.Metrics
	logger  *slog.Logger
}

// NewConvertService creates a convert service with a specific logger
func NewConvertService(cfg *config.Config, metrics *metric.Metrics, logger *slog.Logger) *ConvertService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "convert_service")

	logger.Info("ConvertService initialized",
		slog.Int64("max_upload_bytes", cfg.Convert.MaxUploadBytes),
		slog.Bool("bom_prefix", cfg.Convert.BOMPrefix))

	return &ConvertService{
		config:  cfg,
		engine:  reshape.NewEngine(logger),
		metrics: metrics,
		logger:  logger,
	}
}

// Convert reads one export file from src and runs the full conversion. The
// returned result is never nil: it always carries the run diagnostics and
// summary, and on error the table fields stay empty. The error, when
// non-nil, wraps one of the reshape or tableio sentinels.
func (s *ConvertService) Convert(ctx context.Context, src io.Reader, filename string, opts domain.ConvertOptions) (*domain.ConversionResult, error) {
	start := time.Now()
	runID := uuid.New().String()

	logger := s.logger.With(
		slog.String("run_id", runID),
		slog.String("source_file", filename))

	logger.InfoContext(ctx, "conversion started",
		slog.String("encoding", valueOrDefault(opts.Encoding, tableio.EncodingUTF8)),
		slog.String("delimiter", valueOrDefault(opts.Delimiter, tableio.DelimiterComma)),
		slog.String("sheet", opts.Sheet))

	diags := reshape.NewDiagnostics()
	result := &domain.ConversionResult{
		Summary: domain.ConversionSummary{
			RunID:      runID,
			SourceFile: filename,
		},
	}

	table, err := s.readSource(src, filename, opts, diags)
	if err != nil {
		return s.finish(ctx, logger, result, diags, start, err)
	}

	// The engine never checks ctx mid-run, so honor a dead request before
	// handing the table over.
	if err := ctx.Err(); err != nil {
		return s.finish(ctx, logger, result, diags, start, err)
	}

	run, err := s.engine.Run(table, diags)
	if err != nil {
		return s.finish(ctx, logger, result, diags, start, err)
	}

	result.Summary.SourceRows = run.SourceRows
	result.Summary.FlatRecords = run.FlatRecords
	result.Summary.OutputRows = len(run.Rows)
	result.Summary.Meters = countMeters(run.Rows)
	result.Summary.ReadingTypes = run.ReadingTypes
	result.Summary.UsedFallback = run.UsedFallback
	result.Data = run.DataTable()
	result.UnitTable = run.UnitTable()
	result.ColumnTable = run.ColumnTable()
	result.Units = run.Units

	return s.finish(ctx, logger, result, diags, start, nil)
}

// ConvertFile runs Convert over a file on disk. Used by the batch CLI.
func (s *ConvertService) ConvertFile(ctx context.Context, path string, opts domain.ConvertOptions) (*domain.ConversionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		openErr := fmt.Errorf("%w: %v", tableio.ErrSourceRead, err)
		diags := reshape.NewDiagnostics()
		diags.AddError(reshape.CodeSourceReadError, openErr.Error())
		result := &domain.ConversionResult{
			Summary:     domain.ConversionSummary{SourceFile: filepath.Base(path)},
			Diagnostics: diags.Entries(),
		}
		s.metrics.RecordConversion(metric.StatusFailure, 0)
		return result, openErr
	}
	defer f.Close()

	return s.Convert(ctx, f, filepath.Base(path), opts)
}

// readSource detects the file format and parses it into a table, recording
// the uploaded size and any read failure as a diagnostic.
func (s *ConvertService) readSource(src io.Reader, filename string, opts domain.ConvertOptions, diags *reshape.Diagnostics) (domain.Table, error) {
	format, err := tableio.DetectFormat(filename)
	if err != nil {
		diags.AddError(reshape.CodeSourceReadError, err.Error())
		return domain.Table{}, err
	}

	counted := &countingReader{r: src}

	var table domain.Table
	switch format {
	case tableio.FormatWorkbook:
		table, err = tableio.ReadWorkbook(counted, opts.Sheet)
	default:
		table, err = tableio.ReadDelimited(counted, tableio.ReadOptions{
			Encoding:  opts.Encoding,
			Delimiter: opts.Delimiter,
		})
	}
	if err != nil {
		code := reshape.CodeSourceReadError
		if errors.Is(err, tableio.ErrEncoding) {
			code = reshape.CodeEncodingError
		}
		diags.AddError(code, err.Error())
		return domain.Table{}, err
	}

	s.metrics.RecordSourceSize(counted.n)
	return table, nil
}

// finish seals the result with diagnostics and duration, records the run
// metrics, and logs the outcome.
func (s *ConvertService) finish(ctx context.Context, logger *slog.Logger, result *domain.ConversionResult, diags *reshape.Diagnostics, start time.Time, err error) (*domain.ConversionResult, error) {
	elapsed := time.Since(start)
	result.Diagnostics = diags.Entries()
	result.Summary.DurationMS = elapsed.Milliseconds()

	for _, w := range diags.Warnings() {
		s.metrics.RecordWarning(w.Code)
	}

	if err != nil {
		s.metrics.RecordConversion(metric.StatusFailure, elapsed)
		logger.ErrorContext(ctx, "conversion failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", elapsed.Milliseconds()))
		return result, err
	}

	s.metrics.RecordConversion(metric.StatusSuccess, elapsed)
	s.metrics.RecordVolume(result.Summary.FlatRecords, result.Summary.OutputRows)

	logger.InfoContext(ctx, "conversion completed",
		slog.Int("source_rows", result.Summary.SourceRows),
		slog.Int("flat_records", result.Summary.FlatRecords),
		slog.Int("output_rows", result.Summary.OutputRows),
		slog.Int("meters", result.Summary.Meters),
		slog.Int("warnings", len(result.Warnings())),
		slog.Bool("used_timestamp_fallback", result.Summary.UsedFallback),
		slog.Int64("duration_ms", elapsed.Milliseconds()))

	return result, nil
}

// Artifact is one rendered output file ready to be written or downloaded.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RenderCSV renders the primary data table of a successful run as
// delimited text. The delimiter is the caller's choice; empty means comma.
func (s *ConvertService) RenderCSV(result *domain.ConversionResult, delimiter string) (*Artifact, error) {
	var buf bytes.Buffer
	err := tableio.WriteTable(&buf, result.Data, tableio.WriteOptions{
		Delimiter: delimiter,
		BOMPrefix: s.config.Convert.BOMPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render CSV: %w", err)
	}

	return &Artifact{
		Filename:    ConvertedFilename(result.Summary.SourceFile, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

// RenderWorkbook renders a successful run as a three-sheet Excel workbook:
// the converted data, the unit map, and the column descriptions.
func (s *ConvertService) RenderWorkbook(result *domain.ConversionResult) (*Artifact, error) {
	var buf bytes.Buffer
	err := tableio.WriteWorkbook(&buf, []tableio.Sheet{
		{Name: result.Data.Name, Table: result.Data},
		{Name: result.UnitTable.Name, Table: result.UnitTable},
		{Name: result.ColumnTable.Name, Table: result.ColumnTable},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return &Artifact{
		Filename:    ConvertedFilename(result.Summary.SourceFile, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// FormatCatalog describes what the converter accepts and produces. Served
// by the formats endpoint and printed in the CLI usage text.
type FormatCatalog struct {
	Extensions     []string `json:"extensions"`
	Encodings      []string `json:"encodings"`
	Delimiters     []string `json:"delimiters"`
	Outputs        []string `json:"outputs"`
	MaxUploadBytes int64    `json:"max_upload_bytes"`
}

// Formats returns the accepted extensions, encodings, delimiters and output
// formats together with the upload size limit.
func (s *ConvertService) Formats() FormatCatalog {
	return FormatCatalog{
		Extensions:     []string{".csv", ".tsv", ".txt", ".xlsx", ".xlsm", ".xltx", ".xltm"},
		Encodings:      tableio.Encodings(),
		Delimiters:     tableio.Delimiters(),
		Outputs:        []string{"json", "csv", "xlsx"},
		MaxUploadBytes: s.config.Convert.MaxUploadBytes,
	}
}

// ConvertedFilename derives an output filename from the source name:
// "building_a.csv" becomes "building_a_converted.csv".
func ConvertedFilename(source, ext string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "export"
	}
	return base + config.ConvertedFileSuffix + "." + ext
}

// countingReader counts bytes as they stream through, so the service can
// record source sizes without buffering the upload twice.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func countMeters(rows []domain.OutputRow) int {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		seen[row.Meter] = struct{}{}
	}
	return len(seen)
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
