package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/config"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/infrastructure"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/metric"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/services"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/tableio"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "input export file or directory (defaults to data/uploads relative to executable)")
	out := flag.String("out", "", "output directory for converted files (defaults to data/reports relative to executable)")
	encoding := flag.String("encoding", "", "source text encoding: utf-8, latin-1, iso-8859-1, cp1252 or windows-1252 (defaults to utf-8)")
	delimiter := flag.String("delimiter", "", "field delimiter for csv input and output: comma, semicolon, tab or pipe (defaults to comma)")
	sheet := flag.String("sheet", "", "workbook sheet to convert (defaults to the first sheet)")
	format := flag.String("format", "csv", "output format: csv, xlsx or both")
	workers := flag.Int("workers", 0, "number of files converted in parallel (defaults to the configured worker count)")
	flag.Parse()

	if *format != "csv" && *format != "xlsx" && *format != "both" {
		fmt.Fprintf(os.Stderr, "unsupported output format %q: want csv, xlsx or both\n", *format)
		os.Exit(2)
	}

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	// Use centralized directories as defaults if not specified
	if *in == "" {
		*in = paths.UploadsDir
	}
	if *out == "" {
		*out = paths.ReportsDir
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("converter.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *workers <= 0 {
		*workers = cfg.Convert.Workers
	}
	if *workers <= 0 {
		*workers = 1
	}

	files, err := collectInputs(*in)
	if err != nil {
		logger.Error("failed to read input",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Warn("no convertible files found", slog.String("path", *in))
		return
	}

	logger.Info("starting batch conversion",
		slog.String("input", *in),
		slog.String("output_dir", *out),
		slog.Int("files", len(files)),
		slog.Int("workers", *workers),
		slog.String("format", *format))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := services.NewConvertService(cfg, metric.New(), logger)
	summary := runBatch(ctx, service, logger, batchOptions{
		Files:  files,
		OutDir: *out,
		Format: *format,
		Options: domain.ConvertOptions{
			Encoding:  *encoding,
			Delimiter: *delimiter,
			Sheet:     *sheet,
		},
		BOMPrefix: cfg.Convert.BOMPrefix,
		Workers:   *workers,
	})

	logger.Info("batch conversion finished",
		slog.Int("converted", summary.Converted),
		slog.Int("failed", summary.Failed),
		slog.Int("skipped", summary.Skipped))

	// Exit non-zero only when no file converted at all.
	if summary.Failed > 0 && summary.Converted == 0 {
		os.Exit(1)
	}
}

// batchOptions describes one batch conversion run.
type batchOptions struct {
	Files     []string
	OutDir    string
	Format    string
	Options   domain.ConvertOptions
	BOMPrefix bool
	Workers   int
}

// batchSummary tallies per-file outcomes of a batch run.
type batchSummary struct {
	Converted int
	Failed    int
	Skipped   int
}

// runBatch converts the files with a bounded worker pool. A failing file is
// logged and counted but never stops the rest of the batch; an interrupt
// skips the files that have not started yet.
func runBatch(ctx context.Context, service *services.ConvertService, logger *slog.Logger, batch batchOptions) batchSummary {
	var converted, failed, skipped atomic.Int64

	wopts := tableio.WriteOptions{
		Delimiter: batch.Options.Delimiter,
		BOMPrefix: batch.BOMPrefix,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batch.Workers)

	for _, file := range batch.Files {
		file := file
		g.Go(func() error {
			if ctx.Err() != nil {
				skipped.Add(1)
				return nil
			}

			result, err := service.ConvertFile(ctx, file, batch.Options)
			if err != nil {
				failed.Add(1)
				logger.Error("conversion failed",
					slog.String("file", filepath.Base(file)),
					slog.String("error", err.Error()))
				return nil
			}

			outputs, err := writeOutputs(result, file, batch.OutDir, batch.Format, wopts)
			if err != nil {
				failed.Add(1)
				logger.Error("failed to write output",
					slog.String("file", filepath.Base(file)),
					slog.String("error", err.Error()))
				return nil
			}

			converted.Add(1)
			logger.Info("converted",
				slog.String("file", filepath.Base(file)),
				slog.Int("output_rows", result.Summary.OutputRows),
				slog.Int("warnings", len(result.Warnings())),
				slog.Any("outputs", outputs))
			return nil
		})
	}

	// Workers report their own failures and always return nil
	_ = g.Wait()

	return batchSummary{
		Converted: int(converted.Load()),
		Failed:    int(failed.Load()),
		Skipped:   int(skipped.Load()),
	}
}

// collectInputs expands path into the list of convertible files. A plain
// file is returned as-is; a directory is scanned non-recursively for
// supported extensions, skipping Excel lock files.
func collectInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		if _, err := tableio.DetectFormat(entry.Name()); err != nil {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}

// writeOutputs writes the converted tables next to each other in outDir.
// The xlsx format packs all three tables into one workbook; csv writes the
// data table plus the units and columns sidecar files, and "both" writes
// the workbook alongside the csv set.
func writeOutputs(result *domain.ConversionResult, source, outDir, format string, opts tableio.WriteOptions) ([]string, error) {
	var outputs []string

	if format == "xlsx" || format == "both" {
		path := filepath.Join(outDir, services.ConvertedFilename(source, "xlsx"))
		sheets := []tableio.Sheet{
			{Name: result.Data.Name, Table: result.Data},
			{Name: result.UnitTable.Name, Table: result.UnitTable},
			{Name: result.ColumnTable.Name, Table: result.ColumnTable},
		}
		if err := tableio.WriteWorkbookFile(path, sheets); err != nil {
			return outputs, err
		}
		outputs = append(outputs, path)
	}

	if format == "csv" || format == "both" {
		targets := []struct {
			name  string
			table domain.Table
		}{
			{services.ConvertedFilename(source, "csv"), result.Data},
			{sidecarFilename(source, config.UnitsFileSuffix), result.UnitTable},
			{sidecarFilename(source, config.ColumnsFileSuffix), result.ColumnTable},
		}
		for _, target := range targets {
			path := filepath.Join(outDir, target.name)
			if err := tableio.WriteTableFile(path, target.table, opts); err != nil {
				return outputs, err
			}
			outputs = append(outputs, path)
		}
	}

	return outputs, nil
}

// sidecarFilename derives the name of a csv sidecar table from the source
// filename, e.g. "march.csv" and "_units" become "march_units.csv".
func sidecarFilename(source, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "export"
	}
	return base + suffix + ".csv"
}
