package testutil

import (
	"log/slog"
	"testing"
)

func TestBufferedSlogHandler_CapturesRecords(t *testing.T) {
	logger, handler := NewTestLogger(nil)

	logger.Info("conversion started", slog.String("file", "export.csv"))
	logger.Warn("duplicate column skipped")
	logger.Error("conversion failed", slog.Int("rows", 0))

	if got := handler.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
	if !handler.ContainsMessage("conversion started") {
		t.Error("info record not captured")
	}
	if !handler.ContainsAttr("file", "export.csv") {
		t.Error("string attribute not captured")
	}
	if !handler.ContainsAttr("rows", int64(0)) {
		t.Error("int attribute not captured as int64")
	}

	errs := handler.RecordsByLevel(slog.LevelError)
	if len(errs) != 1 || errs[0].Message != "conversion failed" {
		t.Errorf("RecordsByLevel(Error) = %v", errs)
	}
}

func TestBufferedSlogHandler_WithAttrsSharesBuffer(t *testing.T) {
	logger, handler := NewTestLogger(nil)

	derived := logger.With(slog.String("component", "reshape"))
	derived.Info("decomposed columns", slog.Int("count", 4))

	if got := handler.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	if !handler.ContainsAttr("component", "reshape") {
		t.Error("bound attribute missing from captured record")
	}
	if !handler.ContainsAttr("count", int64(4)) {
		t.Error("call attribute missing from captured record")
	}
}

func TestBufferedSlogHandler_Clear(t *testing.T) {
	logger, handler := NewTestLogger(nil)
	logger.Info("one")
	handler.Clear()
	if got := handler.Count(); got != 0 {
		t.Errorf("Count() after Clear = %d, want 0", got)
	}
}
