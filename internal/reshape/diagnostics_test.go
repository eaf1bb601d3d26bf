package reshape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

func TestDiagnostics_Empty(t *testing.T) {
	d := NewDiagnostics()

	assert.False(t, d.HasErrors())
	assert.False(t, d.HasWarnings())
	assert.False(t, d.Failed())
	assert.Empty(t, d.Entries())
}

func TestDiagnostics_OrderAndSeverity(t *testing.T) {
	d := NewDiagnostics()
	d.AddWarning(CodeTimestampFallbackUsed, "fallback engaged")
	d.AddError(CodeTimestampParseError, "bad values")
	d.AddWarning(CodeMultipleTimestampColumns, "two candidates")

	entries := d.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, domain.SeverityWarning, entries[0].Severity)
	assert.Equal(t, domain.SeverityError, entries[1].Severity)
	assert.Equal(t, CodeMultipleTimestampColumns, entries[2].Code)

	assert.True(t, d.HasErrors())
	assert.True(t, d.HasWarnings())
	assert.True(t, d.Failed())

	warnings := d.Warnings()
	assert.Len(t, warnings, 2)
	assert.Equal(t, CodeTimestampFallbackUsed, warnings[0].Code)
}

func TestDiagnostics_EntriesReturnsCopy(t *testing.T) {
	d := NewDiagnostics()
	d.AddWarning(CodeTimestampFallbackUsed, "original")

	entries := d.Entries()
	entries[0].Message = "mutated"

	assert.Equal(t, "original", d.Entries()[0].Message)
}

func TestDiagnostics_WarningsOnlyNeverFails(t *testing.T) {
	d := NewDiagnostics()
	d.AddWarning(CodeTimestampFallbackUsed, "w1")
	d.AddWarning(CodeTimestampColumnRenamed, "w2")

	assert.True(t, d.HasWarnings())
	assert.False(t, d.Failed(), "warnings alone must not fail the run")
}
