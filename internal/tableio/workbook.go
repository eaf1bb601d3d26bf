package tableio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// Sheet pairs a worksheet name with the table it holds.
type Sheet struct {
	Name  string
	Table domain.Table
}

// WriteWorkbook writes the sheets into a new Excel workbook. Cells holding
// plain numbers are written as numeric cells so spreadsheet formulas work
// on them; everything else stays text.
func WriteWorkbook(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
			}
		}

		header := make([]interface{}, len(sheet.Table.Columns))
		for c, name := range sheet.Table.Columns {
			header[c] = name
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write headers of %q: %w", sheet.Name, err)
		}

		for r, row := range sheet.Table.Rows {
			cells := make([]interface{}, len(row))
			for c, cell := range row {
				cells[c] = cellValue(cell)
			}
			addr, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return fmt.Errorf("failed to address row %d of %q: %w", r+2, sheet.Name, err)
			}
			if err := f.SetSheetRow(sheet.Name, addr, &cells); err != nil {
				return fmt.Errorf("failed to write row %d of %q: %w", r+2, sheet.Name, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteWorkbookFile writes the sheets into a workbook file, creating parent
// directories as needed.
func WriteWorkbookFile(path string, sheets []Sheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := WriteWorkbook(f, sheets); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// cellValue keeps numeric output numeric in the workbook. Timestamps and
// names fail the parse and stay strings.
func cellValue(cell string) interface{} {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v
	}
	return cell
}
