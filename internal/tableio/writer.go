package tableio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// WriteOptions configures delimited output.
type WriteOptions struct {
	Delimiter string
	// BOMPrefix prepends the UTF-8 BOM so Excel opens the file with the
	// right encoding.
	BOMPrefix bool
}

// WriteTable writes a table as delimited text, header row first.
func WriteTable(w io.Writer, table domain.Table, opts WriteOptions) error {
	comma, err := DelimiterRune(opts.Delimiter)
	if err != nil {
		return err
	}

	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	writer.Comma = comma

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTableFile writes a table as a delimited file, creating parent
// directories as needed.
func WriteTableFile(path string, table domain.Table, opts WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := WriteTable(f, table, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
