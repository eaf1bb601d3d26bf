package tableio

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// ReadWorkbook parses one worksheet of an Excel workbook into a table. An
// empty sheet name selects the first worksheet. The first row becomes the
// column headers; excelize already trims trailing empty cells, so data rows
// may be ragged.
func ReadWorkbook(r io.Reader, sheet string) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	defer f.Close()

	name := strings.TrimSpace(sheet)
	if name == "" {
		name = f.GetSheetName(0)
	} else {
		found := false
		for _, s := range f.GetSheetList() {
			if strings.EqualFold(s, name) {
				name = s
				found = true
				break
			}
		}
		if !found {
			return domain.Table{}, fmt.Errorf("%w: %q (workbook has: %s)",
				ErrSheetNotFound, name, strings.Join(f.GetSheetList(), ", "))
		}
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	if len(rows) == 0 {
		return domain.Table{}, fmt.Errorf("%w: sheet %q has no header row", ErrSourceRead, name)
	}

	return domain.Table{Name: name, Columns: rows[0], Rows: rows[1:]}, nil
}
