package tableio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// utf8BOM is the byte order mark Excel prepends to UTF-8 CSV exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadOptions selects how a source file is decoded. Zero values mean UTF-8,
// comma and the first worksheet.
type ReadOptions struct {
	Encoding  string
	Delimiter string
	Sheet     string
}

// ReadDelimited parses delimited text into a table. The first row becomes
// the column headers; data rows may be ragged (trailing cells absent). A
// leading BOM is stripped. Input that is not valid UTF-8 after decoding
// fails with ErrEncoding rather than flowing mojibake into the output.
func ReadDelimited(r io.Reader, opts ReadOptions) (domain.Table, error) {
	comma, err := DelimiterRune(opts.Delimiter)
	if err != nil {
		return domain.Table{}, err
	}
	decoded, err := decodingReader(r, opts.Encoding)
	if err != nil {
		return domain.Table{}, err
	}

	buffered := bufio.NewReader(decoded)
	stripBOM(buffered)

	reader := csv.NewReader(buffered)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	if len(rows) == 0 {
		return domain.Table{}, fmt.Errorf("%w: file has no header row", ErrSourceRead)
	}

	for i, row := range rows {
		for _, cell := range row {
			if !utf8.ValidString(cell) {
				return domain.Table{}, fmt.Errorf("%w: invalid byte sequence in row %d", ErrEncoding, i+1)
			}
		}
	}

	return domain.Table{Columns: rows[0], Rows: rows[1:]}, nil
}

// ReadFile opens a source file and parses it with the reader its extension
// calls for.
func ReadFile(path string, opts ReadOptions) (domain.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return domain.Table{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	defer f.Close()

	switch format {
	case FormatWorkbook:
		return ReadWorkbook(f, opts.Sheet)
	default:
		return ReadDelimited(f, opts)
	}
}

// decodingReader wraps r so its bytes come out as UTF-8.
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8:
		return r, nil
	case EncodingLatin1, EncodingISO88591:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingCP1252, EncodingWindows1252:
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}

func stripBOM(r *bufio.Reader) {
	if head, err := r.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		r.Discard(len(utf8BOM))
	}
}
