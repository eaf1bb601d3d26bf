package tableio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the physical layout of a source or output file.
type Format string

const (
	FormatDelimited Format = "delimited"
	FormatWorkbook  Format = "workbook"
)

// Encoding names accepted for delimited sources. UTF-8 is the default; a
// leading BOM is tolerated and stripped regardless of the declared
// encoding.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin-1"
	EncodingISO88591    = "iso-8859-1"
	EncodingCP1252      = "cp1252"
	EncodingWindows1252 = "windows-1252"
)

// Delimiter names accepted for delimited sources and CSV output.
const (
	DelimiterComma     = "comma"
	DelimiterSemicolon = "semicolon"
	DelimiterTab       = "tab"
	DelimiterPipe      = "pipe"
)

// Encodings lists the accepted encoding names, defaults first. Serves the
// formats endpoint and the CLI usage text.
func Encodings() []string {
	return []string{EncodingUTF8, EncodingLatin1, EncodingISO88591, EncodingCP1252, EncodingWindows1252}
}

// Delimiters lists the accepted delimiter names, defaults first.
func Delimiters() []string {
	return []string{DelimiterComma, DelimiterSemicolon, DelimiterTab, DelimiterPipe}
}

// DetectFormat classifies a file by its extension. Delimited text covers
// .csv, .tsv and .txt; workbooks cover the formats excelize can open.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv", ".txt":
		return FormatDelimited, nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatWorkbook, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// DelimiterRune resolves a delimiter name to the rune the csv package
// needs. The empty name selects the comma default.
func DelimiterRune(name string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DelimiterComma:
		return ',', nil
	case DelimiterSemicolon:
		return ';', nil
	case DelimiterTab:
		return '\t', nil
	case DelimiterPipe:
		return '|', nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDelimiter, name)
	}
}
