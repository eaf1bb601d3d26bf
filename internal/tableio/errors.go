package tableio

import "errors"

// Sentinel errors returned by the readers. The service layer maps these to
// API problem responses with errors.Is.
var (
	ErrSourceRead           = errors.New("source file not readable")
	ErrEncoding             = errors.New("source file not valid in the declared encoding")
	ErrUnsupportedFormat    = errors.New("unsupported file format")
	ErrUnsupportedEncoding  = errors.New("unsupported encoding")
	ErrUnsupportedDelimiter = errors.New("unsupported delimiter")
	ErrSheetNotFound        = errors.New("worksheet not found")
)
