// Package api contains API contract definitions for the conversion service.
// Version v1 represents the current stable API version.
package api

import (
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// Conversion API requests

// ConvertRequest is the decoded form of one conversion request. The export
// file itself travels as the "file" multipart part; these fields mirror the
// remaining form values.
type ConvertRequest struct {
	Filename string `json:"filename" validate:"required,filename"`
	domain.ConvertOptions
}

// Conversion API responses

// ConvertResponse is the JSON envelope of a successful conversion. Data
// carries the run summary, diagnostics and a preview of the converted rows;
// the csv and xlsx outputs hold the complete table.
type ConvertResponse struct {
	Status string                  `json:"status"`
	Data   domain.ConversionResult `json:"data"`
}
