package http

import (
	"context"
	"io"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/services"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// ConvertServiceInterface defines the interface for conversion operations
type ConvertServiceInterface interface {
	Convert(ctx context.Context, src io.Reader, filename string, opts domain.ConvertOptions) (*domain.ConversionResult, error)
	RenderCSV(result *domain.ConversionResult, delimiter string) (*services.Artifact, error)
	RenderWorkbook(result *domain.ConversionResult) (*services.Artifact, error)
	Formats() services.FormatCatalog
}
