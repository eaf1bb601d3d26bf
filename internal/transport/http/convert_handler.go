package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/errors"
	custommw "github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/middleware"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/services"
	apiv1 "github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/api/v1"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts/domain"
)

// previewRowLimit caps the data rows embedded in JSON responses. Clients
// needing every row request the csv or xlsx output instead.
const previewRowLimit = 100

// multipartMemory is how much of an upload ParseMultipartForm keeps in
// memory before spilling to disk.
const multipartMemory = 32 << 20

// ConvertHandler handles export-file conversion requests with RFC 7807
// compliance.
type ConvertHandler struct {
	service        ConvertServiceInterface
	validator      *custommw.ValidationMiddleware
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewConvertHandler creates a new convert handler
func NewConvertHandler(service ConvertServiceInterface, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ConvertHandler {
	return &ConvertHandler{
		service:        service,
		validator:      custommw.NewValidationMiddleware(logger),
		logger:         logger.With(slog.String("component", "convert_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the conversion routes
func (h *ConvertHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(custommw.ContentTypeValidator("multipart/form-data")).Post("/", h.Convert)
	return r
}

// Convert handles POST /api/convert: a multipart upload carrying the export
// file plus optional encoding, delimiter, sheet and output fields. The
// response is the conversion result as JSON, or the converted file as an
// attachment when output=csv or output=xlsx.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
			h.errorHandler.HandleError(w, r, &http.MaxBytesError{Limit: h.maxUploadBytes})
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "An export file is required in the \"file\" form field"))
		return
	}
	defer file.Close()

	req := apiv1.ConvertRequest{
		Filename: header.Filename,
		ConvertOptions: domain.ConvertOptions{
			Encoding:  r.FormValue("encoding"),
			Delimiter: r.FormValue("delimiter"),
			Sheet:     r.FormValue("sheet"),
			Output:    r.FormValue("output"),
		},
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "conversion requested",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
		slog.String("output", req.Output))

	result, err := h.service.Convert(r.Context(), file, header.Filename, req.ConvertOptions)
	if err != nil {
		h.respondConversionFailure(w, r, result, err)
		return
	}

	switch req.Output {
	case "csv":
		artifact, err := h.service.RenderCSV(result, req.Delimiter)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.writeArtifact(w, r, result, artifact)
	case "xlsx":
		artifact, err := h.service.RenderWorkbook(result)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.writeArtifact(w, r, result, artifact)
	default:
		// JSON responses carry a preview of the converted rows; the summary
		// holds the true counts and the csv/xlsx outputs stay complete.
		preview := *result
		preview.Data = result.Data.Head(previewRowLimit)
		render.JSON(w, r, apiv1.ConvertResponse{
			Status: "success",
			Data:   preview,
		})
	}
}

// Formats handles GET /api/formats
func (h *ConvertHandler) Formats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Formats())
}

// respondConversionFailure maps a conversion error to its problem response,
// attaching the run diagnostics so callers see what the converter saw.
func (h *ConvertHandler) respondConversionFailure(w http.ResponseWriter, r *http.Request, result *domain.ConversionResult, err error) {
	traceID := middleware.GetReqID(r.Context())

	problem := apierrors.MapConversionError(err, traceID)
	if result != nil && len(result.Diagnostics) > 0 {
		problem.WithExtension("diagnostics", result.Diagnostics)
	}

	h.logger.ErrorContext(r.Context(), "conversion request failed",
		slog.String("error", err.Error()),
		slog.Int("status", problem.Status),
		slog.String("request_id", traceID))

	if renderErr := render.Render(w, r, problem); renderErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to render problem response",
			slog.String("error", renderErr.Error()))
	}
}

// writeArtifact sends a rendered file as a download attachment. Warning
// counts travel in a header since the body is the file itself.
func (h *ConvertHandler) writeArtifact(w http.ResponseWriter, r *http.Request, result *domain.ConversionResult, artifact *services.Artifact) {
	if warnings := result.Warnings(); len(warnings) > 0 {
		w.Header().Set("X-Conversion-Warnings", strconv.Itoa(len(warnings)))
	}
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))

	if _, err := w.Write(artifact.Data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write artifact",
			slog.String("filename", artifact.Filename),
			slog.String("error", err.Error()))
	}
}
