// handlers_upload.go - CSV upload handler
package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sales-advisor/backend/internal/models"
	"github.com/sales-advisor/backend/internal/parser"
)

const uploadField = "file"

// Client-facing upload messages.
const (
	MessageNoFileUploaded = "No file uploaded"
	MessageNoFileSelected = "No file selected"
	MessageNotCSV         = "Please upload a CSV file"
)

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	parser   TableParser
	analyzer TableAnalyzer
	logger   *slog.Logger
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(p TableParser, a TableAnalyzer, logger *slog.Logger) UploadHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadHandlerImpl{
		parser:   p,
		analyzer: a,
		logger:   logger,
	}
}

type uploadResponse struct {
	Success  bool             `json:"success" msgpack:"success"`
	Analysis *models.Analysis `json:"analysis" msgpack:"analysis"`
}

// HandleUploadCSV parses the multipart field "file" and returns its analysis
func (h *UploadHandlerImpl) HandleUploadCSV(c echo.Context) error {
	req := c.Request()
	if limit := h.parser.MaxBytes(); limit > 0 && req.ContentLength > limit {
		return NewPayloadTooLargeError(nil)
	}

	part, err := nextUpload(req)
	if err != nil {
		return err
	}
	defer part.Close()

	filename := part.FileName()
	if err := parser.ValidateFilename(filename); err != nil {
		return uploadError(err)
	}

	table, err := h.parser.Parse(models.UploadedFile{Name: filename, Reader: part})
	if err != nil {
		return uploadError(err)
	}

	result, err := h.analyzer.Analyze(req.Context(), table)
	if err != nil {
		return NewInternalError(err.Error(), err)
	}

	h.logger.Info("csv analyzed",
		"file", filename,
		"bytes", req.ContentLength,
		"rows", result.TotalRows,
		"columns", len(result.Columns),
	)

	return respond(c, http.StatusOK, uploadResponse{Success: true, Analysis: result})
}

// nextUpload streams the request parts up to the first "file" part that
// carries a filename parameter. A part without one is a plain form value; an
// empty filename still counts and is rejected later as "No file selected".
func nextUpload(req *http.Request) (*multipart.Part, error) {
	mr, err := req.MultipartReader()
	if err != nil {
		return nil, NewBadRequestError(MessageNoFileUploaded, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, NewBadRequestError(MessageNoFileUploaded, http.ErrMissingFile)
		}
		if err != nil {
			if isTooLarge(err) {
				return nil, NewPayloadTooLargeError(err)
			}
			return nil, NewBadRequestError(MessageNoFileUploaded, err)
		}

		if part.FormName() == uploadField && hasFilename(part) {
			return part, nil
		}
		part.Close()
	}
}

func hasFilename(part *multipart.Part) bool {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return false
	}
	_, ok := params["filename"]
	return ok
}

func uploadError(err error) *APIError {
	switch {
	case isTooLarge(err):
		return NewPayloadTooLargeError(err)
	case errors.Is(err, parser.ErrNoFileSelected):
		return NewBadRequestError(MessageNoFileSelected, err)
	case errors.Is(err, parser.ErrNotCSV):
		return NewBadRequestError(MessageNotCSV, err)
	default:
		return NewInternalError(err.Error(), err)
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	var httpErr *echo.HTTPError
	return errors.As(err, &maxErr) ||
		(errors.As(err, &httpErr) && httpErr.Code == http.StatusRequestEntityTooLarge) ||
		errors.Is(err, parser.ErrPayloadTooLarge) ||
		errors.Is(err, multipart.ErrMessageTooLarge)
}
