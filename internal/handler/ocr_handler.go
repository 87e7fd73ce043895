package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logbookocr/internal/domain"
	"logbookocr/internal/export"
	"logbookocr/internal/service"
)

// OCRHandler handles logbook page extraction requests.
type OCRHandler struct {
	svc      service.ExtractionService
	maxBytes int64
	logger   *zap.Logger
}

// NewOCRHandler creates a new OCRHandler. maxBytes bounds accepted uploads.
func NewOCRHandler(svc service.ExtractionService, maxBytes int64, logger *zap.Logger) *OCRHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OCRHandler{svc: svc, maxBytes: maxBytes, logger: logger}
}

// Process handles POST /api/v1/ocr/process
// @Summary Extract flight records from a logbook page
// @Description Upload a PNG or JPEG scan of a pilot logbook page and receive the extracted flight records. The extraction strategy (AWS, GEMINI or HYBRID) is chosen by server configuration.
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param file formData file true "Logbook page image (PNG or JPEG)"
// @Param format query string false "Output format" Enums(json, csv, xlsx)
// @Success 200 {object} Response{data=domain.ExtractionResult} "Extraction finished"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type or unknown format"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 429 {object} ErrorResponseBody "Model provider rate limited"
// @Failure 500 {object} ErrorResponseBody "OCR processing failed"
// @Router /ocr/process [post]
func (h *OCRHandler) Process(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be one of: json, csv, xlsx")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	// Read one byte past the limit so oversize uploads are detectable.
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}

	contentType, err := service.ValidateImage(data, header.Header.Get("Content-Type"), h.maxBytes)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	result, err := h.svc.Process(c.Request.Context(), service.ProcessInput{
		Image:       data,
		ContentType: contentType,
	})
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	if format == export.FormatJSON {
		RespondOK(c, result)
		return
	}
	h.respondFile(c, format, header.Filename, result)
}

func (h *OCRHandler) respondFile(c *gin.Context, format export.Format, uploadName string, result *domain.ExtractionResult) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, result); err != nil {
		HandleError(c, h.logger, fmt.Errorf("rendering %s export: %w", format, err))
		return
	}

	base := strings.TrimSuffix(filepath.Base(uploadName), filepath.Ext(uploadName))
	c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename(base, format)+`"`)
	c.Header("X-Extraction-Message", result.Message)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
