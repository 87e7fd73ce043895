package service

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"logbookocr/internal/domain"
)

// ValidateImage checks an uploaded page image and returns its content type.
// The declared type is used when present; otherwise the type is sniffed from
// the data. Only PNG and JPEG up to maxBytes are accepted.
func ValidateImage(data []byte, declaredType string, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrUnsupportedFileType
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", domain.ErrFileTooLarge
	}

	contentType := normalizeContentType(declaredType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = normalizeContentType(mimetype.Detect(data).String())
	}

	if !domain.AllowedContentTypes[contentType] {
		return "", domain.ErrUnsupportedFileType
	}
	return contentType, nil
}

func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct == "image/jpg" || ct == "image/pjpeg" {
		return domain.ContentTypeJPEG
	}
	return ct
}
