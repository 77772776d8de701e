package validation

import (
	"fmt"
	"strings"

	apperrors "go-photo-critique/internal/errors"
)

// UploadValidator checks uploaded image files before they are decoded
type UploadValidator struct {
	maxBytes     int64
	allowedTypes []string
}

// NewUploadValidator creates an upload validator with the default content
// type allowlist. maxBytes <= 0 disables the size check.
func NewUploadValidator(maxBytes int64) *UploadValidator {
	return &UploadValidator{
		maxBytes: maxBytes,
		allowedTypes: []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"image/webp",
			"image/bmp",
			"image/tiff",
		},
	}
}

// ValidateUpload checks the declared size and content type of an upload.
// An empty or generic binary content type passes; format sniffing happens at
// decode time.
func (v *UploadValidator) ValidateUpload(contentType string, size int64) error {
	if size <= 0 {
		return apperrors.NewValidationError("uploaded file is empty", nil)
	}
	if v.maxBytes > 0 && size > v.maxBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("uploaded file size %d exceeds limit of %d bytes", size, v.maxBytes), nil)
	}
	if contentType != "" && !v.isTypeAllowed(contentType) {
		return apperrors.NewValidationError(
			fmt.Sprintf("unsupported content type %q", contentType), nil)
	}
	return nil
}

// isTypeAllowed checks the media type, ignoring any parameters
func (v *UploadValidator) isTypeAllowed(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))
	// Clients that do not sniff MIME types label files as octet-stream.
	if mediaType == "application/octet-stream" {
		return true
	}
	for _, allowed := range v.allowedTypes {
		if mediaType == allowed {
			return true
		}
	}
	return false
}
