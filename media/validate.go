// Package media validates and prepares uploaded photos.
package media

import (
	"errors"
	"strings"
)

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize = 8 << 20 // 8MB

// AllowedTypes lists the accepted MIME types in display order.
var AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrTooManyPixels   = errors.New("image dimensions too large")
)

// ValidationError carries the user-facing message for a rejected upload.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidateImage checks the MIME type first, then the size.
func ValidateImage(mimeType string, size int64) error {
	if !allowedType(mimeType) {
		return &ValidationError{
			Err:     ErrUnsupportedType,
			Message: "File type not supported. Please upload JPG, PNG, or WebP images.",
		}
	}
	if size > MaxUploadSize {
		return &ValidationError{
			Err:     ErrTooLarge,
			Message: "File size too large. Please upload images smaller than 8MB.",
		}
	}
	return nil
}

func allowedType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, t := range AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}
