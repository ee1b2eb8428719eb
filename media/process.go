package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxPreviewWidth = 1200
	jpegQuality     = 80

	// MaxPixels caps width*height so a small, highly compressed file cannot
	// decode into hundreds of megabytes.
	MaxPixels = 50_000_000
)

// Preview is a downscaled JPEG rendition of an upload.
type Preview struct {
	Data   []byte
	Width  int
	Height int
	Format string // decoder that read the source: "jpeg", "png", "webp"
}

// CheckDimensions reads only the image header and rejects images above
// MaxPixels with a *ValidationError.
func CheckDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return &ValidationError{
			Err:     ErrTooManyPixels,
			Message: "Image dimensions too large. Please upload images under 50 megapixels.",
		}
	}
	return nil
}

// ProcessPreview checks the header dimensions, decodes data, scales it down
// to maxPreviewWidth if wider, and re-encodes it as JPEG.
func ProcessPreview(data []byte) (Preview, error) {
	if err := CheckDimensions(data); err != nil {
		return Preview{}, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Preview{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxPreviewWidth {
		newH := h * maxPreviewWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxPreviewWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxPreviewWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Preview{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Preview{Data: buf.Bytes(), Width: w, Height: h, Format: format}, nil
}
