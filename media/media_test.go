package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		mime    string
		size    int64
		wantErr error
	}{
		{"image/png", 9 << 20, ErrTooLarge},
		{"application/pdf", 1 << 10, ErrUnsupportedType},
		{"image/webp", 1 << 10, nil},
		{"image/jpeg", MaxUploadSize, nil},
		{"image/jpg", 1, nil},
		{"IMAGE/PNG", 1, nil},
		{"image/gif", 1, ErrUnsupportedType},
		{"application/pdf", 9 << 20, ErrUnsupportedType},
	}
	for _, tt := range tests {
		err := ValidateImage(tt.mime, tt.size)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("ValidateImage(%q, %d) = %v, want nil", tt.mime, tt.size, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateImage(%q, %d) = %v, want %v", tt.mime, tt.size, err, tt.wantErr)
		}
	}
}

func TestValidateImageMessages(t *testing.T) {
	err := ValidateImage("image/png", 9<<20)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Error() != "File size too large. Please upload images smaller than 8MB." {
		t.Errorf("unexpected message %q", verr.Error())
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, G: 120, B: 40, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessPreviewKeepsSmallImages(t *testing.T) {
	p, err := ProcessPreview(encodePNG(t, 40, 30))
	if err != nil {
		t.Fatalf("ProcessPreview failed: %v", err)
	}
	if p.Width != 40 || p.Height != 30 {
		t.Errorf("size = %dx%d, want 40x30", p.Width, p.Height)
	}
	if p.Format != "png" {
		t.Errorf("format = %q, want png", p.Format)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(p.Data))
	if err != nil {
		t.Fatalf("preview is not a jpeg: %v", err)
	}
	if cfg.Width != 40 {
		t.Errorf("jpeg width = %d, want 40", cfg.Width)
	}
}

func TestProcessPreviewDownscales(t *testing.T) {
	p, err := ProcessPreview(encodePNG(t, 2400, 600))
	if err != nil {
		t.Fatalf("ProcessPreview failed: %v", err)
	}
	if p.Width != maxPreviewWidth || p.Height != 300 {
		t.Errorf("size = %dx%d, want %dx300", p.Width, p.Height, maxPreviewWidth)
	}
}

func TestProcessPreviewRejectsGarbage(t *testing.T) {
	if _, err := ProcessPreview([]byte("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGenerateImageFilename(t *testing.T) {
	date := time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		title string
		want  string
	}{
		{"Golden Hour Photography", "golden-hour-photography-2024-01-15"},
		{"  Café & Bar!  ", "-caf-bar--2024-01-15"},
		{"already-slugged", "already-slugged-2024-01-15"},
	}
	for _, tt := range tests {
		if got := GenerateImageFilename(tt.title, date); got != tt.want {
			t.Errorf("GenerateImageFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestTitleFromFilename(t *testing.T) {
	if got := TitleFromFilename("Portrait_Shot.final.png"); got != "Portrait Shot final" {
		t.Errorf("TitleFromFilename = %q", got)
	}
}

func TestUniqueFilename(t *testing.T) {
	dir := t.TempDir()
	if got := UniqueFilename(dir, "photo", ".jpg"); got != "photo.jpg" {
		t.Fatalf("first candidate = %q, want photo.jpg", got)
	}
	for _, name := range []string{"photo.jpg", "photo-2.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := UniqueFilename(dir, "photo", ".jpg"); got != "photo-3.jpg" {
		t.Errorf("UniqueFilename = %q, want photo-3.jpg", got)
	}
}

// pngHeader returns a PNG holding only the signature and an IHDR chunk for a
// w x h 8-bit grayscale image. That is enough for image.DecodeConfig.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestProcessPreviewRejectsHugeDimensions(t *testing.T) {
	data := pngHeader(16000, 16000)
	if err := ValidateImage("image/png", int64(len(data))); err != nil {
		t.Fatalf("small file should pass the size check: %v", err)
	}

	_, err := ProcessPreview(data)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !errors.Is(err, ErrTooManyPixels) {
		t.Errorf("expected ErrTooManyPixels, got %v", err)
	}
	if verr.Message != "Image dimensions too large. Please upload images under 50 megapixels." {
		t.Errorf("unexpected message %q", verr.Message)
	}
}

func TestCheckDimensions(t *testing.T) {
	if err := CheckDimensions(pngHeader(8000, 6000)); err != nil {
		t.Errorf("48MP should pass: %v", err)
	}
	if err := CheckDimensions(pngHeader(10000, 5001)); !errors.Is(err, ErrTooManyPixels) {
		t.Errorf("50.01MP should be rejected, got %v", err)
	}
	if err := CheckDimensions([]byte("nope")); err == nil || errors.Is(err, ErrTooManyPixels) {
		t.Errorf("expected decode error, got %v", err)
	}
}
