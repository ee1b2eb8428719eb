package exif

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return NewExtractor(
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(func() time.Time { return fixedNow }),
	)
}

// jpegWithAPP1 builds SOI + APP1 + length + tag + padding.
func jpegWithAPP1(tag string) []byte {
	b := []byte{0xFF, 0xD8, 0xFF, 0xE1, 0x00, 0x10}
	b = append(b, []byte(tag)...)
	b = append(b, 0x00, 0x00)
	return b
}

func TestExtractNonSOIReturnsEmpty(t *testing.T) {
	e := newTestExtractor()
	got := e.Extract([]byte{0x89, 0x50, 0x4E, 0x47}, "image/jpeg")
	assert.True(t, got.IsZero(), "expected empty record, got %+v", got)
}

func TestExtractEmptyBufferReturnsEmpty(t *testing.T) {
	e := newTestExtractor()
	got := e.Extract(nil, "image/jpeg")
	assert.True(t, got.IsZero())
}

func TestExtractExifSegment(t *testing.T) {
	e := newTestExtractor()
	got := e.Extract(jpegWithAPP1("Exif"), "image/jpeg")

	assert.Equal(t, "Canon", got.Make)
	assert.Equal(t, "EOS R5", got.Model)
	assert.Equal(t, "f/2.8", got.Aperture)
	assert.Equal(t, "1/250", got.ShutterSpeed)
	assert.Equal(t, 100, got.ISO)
	assert.Equal(t, "50mm", got.FocalLength)
	assert.Equal(t, "2024-01-15T18:30:00.000Z", got.DateTimeOriginal)
	assert.Empty(t, got.LensModel)
}

func TestExtractJPGAlias(t *testing.T) {
	e := newTestExtractor()
	got := e.Extract(jpegWithAPP1("Exif"), "image/jpg")
	assert.Equal(t, "Canon", got.Make)
}

func TestExtractAPP1WithoutExifTag(t *testing.T) {
	e := newTestExtractor()
	got := e.Extract(jpegWithAPP1("XMP "), "image/jpeg")
	assert.True(t, got.IsZero(), "expected empty record, got %+v", got)
}

func TestExtractEvenLengthWithoutAPP1(t *testing.T) {
	e := newTestExtractor()
	got := e.Extract([]byte{0xFF, 0xD8, 0x00, 0x00, 0xFF, 0xD9}, "image/jpeg")
	assert.True(t, got.IsZero())
}

func TestExtractTruncatedScanFallsBackToMock(t *testing.T) {
	e := newTestExtractor()
	// Odd length: the two-byte read at the final offset runs off the end.
	got := e.Extract([]byte{0xFF, 0xD8, 0x00, 0x00, 0x00}, "image/jpeg")
	assertMock(t, got)
}

func TestExtractTruncatedAPP1FallsBackToMock(t *testing.T) {
	e := newTestExtractor()
	got := e.Extract([]byte{0xFF, 0xD8, 0xFF, 0xE1, 0x00, 0x10, 'E', 'x'}, "image/jpeg")
	assertMock(t, got)
}

func TestExtractNonJPEGUsesMock(t *testing.T) {
	e := newTestExtractor()
	for _, mime := range []string{"image/png", "image/webp", ""} {
		got := e.Extract(jpegWithAPP1("Exif"), mime)
		assertMock(t, got)
	}
}

func TestMockIsDeterministicForSeed(t *testing.T) {
	a := newTestExtractor().Mock()
	b := newTestExtractor().Mock()
	require.Equal(t, a, b)
}

func assertMock(t *testing.T, d Data) {
	t.Helper()
	found := slices.ContainsFunc(mockCameras, func(c camera) bool {
		return c.make == d.Make && c.model == d.Model
	})
	assert.True(t, found, "unexpected camera %q %q", d.Make, d.Model)
	assert.Contains(t, mockLenses, d.LensModel)
	assert.Contains(t, mockApertures, d.Aperture)
	assert.Contains(t, mockShutterSpeeds, d.ShutterSpeed)
	assert.Contains(t, mockISOs, d.ISO)
	assert.Equal(t, "50mm", d.FocalLength)
	assert.Equal(t, "2024-01-15T18:30:00.000Z", d.DateTimeOriginal)
}

func TestFormat(t *testing.T) {
	s := Format(Data{
		Make:             "Sony",
		Model:            "A7R IV",
		LensModel:        "85mm f/1.4",
		Aperture:         "f/1.4",
		ShutterSpeed:     "1/500",
		ISO:              200,
		DateTimeOriginal: "2024-01-15T18:30:00.000Z",
	})
	assert.Equal(t, Summary{
		Camera:   "Sony A7R IV",
		Lens:     "85mm f/1.4",
		Settings: "f/1.4, 1/500, ISO 200",
		Date:     "1/15/2024",
	}, s)
}

func TestFormatEmpty(t *testing.T) {
	s := Format(Data{Make: "Canon"})
	assert.Equal(t, "Unknown Camera", s.Camera)
	assert.Equal(t, "Unknown Lens", s.Lens)
	assert.Empty(t, s.Settings)
	assert.Empty(t, s.Date)
}
