package caption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"Portrait_Shot.png", Portrait},
		{"my-PORTRAIT.jpg", Portrait},
		{"landscape.webp", Landscape},
		{"Alps_LandScape_01.JPG", Landscape},
		{"portrait-in-landscape.jpg", Portrait},
		{"IMG_0042.jpg", Image},
		{"", Image},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.name), "Classify(%q)", tt.name)
	}
}

func TestGeneratePortrait(t *testing.T) {
	r := Generate("Portrait_Shot.png")
	assert.True(t, strings.HasPrefix(r.Alt, "Professional portrait photograph"), r.Alt)
	assert.Equal(t, []string{"portrait", "photography", "professional", "lighting", "composition"}, r.Tags)
	assert.Len(t, r.Suggestions, 3)
}

func TestGenerateDefaultsToImage(t *testing.T) {
	r := Generate("   ")
	assert.Equal(t, results[Image].Alt, r.Alt)
	assert.Equal(t, results[Image].Caption, r.Caption)
}

func TestGenerateReturnsCopies(t *testing.T) {
	r := Generate("landscape.jpg")
	r.Tags[0] = "changed"
	assert.Equal(t, "landscape", Generate("landscape.jpg").Tags[0])
}
