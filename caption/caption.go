// Package caption suggests alt text, a caption and tags for an uploaded photo.
// Suggestions are picked from a fixed table keyed by what the filename hints
// the photo shows.
package caption

import "strings"

// Kind is the photo category inferred from a filename.
type Kind string

const (
	Portrait  Kind = "portrait"
	Landscape Kind = "landscape"
	Image     Kind = "image"
)

// DefaultFileName is classified when the caller supplies no filename.
const DefaultFileName = "uploaded-image"

// Result is the caption set returned to the editor.
type Result struct {
	Alt         string   `json:"alt"`
	Caption     string   `json:"caption"`
	Tags        []string `json:"tags"`
	Suggestions []string `json:"suggestions"`
}

var results = map[Kind]Result{
	Portrait: {
		Alt:     "Professional portrait photograph with excellent lighting and composition",
		Caption: "A stunning portrait that captures the subject's personality and character",
		Tags:    []string{"portrait", "photography", "professional", "lighting", "composition"},
		Suggestions: []string{
			"Consider adding context about the subject or location",
			"Mention the photographic style or technique used",
			"Include emotional or artistic elements if applicable",
		},
	},
	Landscape: {
		Alt:     "Beautiful landscape photograph showcasing natural scenery and dramatic lighting",
		Caption: "Breathtaking landscape view that captures the beauty of nature",
		Tags:    []string{"landscape", "nature", "scenery", "photography", "outdoors"},
		Suggestions: []string{
			"Specify the location or time of day",
			"Mention weather conditions or seasonal elements",
			"Describe the mood or atmosphere of the scene",
		},
	},
	Image: {
		Alt:     "High-quality photograph with excellent visual composition and clarity",
		Caption: "A compelling visual story captured through expert photography",
		Tags:    []string{"photography", "visual", "composition", "quality", "story"},
		Suggestions: []string{
			"Add specific details about the subject matter",
			"Include technical photography details if relevant",
			"Describe the artistic intent or message",
		},
	},
}

// Classify matches "portrait" before "landscape", case-insensitively.
func Classify(fileName string) Kind {
	name := strings.ToLower(fileName)
	switch {
	case strings.Contains(name, string(Portrait)):
		return Portrait
	case strings.Contains(name, string(Landscape)):
		return Landscape
	default:
		return Image
	}
}

// Generate returns a copy of the caption set for fileName's kind.
func Generate(fileName string) Result {
	if strings.TrimSpace(fileName) == "" {
		fileName = DefaultFileName
	}
	r := results[Classify(fileName)]
	return Result{
		Alt:         r.Alt,
		Caption:     r.Caption,
		Tags:        append([]string(nil), r.Tags...),
		Suggestions: append([]string(nil), r.Suggestions...),
	}
}
