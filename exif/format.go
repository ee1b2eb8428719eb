package exif

import (
	"fmt"
	"strings"
	"time"
)

// Summary is the display form of Data used by the camera details card.
type Summary struct {
	Camera   string `json:"camera"`
	Lens     string `json:"lens"`
	Settings string `json:"settings"`
	Date     string `json:"date,omitempty"`
}

// Format collapses d into the strings shown to the user.
func Format(d Data) Summary {
	s := Summary{
		Camera: "Unknown Camera",
		Lens:   "Unknown Lens",
	}
	if d.Make != "" && d.Model != "" {
		s.Camera = d.Make + " " + d.Model
	}
	if d.LensModel != "" {
		s.Lens = d.LensModel
	}
	var parts []string
	if d.Aperture != "" {
		parts = append(parts, d.Aperture)
	}
	if d.ShutterSpeed != "" {
		parts = append(parts, d.ShutterSpeed)
	}
	if d.ISO != 0 {
		parts = append(parts, fmt.Sprintf("ISO %d", d.ISO))
	}
	s.Settings = strings.Join(parts, ", ")
	if d.DateTimeOriginal != "" {
		if t, err := time.Parse(time.RFC3339, d.DateTimeOriginal); err == nil {
			s.Date = t.Format("1/2/2006")
		}
	}
	return s
}
