// Package story defines the published visual stories and the read-only
// catalogs that serve them.
package story

import (
	"fmt"
	"strings"
	"time"
)

// Template selects one of the story page layouts.
type Template string

const (
	Classic  Template = "classic"
	Magazine Template = "magazine"
	Showcase Template = "showcase"
)

// TemplateOption describes a template in the editor's picker.
type TemplateOption struct {
	ID          Template
	Name        string
	Description string
}

// Templates lists the layouts in picker order.
var Templates = []TemplateOption{
	{ID: Classic, Name: "Classic", Description: "Clean and timeless"},
	{ID: Magazine, Name: "Magazine", Description: "Editorial layout"},
	{ID: Showcase, Name: "Showcase", Description: "Bold and modern"},
}

// ParseTemplate maps s to a Template. Unknown or empty names yield Classic
// and ok == false.
func ParseTemplate(s string) (t Template, ok bool) {
	switch Template(strings.ToLower(strings.TrimSpace(s))) {
	case Classic:
		return Classic, true
	case Magazine:
		return Magazine, true
	case Showcase:
		return Showcase, true
	}
	return Classic, false
}

// EXIF is the pre-formatted capture summary stored with a story.
type EXIF struct {
	TakenAt  string `yaml:"takenAt" json:"takenAt"`
	Camera   string `yaml:"camera" json:"camera"`
	Lens     string `yaml:"lens" json:"lens"`
	Settings string `yaml:"settings" json:"settings"`
}

// Author is the story's credited photographer.
type Author struct {
	Name   string `yaml:"name" json:"name"`
	Avatar string `yaml:"avatar" json:"avatar"`
}

// Story pairs one photo with its narrative and layout.
type Story struct {
	ID           string   `yaml:"id" json:"id"`
	Slug         string   `yaml:"slug" json:"slug"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	HeroImageURL string   `yaml:"heroImageUrl" json:"heroImageUrl"`
	Alt          string   `yaml:"alt" json:"alt"`
	Caption      string   `yaml:"caption" json:"caption"`
	Body         []string `yaml:"body" json:"body,omitempty"`
	EXIF         EXIF     `yaml:"exif" json:"exif"`
	Template     Template `yaml:"template" json:"template"`
	PublishedAt  string   `yaml:"publishedAt" json:"publishedAt"`
	Tags         []string `yaml:"tags" json:"tags"`
	Author       Author   `yaml:"author" json:"author"`
}

// Validate checks the fields every page needs and normalizes the template.
func (s *Story) Validate() error {
	if strings.TrimSpace(s.Slug) == "" {
		return fmt.Errorf("story %q: slug is required", s.ID)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("story %q: title is required", s.Slug)
	}
	if s.ID == "" {
		s.ID = s.Slug
	}
	if s.Template == "" {
		s.Template = Classic
	}
	t, ok := ParseTemplate(string(s.Template))
	if !ok {
		return fmt.Errorf("story %q: unknown template %q", s.Slug, s.Template)
	}
	s.Template = t
	if s.PublishedAt != "" {
		if _, err := time.Parse(time.RFC3339, s.PublishedAt); err != nil {
			return fmt.Errorf("story %q: publishedAt: %w", s.Slug, err)
		}
	}
	return nil
}

// Published returns PublishedAt as a time, or the zero time.
func (s Story) Published() time.Time {
	t, _ := time.Parse(time.RFC3339, s.PublishedAt)
	return t
}

// TakenAt returns EXIF.TakenAt as a time, or the zero time.
func (s Story) TakenAt() time.Time {
	t, _ := time.Parse(time.RFC3339, s.EXIF.TakenAt)
	return t
}
