package views

import (
	"html/template"

	"github.com/kodaklens/kodaklens/caption"
	"github.com/kodaklens/kodaklens/exif"
	"github.com/kodaklens/kodaklens/story"
)

// SiteConfig holds the site-wide settings every page template reads.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "KodakLens")
	Tagline     string // SITE_TAGLINE
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title         string
	Description   string
	URL           string // canonical + og:url
	OGType        string // "website" or "article"
	Image         string
	Author        string
	PublishedTime string
	Tags          []string
	TwitterCard   string // "summary" or "summary_large_image"
	JSONLD        template.JS
}

// HomePage is the editor: upload, template picker, preview and analysis.
type HomePage struct {
	Site        SiteConfig
	Meta        PageMeta
	CSRFToken   string
	Templates   []story.TemplateOption
	Selected    story.Template
	Upload      *UploadView
	Error       string
	Analysis    *AnalysisView
	MaxUploadMB int
}

// UploadView is the latest upload shown in the preview card.
type UploadView struct {
	PreviewURL string
	FileName   string
	Width      int
	Height     int
	EXIF       exif.Summary
	HasEXIF    bool
	Caption    caption.Result
}

// AnalysisView lists the simulated SEO and accessibility checks.
type AnalysisView struct {
	SEO                []CheckView
	Accessibility      []CheckView
	SEOScore           int
	AccessibilityScore int
	OverallScore       int
	ReportURL          string
}

// CheckView is one row of the analysis panel.
type CheckView struct {
	Name  string
	Label string
	Pass  bool
}

// StoryPage renders a published story in its template.
type StoryPage struct {
	Site  SiteConfig
	Meta  PageMeta
	Story story.Story
}
