package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/kodaklens/kodaklens/story"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// StoryURL is the canonical URL of a story page.
func StoryURL(cfg SiteConfig, slug string) string {
	return buildURL(cfg.URL, "story", slug)
}

// ClassNames joins the non-empty class lists, dropping duplicates.
func ClassNames(classes ...string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range classes {
		for _, c := range strings.Fields(group) {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}

// OptionClass returns CSS classes for a template picker card.
func OptionClass(selected bool) string {
	base := "block p-4 border rounded-lg cursor-pointer transition-colors"
	if selected {
		return ClassNames(base, "border-orange-500 bg-orange-50")
	}
	return ClassNames(base, "border-gray-200 hover:border-gray-300")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) template.JS {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	return marshalJS(data)
}

// StoryJsonLD produces a Schema.org Photograph JSON-LD block for a story.
func StoryJsonLD(cfg SiteConfig, s story.Story) template.JS {
	storyURL := StoryURL(cfg, s.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "Photograph",
		"headline":      s.Title,
		"description":   s.Description,
		"image":         s.HeroImageURL,
		"datePublished": s.PublishedAt,
		"url":           storyURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   storyURL,
		},
	}
	if s.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  s.Author.Name,
		}
	}
	if len(s.Tags) > 0 {
		data["keywords"] = strings.Join(s.Tags, ", ")
	}
	return marshalJS(data)
}

func marshalJS(v interface{}) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

// StoryMeta builds the head metadata for a story page.
func StoryMeta(cfg SiteConfig, s story.Story) PageMeta {
	return PageMeta{
		Title:         s.Title + " - " + cfg.Name,
		Description:   s.Description,
		URL:           StoryURL(cfg, s.Slug),
		OGType:        "article",
		Image:         s.HeroImageURL,
		Author:        s.Author.Name,
		PublishedTime: s.PublishedAt,
		Tags:          s.Tags,
		TwitterCard:   "summary_large_image",
		JSONLD:        StoryJsonLD(cfg, s),
	}
}

// NotFoundMeta is the head metadata for unknown stories and routes.
func NotFoundMeta() PageMeta {
	return PageMeta{
		Title:       "Story Not Found",
		Description: "The requested story could not be found.",
		OGType:      "website",
		TwitterCard: "summary",
	}
}

// HomeMeta is the head metadata for the editor.
func HomeMeta(cfg SiteConfig) PageMeta {
	title := cfg.Name
	if cfg.Tagline != "" {
		title += " - " + cfg.Tagline
	}
	return PageMeta{
		Title:       title,
		Description: cfg.Description,
		URL:         buildURL(cfg.URL),
		OGType:      "website",
		TwitterCard: "summary",
		JSONLD:      WebsiteJsonLD(cfg),
	}
}

func shortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("1/2/2006")
}

func clockTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("3:04:05 PM")
}

var funcs = template.FuncMap{
	"cn":          ClassNames,
	"optionClass": OptionClass,
	"date":        shortDate,
	"clock":       clockTime,
	"year":        func() int { return time.Now().Year() },
}
