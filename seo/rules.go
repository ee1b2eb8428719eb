// Package seo holds the rule table the editor checks stories against.
package seo

// Range is an inclusive length or count window.
type Range struct {
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Message string `json:"message"`
}

// Check is one named audit item.
type Check struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Critical    bool   `json:"critical"`
}

// Threshold is an upper bound for a Core Web Vitals metric.
type Threshold struct {
	Threshold float64 `json:"threshold"`
	Unit      string  `json:"unit"`
	Message   string  `json:"message"`
}

// Performance groups the Core Web Vitals thresholds.
type Performance struct {
	LCP Threshold `json:"lcp"`
	CLS Threshold `json:"cls"`
	TBT Threshold `json:"tbt"`
}

// Rules is the payload of GET /api/seo-rules.
type Rules struct {
	Title       Range       `json:"title"`
	Description Range       `json:"description"`
	Keywords    Range       `json:"keywords"`
	Checks      []Check     `json:"checks"`
	Performance Performance `json:"performance"`
}

// Default returns a fresh copy of the built-in rule table.
func Default() Rules {
	return Rules{
		Title: Range{
			Min:     50,
			Max:     60,
			Message: "Title should be between 50-60 characters for optimal SEO",
		},
		Description: Range{
			Min:     140,
			Max:     160,
			Message: "Meta description should be between 140-160 characters",
		},
		Keywords: Range{
			Min:     3,
			Max:     10,
			Message: "Use 3-10 relevant keywords for better SEO",
		},
		Checks: []Check{
			{ID: "canonical", Name: "Canonical URL", Description: "Page should have a canonical URL to prevent duplicate content", Critical: true},
			{ID: "ogTags", Name: "OpenGraph Tags", Description: "Social media sharing tags should be present", Critical: false},
			{ID: "h1Unique", Name: "H1 Uniqueness", Description: "Page should have exactly one H1 tag", Critical: true},
			{ID: "altNonEmpty", Name: "Image Alt Text", Description: "All images should have descriptive alt text", Critical: true},
			{ID: "viewport", Name: "Mobile Viewport", Description: "Page should have mobile viewport meta tag", Critical: true},
			{ID: "sitemap", Name: "Sitemap", Description: "Website should have a sitemap.xml file", Critical: false},
			{ID: "robots", Name: "Robots.txt", Description: "Website should have a robots.txt file", Critical: false},
			{ID: "headingStructure", Name: "Heading Structure", Description: "Proper heading hierarchy (H1 → H2 → H3)", Critical: true},
			{ID: "metaDescription", Name: "Meta Description", Description: "Unique meta description for each page", Critical: true},
		},
		Performance: Performance{
			LCP: Threshold{Threshold: 2500, Unit: "ms", Message: "Largest Contentful Paint should be under 2.5 seconds"},
			CLS: Threshold{Threshold: 0.1, Unit: "score", Message: "Cumulative Layout Shift should be under 0.1"},
			TBT: Threshold{Threshold: 200, Unit: "ms", Message: "Total Blocking Time should be under 200ms"},
		},
	}
}

// Critical returns the checks flagged critical.
func (r Rules) Critical() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Critical {
			out = append(out, c)
		}
	}
	return out
}
