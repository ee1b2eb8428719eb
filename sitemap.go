package kodaklens

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kodaklens/kodaklens/story"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, stories []story.Story) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
	}
	for _, s := range stories {
		u := sitemapURL{Loc: BuildURL(base, "story", s.Slug)}
		if t := s.Published(); !t.IsZero() {
			u.LastMod = t.UTC().Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func (a *App) robotsTxt() string {
	return "User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /upload/\nDisallow: /analyze/\n\nSitemap: " +
		BuildURL(a.Config.URL) + "sitemap.xml\n"
}
