// Package views renders the KodakLens pages as templ components.
//
// Page bodies live in embedded html/template files; each page is parsed
// together with base.html and exposed as a templ.Component so handlers can
// render every page the same way.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"home", "story", "notfound", "servererror"} {
		pages[name] = template.Must(
			template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html"),
		)
	}
}

func page(name string, data interface{}) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages[name].ExecuteTemplate(w, "base", data)
	})
}

// Home renders the editor.
func Home(p HomePage) templ.Component {
	if p.Meta.Title == "" {
		p.Meta = HomeMeta(p.Site)
	}
	return page("home", p)
}

// Story renders a story in its Classic, Magazine or Showcase layout.
func Story(p StoryPage) templ.Component {
	if p.Meta.Title == "" {
		p.Meta = StoryMeta(p.Site, p.Story)
	}
	return page("story", p)
}

type statusPage struct {
	Site SiteConfig
	Meta PageMeta
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return page("notfound", statusPage{Site: cfg, Meta: NotFoundMeta()})
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return page("servererror", statusPage{Site: cfg, Meta: PageMeta{
		Title:       "Something went wrong",
		Description: "An unexpected error occurred.",
		OGType:      "website",
		TwitterCard: "summary",
	}})
}
