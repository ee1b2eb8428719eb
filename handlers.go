package kodaklens

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kodaklens/kodaklens/media"
	"github.com/kodaklens/kodaklens/story"
	"github.com/kodaklens/kodaklens/views"
)

func (a *App) handleHome(c echo.Context) error {
	page := a.homePage(c)
	id, err := uploaderID(c, false)
	if err != nil {
		return err
	}
	if id != "" {
		if u, ok := a.Uploads.Latest(id); ok {
			page.Upload = uploadView(u)
			if _, ok := story.ParseTemplate(c.QueryParam("template")); !ok {
				page.Selected = u.Template
			}
			if c.QueryParam("analysis") == "1" {
				page.Analysis = a.analysisView(u)
			}
		}
	}
	return Render(c, a.Views.Home(page))
}

// homePage builds the editor page without any upload state.
func (a *App) homePage(c echo.Context) views.HomePage {
	selected, _ := story.ParseTemplate(c.QueryParam("template"))
	return views.HomePage{
		Site:        a.site(),
		CSRFToken:   CsrfToken(c),
		Templates:   story.Templates,
		Selected:    selected,
		MaxUploadMB: media.MaxUploadSize >> 20,
	}
}

func (a *App) handleStory(c echo.Context) error {
	s, err := a.Stories.Get(c.Param("slug"))
	if err != nil {
		if errors.Is(err, story.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		}
		return err
	}
	return Render(c, a.Views.Story(views.StoryPage{Site: a.site(), Story: s}))
}

func (a *App) handleSitemap(c echo.Context) error {
	stories, err := a.Stories.List()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, stories)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, a.robotsTxt())
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.Config.StaticDir, "favicon.svg"))
}

// handleHealthz reports "degraded" while a file catalog serves a stale copy
// after a failed reload; the app still answers, so the status stays 200.
func (a *App) handleHealthz(c echo.Context) error {
	body := map[string]string{"status": "ok"}
	if r, ok := a.Stories.(storyReloader); ok {
		if err := r.LastError(); err != nil {
			body["status"] = "degraded"
			body["stories"] = err.Error()
		}
	}
	return c.JSON(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	if code >= 500 {
		a.Log.Error("server error",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
		msg = http.StatusText(code)
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		_ = c.JSON(code, errorBody{Error: msg})
		return
	}

	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, a.Views.NotFound(a.site()))
	case code >= 500:
		_ = RenderStatus(c, code, a.Views.ServerError(a.site()))
	default:
		_ = c.String(code, msg)
	}
}
