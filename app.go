// Package kodaklens is a visual story optimizer built with Go, Echo, and templ.
// It lets a user upload a photo, shows its camera details, previews it in one
// of three story templates and scores the story's SEO and accessibility.
//
// Pages are rendered through the ViewFuncs struct so the templates can be
// swapped, while kodaklens owns the handlers, middleware and persistence.
package kodaklens

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kodaklens/kodaklens/exif"
	"github.com/kodaklens/kodaklens/report"
	"github.com/kodaklens/kodaklens/story"
	"github.com/kodaklens/kodaklens/views"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home        func(p views.HomePage) templ.Component
	Story       func(p views.StoryPage) templ.Component
	NotFound    func(site views.SiteConfig) templ.Component
	ServerError func(site views.SiteConfig) templ.Component
}

// DefaultViews returns the built-in page components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Story:       views.Story,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App is the central KodakLens application. It wires together the story
// catalog, report storage, upload tracking, handlers and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Log     *zap.Logger
	Views   ViewFuncs
	Stories story.Catalog
	Reports *report.Writer
	Index   *report.Index
	EXIF    *exif.Extractor
	Uploads *UploadTracker
	Metrics *Metrics

	apiLimiter   *RateLimiter
	mirror       report.Mirror
	customRoutes []func(*App)
	ready        bool
}

// New creates an App with the given configuration and views. Zero-valued
// view funcs fall back to DefaultViews.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		Views:  withDefaultViews(v),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func withDefaultViews(v ViewFuncs) ViewFuncs {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Story == nil {
		v.Story = d.Story
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
	return v
}

// Setup opens the report index, loads the story catalog and registers the
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo with httptest.
func (a *App) Setup(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return errors.New("kodaklens: SessionSecret is required")
	}

	if a.Log == nil {
		l, err := NewLogger(a.Config.LogLevel)
		if err != nil {
			return fmt.Errorf("kodaklens: init logger: %w", err)
		}
		a.Log = l
	}

	if a.Stories == nil {
		if a.Config.StoriesFile != "" {
			c, err := story.NewFileCatalog(a.Config.StoriesFile, a.Config.StoryCacheTTL)
			if err != nil {
				return fmt.Errorf("kodaklens: load stories: %w", err)
			}
			a.Stories = c
		} else {
			a.Stories = story.Default()
		}
	}

	idx, err := report.OpenIndex(a.Config.IndexPath)
	if err != nil {
		return fmt.Errorf("kodaklens: init report index: %w", err)
	}
	a.Index = idx

	if a.mirror == nil && a.Config.S3.Bucket != "" {
		m, err := report.NewS3Mirror(ctx, a.Config.S3)
		if err != nil {
			return fmt.Errorf("kodaklens: init s3 mirror: %w", err)
		}
		a.mirror = m
	}

	writerOpts := []report.WriterOption{
		report.WithIndex(a.Index),
		report.WithLogger(a.Log.Named("report")),
	}
	if a.mirror != nil {
		writerOpts = append(writerOpts, report.WithMirror(a.mirror))
	}
	a.Reports = report.NewWriter(a.Config.ReportsDir, writerOpts...)

	if a.EXIF == nil {
		a.EXIF = exif.NewExtractor()
	}
	a.Uploads = NewUploadTracker(a.Config.UploadTTL)
	a.apiLimiter = NewRateLimiter(a.Config.APIRateLimit, a.Config.APIRateWindow)
	a.Metrics = newMetrics(a.Uploads)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start sets the App up and serves until the server is shut down.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}
	a.Log.Info("listening", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.URL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.Static(a.Reports.Prefix(), a.Config.ReportsDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", a.handleHealthz)
	e.GET("/metrics", a.Metrics.handler())

	// Pages
	e.GET("/", a.handleHome)
	e.POST("/upload/", a.handleUpload, a.apiLimiter.middleware)
	e.POST("/analyze/", a.handleAnalyze)
	e.GET("/story/:slug/", a.handleStory)

	// JSON API
	api := e.Group("/api", a.apiLimiter.middleware)
	api.POST("/captions", a.apiEndpoint("captions", "Failed to generate captions", a.handleCaptions))
	api.POST("/report", a.apiEndpoint("report", "Failed to save report", a.handleReport))
	api.GET("/report/:id", a.apiEndpoint("report", "Failed to load report", a.handleGetReport))
	api.GET("/reports", a.apiEndpoint("reports", "Failed to list reports", a.handleReports))
	api.GET("/seo-rules", a.apiEndpoint("seo-rules", "Failed to fetch SEO rules", a.handleSEORules))
}

// storyReloader is implemented by catalogs backed by a file that can change
// while the app runs.
type storyReloader interface {
	Invalidate()
	LastError() error
}

// ReloadStories re-reads a file-backed story catalog. A failed reload keeps
// the previous stories and returns the error. Static catalogs are a no-op.
func (a *App) ReloadStories() error {
	r, ok := a.Stories.(storyReloader)
	if !ok {
		return nil
	}
	r.Invalidate()
	if _, err := a.Stories.List(); err != nil {
		return err
	}
	return r.LastError()
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.apiLimiter != nil {
		a.apiLimiter.Close()
	}
	if a.Uploads != nil {
		a.Uploads.Close()
	}
	var err error
	if a.Index != nil {
		err = a.Index.Close()
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return err
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		Tagline:     a.Config.Tagline,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}
