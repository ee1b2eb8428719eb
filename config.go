package kodaklens

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kodaklens/kodaklens/exif"
	"github.com/kodaklens/kodaklens/report"
	"github.com/kodaklens/kodaklens/story"
)

// SiteConfig holds all configuration for a KodakLens site.
type SiteConfig struct {
	Name        string // Site name (default "KodakLens")
	Tagline     string // Shown next to the name (default "Visual Story Optimizer")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for meta tags and JSON-LD

	Addr        string // Listen address (default ":3000")
	StaticDir   string // Public assets and processed uploads (default "public")
	ReportsDir  string // One JSON file per story report (default "reports")
	IndexPath   string // SQLite report index (default "data/reports.db")
	StoriesFile string // Optional YAML story catalog; empty uses the built-in sample

	StoryCacheTTL time.Duration // Story catalog reload interval (default 5min)
	UploadTTL     time.Duration // Idle time before a session's upload is forgotten (default 12h)

	APIRateLimit  int           // POST requests per IP per window on /api and /upload (default 30)
	APIRateWindow time.Duration // (default 1min)

	SessionSecret string // Required: session cookie secret
	CookieSecure  bool   // Set true for HTTPS

	LogLevel string // zap level (default "info")

	S3 report.S3Config // Optional report mirror; disabled when Bucket is empty
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "KodakLens"
	}
	if c.Tagline == "" {
		c.Tagline = "Visual Story Optimizer"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "Turn your photos into SEO-optimized visual stories."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ReportsDir == "" {
		c.ReportsDir = "reports"
	}
	if c.IndexPath == "" {
		c.IndexPath = "data/reports.db"
	}
	if c.StoryCacheTTL == 0 {
		c.StoryCacheTTL = 5 * time.Minute
	}
	if c.UploadTTL == 0 {
		c.UploadTTL = 12 * time.Hour
	}
	if c.APIRateLimit == 0 {
		c.APIRateLimit = 30
	}
	if c.APIRateWindow == 0 {
		c.APIRateWindow = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LoadConfig reads the site configuration from the environment and, when
// path is non-empty, from a config file (any format viper understands).
// Environment variables win over the file.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()

	v.SetDefault("SITE_NAME", "KodakLens")
	v.SetDefault("SITE_TAGLINE", "Visual Story Optimizer")
	v.SetDefault("SITE_URL", "http://localhost:3000")
	v.SetDefault("SITE_DESCRIPTION", "Turn your photos into SEO-optimized visual stories.")
	v.SetDefault("ADDR", ":3000")
	v.SetDefault("STATIC_DIR", "public")
	v.SetDefault("REPORTS_DIR", "reports")
	v.SetDefault("INDEX_PATH", "data/reports.db")
	v.SetDefault("STORIES_FILE", "")
	v.SetDefault("STORY_CACHE_TTL", 5*time.Minute)
	v.SetDefault("UPLOAD_TTL", 12*time.Hour)
	v.SetDefault("API_RATE_LIMIT", 30)
	v.SetDefault("API_RATE_WINDOW", time.Minute)
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_PREFIX", "reports")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY_ID", "")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "")

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return SiteConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := SiteConfig{
		Name:          v.GetString("SITE_NAME"),
		Tagline:       v.GetString("SITE_TAGLINE"),
		URL:           v.GetString("SITE_URL"),
		Description:   v.GetString("SITE_DESCRIPTION"),
		Addr:          v.GetString("ADDR"),
		StaticDir:     v.GetString("STATIC_DIR"),
		ReportsDir:    v.GetString("REPORTS_DIR"),
		IndexPath:     v.GetString("INDEX_PATH"),
		StoriesFile:   v.GetString("STORIES_FILE"),
		StoryCacheTTL: v.GetDuration("STORY_CACHE_TTL"),
		UploadTTL:     v.GetDuration("UPLOAD_TTL"),
		APIRateLimit:  v.GetInt("API_RATE_LIMIT"),
		APIRateWindow: v.GetDuration("API_RATE_WINDOW"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		CookieSecure:  v.GetBool("COOKIE_SECURE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		S3: report.S3Config{
			Bucket:          v.GetString("S3_BUCKET"),
			Prefix:          v.GetString("S3_PREFIX"),
			Region:          v.GetString("S3_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
		},
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger replaces the default production logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// WithCatalog serves stories from c instead of the configured file or the
// built-in sample.
func WithCatalog(c story.Catalog) Option {
	return func(a *App) {
		a.Stories = c
	}
}

// WithExtractor overrides the EXIF extractor, e.g. with a seeded one in tests.
func WithExtractor(e *exif.Extractor) Option {
	return func(a *App) {
		a.EXIF = e
	}
}

// WithMirror mirrors saved reports to m instead of the S3 bucket from config.
func WithMirror(m report.Mirror) Option {
	return func(a *App) {
		a.mirror = m
	}
}
