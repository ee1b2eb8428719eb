package kodaklens

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kodaklens/kodaklens/caption"
	"github.com/kodaklens/kodaklens/exif"
	"github.com/kodaklens/kodaklens/media"
	"github.com/kodaklens/kodaklens/report"
	"github.com/kodaklens/kodaklens/story"
	"github.com/kodaklens/kodaklens/views"
)

const uploadsSubdir = "uploads"

// errProcessImage is what the editor shows when a valid-looking file fails
// to decode or store.
const errProcessImage = "Error processing image"

func (a *App) handleUpload(c echo.Context) error {
	id, err := uploaderID(c, true)
	if err != nil {
		return err
	}
	gen := a.Uploads.Begin(id)
	tmpl, _ := story.ParseTemplate(c.FormValue("template"))

	file, err := c.FormFile("image")
	if err != nil {
		a.Metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return a.renderUploadError(c, http.StatusBadRequest, "Please choose an image to upload.")
	}
	mimeType := file.Header.Get(echo.HeaderContentType)
	if err := media.ValidateImage(mimeType, file.Size); err != nil {
		a.Metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		var ve *media.ValidationError
		if errors.As(err, &ve) {
			return a.renderUploadError(c, http.StatusBadRequest, ve.Message)
		}
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, media.MaxUploadSize+1))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	u, err := a.processUpload(data, file.Filename, mimeType)
	if err != nil {
		var ve *media.ValidationError
		if errors.As(err, &ve) {
			a.Metrics.UploadsTotal.WithLabelValues("rejected").Inc()
			return a.renderUploadError(c, http.StatusBadRequest, ve.Message)
		}
		a.Metrics.UploadsTotal.WithLabelValues("failed").Inc()
		a.Log.Warn("process upload", zap.String("file", file.Filename), zap.Error(err))
		return a.renderUploadError(c, http.StatusBadRequest, errProcessImage)
	}
	u.Template = tmpl

	if !a.Uploads.Commit(id, gen, u) {
		a.Metrics.UploadsTotal.WithLabelValues("stale").Inc()
		a.Log.Debug("discarded stale upload", zap.String("uploader", id), zap.Uint64("generation", gen))
	} else {
		a.Metrics.UploadsTotal.WithLabelValues("committed").Inc()
	}

	return c.Redirect(http.StatusSeeOther, "/?template="+url.QueryEscape(string(tmpl)))
}

// processUpload extracts EXIF, writes the preview JPEG and generates captions.
func (a *App) processUpload(data []byte, fileName, mimeType string) (Upload, error) {
	meta := a.EXIF.Extract(data, mimeType)

	preview, err := media.ProcessPreview(data)
	if err != nil {
		return Upload{}, err
	}

	name := fileName
	if strings.TrimSpace(name) == "" {
		name = caption.DefaultFileName
	}
	now := time.Now()
	taken := now
	if t, err := time.Parse(time.RFC3339, meta.DateTimeOriginal); err == nil {
		taken = t
	}
	title := media.TitleFromFilename(name)
	base := media.GenerateImageFilename(title, taken)
	if strings.HasPrefix(base, "-") {
		base = caption.DefaultFileName + base
	}

	dir := filepath.Join(a.Config.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Upload{}, fmt.Errorf("create uploads dir: %w", err)
	}
	stored := media.UniqueFilename(dir, base, ".jpg")
	if err := os.WriteFile(filepath.Join(dir, stored), preview.Data, 0o644); err != nil {
		return Upload{}, fmt.Errorf("write preview: %w", err)
	}

	return Upload{
		FileName:   name,
		MIMEType:   mimeType,
		PreviewURL: path.Join("/public", uploadsSubdir, stored),
		Width:      preview.Width,
		Height:     preview.Height,
		EXIF:       meta,
		Summary:    exif.Format(meta),
		Captions:   caption.Generate(name),
		UploadedAt: now,
	}, nil
}

func (a *App) renderUploadError(c echo.Context, code int, msg string) error {
	page := a.homePage(c)
	if t, ok := story.ParseTemplate(c.FormValue("template")); ok {
		page.Selected = t
	}
	page.Error = msg
	return RenderStatus(c, code, a.Views.Home(page))
}

// handleAnalyze scores the session's latest upload against the mock checks
// and saves the report under the preview's name.
func (a *App) handleAnalyze(c echo.Context) error {
	id, err := uploaderID(c, false)
	if err != nil {
		return err
	}
	tmpl, _ := story.ParseTemplate(c.FormValue("template"))
	target := "/?template=" + url.QueryEscape(string(tmpl))

	u, ok := a.Uploads.Latest(id)
	if id == "" || !ok {
		return c.Redirect(http.StatusSeeOther, target)
	}

	reportID := strings.TrimSuffix(path.Base(u.PreviewURL), ".jpg")
	results, err := checkResults(u)
	if err != nil {
		return err
	}
	if _, _, err := a.Reports.Save(c.Request().Context(), reportID, results); err != nil {
		return fmt.Errorf("save report %q: %w", reportID, err)
	}
	a.Metrics.ReportsSaved.Inc()
	a.Uploads.Update(id, func(u *Upload) { u.ReportID = reportID })

	return c.Redirect(http.StatusSeeOther, "/?analysis=1&template="+url.QueryEscape(string(tmpl)))
}

// check is one simulated audit row; Label is what the badge reads.
type check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Label  string `json:"label"`
}

func pass(name, label string) check {
	return check{Name: name, Status: report.StatusPass, Label: "✓ " + label}
}
func warn(name, label string) check {
	return check{Name: name, Status: "warning", Label: "⚠ " + label}
}

// simulatedChecks returns the fixed SEO and accessibility rows the editor
// shows. Alt text depends on whether captions produced one.
func simulatedChecks(u Upload) (seoChecks, a11yChecks []check) {
	alt := pass("Image Alt Text", "Good")
	present := pass("Image Alt Text", "Present")
	if u.Captions.Alt == "" {
		alt = warn("Image Alt Text", "Missing")
		present = warn("Image Alt Text", "Missing")
	}
	seoChecks = []check{
		alt,
		warn("Meta Description", "Needs Work"),
		pass("Title Length", "Good"),
		pass("Image Filename", "Optimized"),
	}
	a11yChecks = []check{
		pass("Color Contrast", "4.5:1"),
		pass("Keyboard Navigation", "Good"),
		warn("ARIA Labels", "Missing"),
		present,
	}
	return seoChecks, a11yChecks
}

func checkResults(u Upload) (map[string]json.RawMessage, error) {
	seoChecks, a11yChecks := simulatedChecks(u)
	seoRaw, err := json.Marshal(map[string][]check{"image": seoChecks})
	if err != nil {
		return nil, err
	}
	a11yRaw, err := json.Marshal(map[string][]check{"page": a11yChecks})
	if err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{"seo": seoRaw, "accessibility": a11yRaw}, nil
}

func (a *App) analysisView(u Upload) *views.AnalysisView {
	seoChecks, a11yChecks := simulatedChecks(u)
	results, err := checkResults(u)
	if err != nil {
		return nil
	}
	summary := report.Summarize(results)
	v := &views.AnalysisView{
		SEO:                checkViews(seoChecks),
		Accessibility:      checkViews(a11yChecks),
		SEOScore:           summary.SEOScore,
		AccessibilityScore: summary.AccessibilityScore,
		OverallScore:       summary.OverallScore,
	}
	if u.ReportID != "" {
		v.ReportURL = a.Reports.PublicPath(u.ReportID)
	}
	return v
}

func checkViews(checks []check) []views.CheckView {
	out := make([]views.CheckView, len(checks))
	for i, ch := range checks {
		out[i] = views.CheckView{Name: ch.Name, Label: ch.Label, Pass: ch.Status == report.StatusPass}
	}
	return out
}

func uploadView(u Upload) *views.UploadView {
	return &views.UploadView{
		PreviewURL: u.PreviewURL,
		FileName:   u.FileName,
		Width:      u.Width,
		Height:     u.Height,
		EXIF:       u.Summary,
		HasEXIF:    !u.EXIF.IsZero(),
		Caption:    u.Captions,
	}
}
