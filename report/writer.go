package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Mirror receives a copy of every report written to disk.
type Mirror interface {
	Put(ctx context.Context, key string, body []byte) error
}

// Writer saves reports as <dir>/<storyID>.json. The file is authoritative;
// the index and mirror are updated on a best-effort basis.
type Writer struct {
	dir    string
	prefix string
	index  *Index
	mirror Mirror
	now    func() time.Time
	log    *zap.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithIndex records every saved report in idx.
func WithIndex(idx *Index) WriterOption {
	return func(w *Writer) {
		w.index = idx
	}
}

// WithMirror uploads every saved report to m.
func WithMirror(m Mirror) WriterOption {
	return func(w *Writer) {
		w.mirror = m
	}
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) {
		w.now = now
	}
}

// WithPublicPrefix sets the URL path the reports directory is served under
// (default "/reports").
func WithPublicPrefix(prefix string) WriterOption {
	return func(w *Writer) {
		w.prefix = "/" + strings.Trim(prefix, "/")
	}
}

// WithLogger sets the logger for index and mirror failures.
func WithLogger(l *zap.Logger) WriterOption {
	return func(w *Writer) {
		w.log = l
	}
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, opts ...WriterOption) *Writer {
	w := &Writer{
		dir:    dir,
		prefix: "/reports",
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the reports directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Prefix returns the URL path the reports directory is served under.
func (w *Writer) Prefix() string {
	return w.prefix
}

// PublicPath is the path reported back to API clients for storyID.
func (w *Writer) PublicPath(storyID string) string {
	return path.Join(w.prefix, storyID+".json")
}

// Save builds the report for storyID and overwrites its file.
func (w *Writer) Save(ctx context.Context, storyID string, results map[string]json.RawMessage) (Report, string, error) {
	if err := ValidateID(storyID); err != nil {
		return Report{}, "", err
	}
	rep, err := Build(storyID, results, w.now())
	if err != nil {
		return Report{}, "", fmt.Errorf("build report: %w", err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return Report{}, "", fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Report{}, "", fmt.Errorf("create reports dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, storyID+".json"), data, 0o644); err != nil {
		return Report{}, "", fmt.Errorf("write report: %w", err)
	}

	publicPath := w.PublicPath(storyID)
	if w.index != nil {
		entry := Entry{
			StoryID:            storyID,
			Timestamp:          rep.Timestamp,
			SEOScore:           rep.Summary.SEOScore,
			AccessibilityScore: rep.Summary.AccessibilityScore,
			OverallScore:       rep.Summary.OverallScore,
			FilePath:           publicPath,
		}
		if err := w.index.Record(ctx, entry); err != nil {
			w.log.Warn("index report", zap.String("story_id", storyID), zap.Error(err))
		}
	}
	if w.mirror != nil {
		if err := w.mirror.Put(ctx, storyID+".json", data); err != nil {
			w.log.Warn("mirror report", zap.String("story_id", storyID), zap.Error(err))
		}
	}
	return rep, publicPath, nil
}

// Load reads the stored report for storyID.
func (w *Writer) Load(storyID string) (Report, error) {
	if err := ValidateID(storyID); err != nil {
		return Report{}, err
	}
	data, err := os.ReadFile(filepath.Join(w.dir, storyID+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("decode report %s: %w", storyID, err)
	}
	return rep, nil
}
