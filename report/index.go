package report

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Entry is the indexed summary of the latest report for one story.
type Entry struct {
	StoryID            string `json:"storyId"`
	Timestamp          string `json:"timestamp"`
	SEOScore           int    `json:"seoScore"`
	AccessibilityScore int    `json:"accessibilityScore"`
	OverallScore       int    `json:"overallScore"`
	FilePath           string `json:"filePath"`
}

// Index keeps the latest score of every story in SQLite so reports can be
// listed without reading the whole reports directory.
type Index struct {
	db *sql.DB
}

// OpenIndex opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func OpenIndex(path string) (*Index, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers list while a report is being recorded; the busy
	// timeout makes concurrent writers wait instead of failing.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	idx := &Index{db: db}
	if err := idx.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Close closes the underlying database connection.
func (i *Index) Close() error {
	return i.db.Close()
}

func (i *Index) ensureSchema() error {
	_, err := i.db.Exec(`
CREATE TABLE IF NOT EXISTS reports (
    story_id TEXT PRIMARY KEY,
    timestamp TEXT NOT NULL,
    seo_score INTEGER NOT NULL,
    accessibility_score INTEGER NOT NULL,
    overall_score INTEGER NOT NULL,
    file_path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON reports(timestamp);
`)
	return err
}

// Record upserts e; the newest write for a story replaces the previous one.
func (i *Index) Record(ctx context.Context, e Entry) error {
	_, err := i.db.ExecContext(ctx, `INSERT OR REPLACE INTO reports (story_id, timestamp, seo_score, accessibility_score, overall_score, file_path) VALUES (?, ?, ?, ?, ?, ?)`,
		e.StoryID, e.Timestamp, e.SEOScore, e.AccessibilityScore, e.OverallScore, e.FilePath)
	return err
}

// List returns every indexed story, newest report first.
func (i *Index) List(ctx context.Context) ([]Entry, error) {
	rows, err := i.db.QueryContext(ctx, `SELECT story_id, timestamp, seo_score, accessibility_score, overall_score, file_path FROM reports ORDER BY timestamp DESC, story_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.StoryID, &e.Timestamp, &e.SEOScore, &e.AccessibilityScore, &e.OverallScore, &e.FilePath); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
