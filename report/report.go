// Package report scores SEO and accessibility check results and persists one
// JSON report per story.
package report

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is ISO-8601 UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrInvalidID is returned for story ids that cannot name a report file.
	ErrInvalidID = errors.New("report: invalid story id")
	// ErrNotFound is returned when no report file exists for a story.
	ErrNotFound = errors.New("report: not found")
)

// Report is the persisted snapshot for one story. Results echoes the caller's
// input and carries the summary alongside it.
type Report struct {
	ID        string                     `json:"id"`
	Timestamp string                     `json:"timestamp"`
	Results   map[string]json.RawMessage `json:"results"`
	Summary   Summary                    `json:"summary"`
}

// Build scores results and stamps the report with now.
func Build(storyID string, results map[string]json.RawMessage, now time.Time) (Report, error) {
	summary := Summarize(results)
	raw, err := json.Marshal(summary)
	if err != nil {
		return Report{}, err
	}
	echoed := make(map[string]json.RawMessage, len(results)+1)
	for k, v := range results {
		echoed[k] = v
	}
	echoed["summary"] = raw
	return Report{
		ID:        storyID,
		Timestamp: now.UTC().Format(TimestampLayout),
		Results:   echoed,
		Summary:   summary,
	}, nil
}

// ValidateID rejects ids that would escape the reports directory.
func ValidateID(id string) error {
	switch {
	case id == "", id == ".", id == "..":
		return ErrInvalidID
	case strings.ContainsAny(id, `/\`), filepath.Base(id) != id:
		return ErrInvalidID
	}
	return nil
}
