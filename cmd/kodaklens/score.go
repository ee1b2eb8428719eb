package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kodaklens/kodaklens/report"
)

// runScore prints the summary for a results file. The file may be a bare
// results object or a saved report with a "results" member.
func runScore(w io.Writer, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	results := doc
	if nested, ok := doc["results"]; ok {
		if err := json.Unmarshal(nested, &results); err != nil {
			return fmt.Errorf("parse %s results: %w", path, err)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report.Summarize(results))
}
