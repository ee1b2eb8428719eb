package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodaklens/kodaklens/report"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRunScoreBareResults(t *testing.T) {
	p := writeFile(t, `{
  "seo": {"meta": [{"status": "pass"}, {"status": "pass"}, {"status": "pass"}, {"status": "fail"}]},
  "accessibility": [{"status": "pass"}, {"status": "fail"}]
}`)
	var out bytes.Buffer
	require.NoError(t, runScore(&out, p))

	var got report.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, report.Summary{SEOScore: 75, AccessibilityScore: 50, OverallScore: 63}, got)
}

func TestRunScoreSavedReport(t *testing.T) {
	p := writeFile(t, `{"id": "x", "results": {"seo": [{"status": "pass"}]}}`)
	var out bytes.Buffer
	require.NoError(t, runScore(&out, p))

	var got report.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 100, got.SEOScore)
	assert.Equal(t, 0, got.AccessibilityScore)
	assert.Equal(t, 50, got.OverallScore)
}

func TestRunScoreInvalidFile(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runScore(&out, writeFile(t, "not json")))
	assert.Error(t, runScore(&out, filepath.Join(t.TempDir(), "missing.json")))
}
