package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func checks(statuses ...string) string {
	out := "["
	for i, s := range statuses {
		if i > 0 {
			out += ","
		}
		out += `{"status":"` + s + `"}`
	}
	return out + "]"
}

func TestCategoryScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"absent", "", 0},
		{"null", "null", 0},
		{"empty object", "{}", 0},
		{"empty groups", `{"meta":[]}`, 0},
		{"all pass", `{"meta":` + checks("pass", "pass") + `,"images":` + checks("pass", "pass") + `}`, 100},
		{"three of four", `{"meta":` + checks("pass", "fail") + `,"images":` + checks("pass", "pass") + `}`, 75},
		{"two of three", `{"meta":` + checks("pass", "warning", "pass") + `}`, 67},
		{"one of three", `{"meta":` + checks("pass", "fail", "fail") + `}`, 33},
		{"array of groups", `[` + checks("pass") + `,` + checks("fail") + `]`, 50},
		{"non-array group counts once", `{"meta":{"status":"pass"},"alt":` + checks("fail") + `}`, 50},
		{"status is case sensitive", `{"meta":` + checks("PASS", "pass") + `}`, 50},
		{"scalar category", `"pass"`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryScore(json.RawMessage(tt.raw)))
		})
	}
}

func TestOverallScore(t *testing.T) {
	assert.Equal(t, 70, OverallScore(80, 60))
	assert.Equal(t, 38, OverallScore(75, 0))
	assert.Equal(t, 0, OverallScore(0, 0))
	assert.Equal(t, 100, OverallScore(100, 100))
}

func TestSummarize(t *testing.T) {
	results := map[string]json.RawMessage{
		"seo":           json.RawMessage(`{}`),
		"accessibility": json.RawMessage(`{"aria":` + checks("pass", "pass", "pass", "fail") + `}`),
	}
	assert.Equal(t, Summary{SEOScore: 0, AccessibilityScore: 75, OverallScore: 38}, Summarize(results))
}

func TestSummarizeMissingCategories(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(map[string]json.RawMessage{"other": json.RawMessage(`1`)}))
}
