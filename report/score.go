package report

import (
	"bytes"
	"encoding/json"
	"math"
)

// StatusPass is the only check status that counts toward a score.
const StatusPass = "pass"

// Summary holds the computed scores, each in [0, 100].
type Summary struct {
	SEOScore           int `json:"seoScore"`
	AccessibilityScore int `json:"accessibilityScore"`
	OverallScore       int `json:"overallScore"`
}

type check struct {
	Status string `json:"status"`
}

// CategoryScore scores one category of results. The category is a JSON object
// (or array) whose values are arrays of checks; values are flattened one level
// and a check passes when its status is "pass". Absent, null or empty
// categories score 0.
func CategoryScore(raw json.RawMessage) int {
	passed, total := countChecks(raw)
	if total == 0 {
		return 0
	}
	return roundHalfUp(float64(passed) / float64(total) * 100)
}

// OverallScore is the rounded mean of the two category scores.
func OverallScore(seo, accessibility int) int {
	return roundHalfUp(float64(seo+accessibility) / 2)
}

// Summarize computes the scores for the "seo" and "accessibility" entries of
// results.
func Summarize(results map[string]json.RawMessage) Summary {
	seo := CategoryScore(results["seo"])
	a11y := CategoryScore(results["accessibility"])
	return Summary{
		SEOScore:           seo,
		AccessibilityScore: a11y,
		OverallScore:       OverallScore(seo, a11y),
	}
}

func countChecks(raw json.RawMessage) (passed, total int) {
	for _, group := range members(raw) {
		items, ok := asArray(group)
		if !ok {
			items = []json.RawMessage{group}
		}
		for _, item := range items {
			total++
			var c check
			if json.Unmarshal(item, &c) == nil && c.Status == StatusPass {
				passed++
			}
		}
	}
	return passed, total
}

// members returns the values of an object or the elements of an array.
func members(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil
		}
		out := make([]json.RawMessage, 0, len(obj))
		for _, v := range obj {
			out = append(out, v)
		}
		return out
	case '[':
		arr, _ := asArray(raw)
		return arr
	}
	return nil
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// roundHalfUp matches JavaScript's Math.round for non-negative values.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
