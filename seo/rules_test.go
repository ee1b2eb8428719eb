package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	r := Default()
	assert.Equal(t, 50, r.Title.Min)
	assert.Equal(t, 60, r.Title.Max)
	assert.Equal(t, 140, r.Description.Min)
	assert.Equal(t, 160, r.Description.Max)
	assert.Len(t, r.Checks, 9)
	assert.Len(t, r.Critical(), 6)
	assert.Equal(t, 0.1, r.Performance.CLS.Threshold)
}

func TestRulesJSONShape(t *testing.T) {
	b, err := json.Marshal(Default())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	for _, key := range []string{"title", "description", "keywords", "checks", "performance"} {
		assert.Contains(t, decoded, key)
	}

	var perf map[string]Threshold
	require.NoError(t, json.Unmarshal(decoded["performance"], &perf))
	assert.Equal(t, float64(2500), perf["lcp"].Threshold)
	assert.Equal(t, "ms", perf["tbt"].Unit)
}
