package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/boardflow/pkg/workspace"
)

func TestLookupPathPayloadFirst(t *testing.T) {
	snap := workspace.Seed()
	payload := map[string]interface{}{
		"view": "calendar",
		"nested": map[string]interface{}{
			"deep": "value",
		},
	}

	value, found := lookupPath("view", payload, snap)
	assert.True(t, found)
	assert.Equal(t, "calendar", value)

	value, found = lookupPath("nested.deep", payload, snap)
	assert.True(t, found)
	assert.Equal(t, "value", value)

	// Misses the payload, falls back to the snapshot.
	value, found = lookupPath("sprint", payload, snap)
	assert.True(t, found)
	assert.Equal(t, "Sprint 12", value)

	_, found = lookupPath("nowhere", payload, snap)
	assert.False(t, found)

	_, found = lookupPath("", payload, snap)
	assert.False(t, found)
}

func TestInterpolate(t *testing.T) {
	snap := workspace.Seed()
	payload := map[string]interface{}{
		"taskId":   "T-101",
		"toStatus": "Done",
		"points":   float64(5),
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"no tokens", "plain text", "plain text"},
		{"single token", "{{taskId}} done", "T-101 done"},
		{"multiple tokens", "{{taskId}} moved to {{toStatus}}", "T-101 moved to Done"},
		{"whitespace in token", "{{ taskId }}", "T-101"},
		{"snapshot fallback", "sprint {{sprint}}", "sprint Sprint 12"},
		{"snapshot task path", "{{tasks.T-102.title}}", "Welcome checklist API"},
		{"integral float renders as int", "{{points}} pts", "5 pts"},
		{"unresolved left verbatim", "hello {{missing}}", "hello {{missing}}"},
		{"unterminated left verbatim", "hello {{taskId", "hello {{taskId"},
		{"brace inside token left verbatim", "{{{taskId}}}", "{{{taskId}}}"},
		{"empty template", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(tt.template, payload, snap))
		})
	}
}

func TestInterpolateWithoutSnapshot(t *testing.T) {
	got := Interpolate("{{taskId}} / {{view}}", map[string]interface{}{"taskId": "T-7"}, nil)
	assert.Equal(t, "T-7 / {{view}}", got)
}

func TestInterpolateParams(t *testing.T) {
	payload := map[string]interface{}{"taskId": "T-101"}

	out := interpolateParams(map[string]string{
		"taskId": "{{taskId}}",
		"field":  "status",
	}, payload, nil)

	assert.Equal(t, "T-101", out["taskId"])
	assert.Equal(t, "status", out["field"])

	assert.Nil(t, interpolateParams(nil, payload, nil))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", stringify(nil))
	assert.Equal(t, "abc", stringify("abc"))
	assert.Equal(t, "5", stringify(float64(5)))
	assert.Equal(t, "5.5", stringify(5.5))
	assert.Equal(t, "7", stringify(7))
	assert.Equal(t, "true", stringify(true))
}
