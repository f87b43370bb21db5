package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"T-101", "flow_one", "abc", "ABC-123_x"}
	for _, s := range valid {
		assert.True(t, IsValidIdentifier(s), s)
	}

	invalid := []string{"", "has space", "dot.ted", "slash/y", "../escape", "emoji🙂"}
	for _, s := range invalid {
		assert.False(t, IsValidIdentifier(s), s)
	}
}

func TestIsValidDottedPath(t *testing.T) {
	valid := []string{"toStatus", "tasks.T-101.status", "a.b.c", "wip_limits.review"}
	for _, s := range valid {
		assert.True(t, IsValidDottedPath(s), s)
	}

	invalid := []string{"", ".", "a..b", ".leading", "trailing.", "has space.x"}
	for _, s := range invalid {
		assert.False(t, IsValidDottedPath(s), s)
	}
}
