package util

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

// TestWrapString tests that help texts are wrapped at Wrap characters
func TestWrapString(t *testing.T) {
	text := "The socket root directory, all ipc endpoints are created below it and nowhere else"
	for _, line := range strings.Split(WrapString(text), "\n") {
		assert.LessOrEqual(t, len(line), Wrap, "line %q", line)
	}
	assert.Equal(t, text, strings.Join(strings.Fields(WrapString(text)), " "))
	assert.Equal(t, "", WrapString(""))
}
