package render

import (
	"testing"

	"github.com/fatih/color"
)

// disableColor turns off ANSI output for the duration of a test.
func disableColor(t *testing.T) {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true

	t.Cleanup(func() { color.NoColor = prev })
}
