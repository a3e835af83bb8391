package terminal

import (
	"fmt"
	"strings"
)

// Progress bar characters.
const (
	ProgressFilled = "█"
	ProgressEmpty  = "░"
)

// PercentMultiplier converts 0-1 to 0-100.
const PercentMultiplier = 100

// DrawProgressBar draws a bar of the given width. Value is clamped to [0, 1].
func DrawProgressBar(value float64, width int) string {
	value = max(0, min(value, 1))
	filled := int(value * float64(width))

	return strings.Repeat(ProgressFilled, filled) + strings.Repeat(ProgressEmpty, width-filled)
}

// DrawPercentBar draws a labeled share bar.
// Example: "success   ████████████░░░░░░░░  60%  (6)".
func DrawPercentBar(label string, percent float64, count, labelWidth, barWidth int) string {
	return fmt.Sprintf("%s %s %3d%%  (%d)",
		PadRight(label, labelWidth), DrawProgressBar(percent, barWidth), int(percent*PercentMultiplier), count)
}
