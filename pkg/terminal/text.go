package terminal

import (
	"strings"
	"unicode/utf8"
)

// PadRight pads s with spaces on the right to reach width runes.
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	return s + strings.Repeat(" ", width-n)
}
