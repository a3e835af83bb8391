package terminal

import (
	"strings"
	"unicode/utf8"
)

// Heavy box drawing characters.
const (
	BoxHeavyHorizontal  = "━"
	BoxHeavyVertical    = "┃"
	BoxHeavyTopLeft     = "┏"
	BoxHeavyTopRight    = "┓"
	BoxHeavyBottomLeft  = "┗"
	BoxHeavyBottomRight = "┛"
)

// BoxHorizontal is the thin separator character.
const BoxHorizontal = "─"

// HeaderPadding is the space around header content.
const HeaderPadding = 1

// DrawSeparator draws a thin horizontal separator line.
func DrawSeparator(width int) string {
	if width <= 0 {
		return ""
	}

	return strings.Repeat(BoxHorizontal, width)
}

// DrawHeader draws a heavy-bordered header with an optional right-aligned
// annotation.
//
//	┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
//	┃ TITLE                 rightText ┃
//	┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
func DrawHeader(title, rightText string, width int) string {
	titleLen := utf8.RuneCountInString(title)
	rightLen := utf8.RuneCountInString(rightText)

	width = max(width, titleLen+rightLen+3+HeaderPadding*2)
	innerWidth := width - 2
	contentWidth := innerWidth - HeaderPadding*2

	content := PadRight(title, contentWidth)
	if rightText != "" {
		content = title + strings.Repeat(" ", max(contentWidth-titleLen-rightLen, 1)) + rightText
	}

	pad := strings.Repeat(" ", HeaderPadding)
	border := strings.Repeat(BoxHeavyHorizontal, innerWidth)

	return BoxHeavyTopLeft + border + BoxHeavyTopRight + "\n" +
		BoxHeavyVertical + pad + content + pad + BoxHeavyVertical + "\n" +
		BoxHeavyBottomLeft + border + BoxHeavyBottomRight
}
