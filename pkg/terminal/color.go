package terminal

import "github.com/fatih/color"

// Color names the palette used for status lines.
type Color int

// Colors.
const (
	ColorNone Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorCyan
	ColorGray
)

var attributes = map[Color]color.Attribute{
	ColorGreen:  color.FgGreen,
	ColorYellow: color.FgYellow,
	ColorRed:    color.FgRed,
	ColorCyan:   color.FgCyan,
	ColorGray:   color.FgHiBlack,
}

// Colorize applies color to text unless color output is disabled.
func (c Config) Colorize(text string, col Color) string {
	attr, ok := attributes[col]
	if c.NoColor || !ok {
		return text
	}

	painter := color.New(attr)
	painter.EnableColor()

	return painter.Sprint(text)
}
