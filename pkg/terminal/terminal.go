// Package terminal provides console rendering helpers for report output.
package terminal

import (
	"os"
	"strconv"

	"github.com/fatih/color"
)

// Width bounds.
const (
	DefaultWidth = 80
	MinWidth     = 40
	MaxWidth     = 160
)

// Config holds terminal rendering configuration.
type Config struct {
	Width   int
	NoColor bool
}

// NewConfig creates a Config from the environment. NO_COLOR and a
// non-terminal stdout both disable color.
func NewConfig() Config {
	return Config{
		Width:   DetectWidth(),
		NoColor: color.NoColor || os.Getenv("NO_COLOR") != "",
	}
}

// DetectWidth returns the terminal width from the COLUMNS environment
// variable clamped to [MinWidth, MaxWidth], or DefaultWidth.
func DetectWidth() int {
	width, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return max(MinWidth, min(width, MaxWidth))
}
