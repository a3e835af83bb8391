package plotpage

import (
	"errors"
	"fmt"
	"strings"
)

// Theme represents a color theme for report pages.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ErrUnknownTheme is returned by ParseTheme for unsupported names.
var ErrUnknownTheme = errors.New("unknown theme")

// ParseTheme converts a configuration value into a Theme.
func ParseTheme(name string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case ThemeDark, "":
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// ThemeConfig holds the theme-specific styling values.
type ThemeConfig struct {
	Background  string
	Surface     string
	Border      string
	TextPrimary string
	TextMuted   string
	Accent      string
	Error       string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// Series colors, cycled by series index.
	Series []string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

// SeriesColor returns the color for the i-th series of a chart.
func (c ThemeConfig) SeriesColor(i int) string {
	if len(c.Series) == 0 {
		return ""
	}

	return c.Series[i%len(c.Series)]
}

var lightTheme = ThemeConfig{
	Background:  "#f8fafc", // slate-50.
	Surface:     "#ffffff",
	Border:      "#e2e8f0", // slate-200.
	TextPrimary: "#0f172a", // slate-900.
	TextMuted:   "#64748b", // slate-500.
	Accent:      "#2563eb", // blue-600.
	Error:       "#dc2626", // red-600.

	ChartBackground: "transparent",
	ChartGrid:       "#e2e8f0",
	ChartAxis:       "#94a3b8", // slate-400.
	ChartText:       "#334155", // slate-700.
	ChartTextMuted:  "#64748b",

	Series: []string{"#2563eb", "#ea580c", "#16a34a", "#9333ea", "#db2777", "#0891b2"},
}

var darkTheme = ThemeConfig{
	Background:  "#020617", // slate-950.
	Surface:     "#0f172a", // slate-900.
	Border:      "#334155", // slate-700.
	TextPrimary: "#f8fafc",
	TextMuted:   "#94a3b8",
	Accent:      "#60a5fa", // blue-400.
	Error:       "#f87171", // red-400.

	ChartBackground: "transparent",
	ChartGrid:       "#334155",
	ChartAxis:       "#475569", // slate-600.
	ChartText:       "#cbd5e1", // slate-300.
	ChartTextMuted:  "#94a3b8",

	Series: []string{"#60a5fa", "#fb923c", "#4ade80", "#c084fc", "#f472b6", "#22d3ee"},
}
