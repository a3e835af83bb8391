// Package config provides YAML-based configuration for trendscope.
package config

import "time"

// Provider defaults.
const (
	DefaultProviderBaseURL        = "https://trends.google.com"
	DefaultProviderRSSURL         = "https://trends.google.com/trending/rss"
	DefaultProviderHostLanguage   = "en-US"
	DefaultProviderTimezoneOffset = 360
	DefaultProviderTimeout        = 30 * time.Second
	DefaultProviderUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) trendscope"
)

// Report defaults.
const (
	DefaultReportRegionTimeframe   = "now 1-d"
	DefaultReportOverTimeTimeframe = "today 12-m"
	DefaultReportWorkers           = 1
	DefaultReportPreviewRows       = 10
)

// DefaultReportCountries are the countries whose trending searches are listed.
var DefaultReportCountries = []string{"united_states", "poland", "germany", "france", "japan"}

// DefaultReportKeywords are the keywords every per-keyword report covers.
var DefaultReportKeywords = []string{"Artificial Intelligence", "Machine Learning", "Blockchain"}

// DefaultReportKinds enables every report kind.
var DefaultReportKinds = []string{
	"trending",
	"interest_by_region",
	"related_queries",
	"interest_over_time",
	"interest_by_platform",
	"related_topics",
}

// Visualization defaults.
const (
	DefaultVisualizeEnabled   = true
	DefaultVisualizePerPage   = 3
	DefaultVisualizeTimeframe = "today 12-m"
	DefaultVisualizeTheme     = "dark"
	DefaultVisualizeTitle     = "trendscope"
	DefaultVisualizeDir       = "plots"
)

// Output defaults.
const (
	DefaultOutputDir    = "."
	DefaultOutputFormat = "auto"
)

// Logging defaults.
const (
	DefaultLoggingLevel      = "info"
	DefaultLoggingJSON       = false
	DefaultLoggingMaxSizeMB  = 10
	DefaultLoggingMaxBackups = 3
	DefaultLoggingMaxAgeDays = 28
	DefaultLoggingCompress   = false
)

// Telemetry defaults.
const (
	DefaultTelemetryServiceName = "trendscope"
)

func defaultPlatforms() []map[string]any {
	return []map[string]any{{"keyword": "Artificial Intelligence", "platform": "youtube"}}
}

func defaultCategories() []map[string]any {
	return []map[string]any{{"keyword": "Football", "category": 7}}
}
