package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration struct for trendscope.
// Field tags use mapstructure for viper unmarshalling, json for schema
// validation and yaml for printing.
type Config struct {
	Provider  ProviderConfig  `mapstructure:"provider"  json:"provider"  yaml:"provider"`
	Report    ReportConfig    `mapstructure:"report"    json:"report"    yaml:"report"`
	Visualize VisualizeConfig `mapstructure:"visualize" json:"visualize" yaml:"visualize"`
	Output    OutputConfig    `mapstructure:"output"    json:"output"    yaml:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"   json:"logging"   yaml:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" json:"telemetry" yaml:"telemetry"`
}

// ProviderConfig holds trend provider connection settings.
type ProviderConfig struct {
	BaseURL        string        `mapstructure:"base_url"        json:"base_url"        yaml:"base_url"`
	RSSURL         string        `mapstructure:"rss_url"         json:"rss_url"         yaml:"rss_url"`
	HostLanguage   string        `mapstructure:"host_language"   json:"host_language"   yaml:"host_language"`
	TimezoneOffset int           `mapstructure:"timezone_offset" json:"timezone_offset" yaml:"timezone_offset"`
	Timeout        time.Duration `mapstructure:"timeout"         json:"timeout"         yaml:"timeout"`
	UserAgent      string        `mapstructure:"user_agent"      json:"user_agent"      yaml:"user_agent"`
}

// PlatformQuery requests interest over time on one search property.
type PlatformQuery struct {
	Keyword  string `mapstructure:"keyword"  json:"keyword"  yaml:"keyword"`
	Platform string `mapstructure:"platform" json:"platform" yaml:"platform"`
}

// CategoryQuery requests related topics restricted to a category.
type CategoryQuery struct {
	Keyword  string `mapstructure:"keyword"  json:"keyword"  yaml:"keyword"`
	Category int    `mapstructure:"category" json:"category" yaml:"category"`
}

// ReportConfig selects the subjects and report kinds of a run.
type ReportConfig struct {
	Countries         []string        `mapstructure:"countries"           json:"countries"           yaml:"countries"`
	Keywords          []string        `mapstructure:"keywords"            json:"keywords"            yaml:"keywords"`
	Kinds             []string        `mapstructure:"kinds"               json:"kinds"               yaml:"kinds"`
	RegionTimeframe   string          `mapstructure:"region_timeframe"    json:"region_timeframe"    yaml:"region_timeframe"`
	OverTimeTimeframe string          `mapstructure:"over_time_timeframe" json:"over_time_timeframe" yaml:"over_time_timeframe"`
	Platforms         []PlatformQuery `mapstructure:"platforms"           json:"platforms"           yaml:"platforms"`
	Categories        []CategoryQuery `mapstructure:"categories"          json:"categories"          yaml:"categories"`
	Workers           int             `mapstructure:"workers"             json:"workers"             yaml:"workers"`
	PreviewRows       int             `mapstructure:"preview_rows"        json:"preview_rows"        yaml:"preview_rows"`
}

// HasKind reports whether a report kind is enabled.
func (r ReportConfig) HasKind(name string) bool {
	return slices.Contains(r.Kinds, name)
}

// VisualizeConfig holds the paginated chart settings.
type VisualizeConfig struct {
	Enabled   bool   `mapstructure:"enabled"   json:"enabled"   yaml:"enabled"`
	PerPage   int    `mapstructure:"per_page"  json:"per_page"  yaml:"per_page"`
	Timeframe string `mapstructure:"timeframe" json:"timeframe" yaml:"timeframe"`
	Theme     string `mapstructure:"theme"     json:"theme"     yaml:"theme"`
	Title     string `mapstructure:"title"     json:"title"     yaml:"title"`
	// Dir is relative to output.dir unless absolute.
	Dir string `mapstructure:"dir" json:"dir" yaml:"dir"`
}

// OutputConfig holds artifact settings.
type OutputConfig struct {
	Dir    string `mapstructure:"dir"    json:"dir"    yaml:"dir"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"        json:"level"        yaml:"level"`
	JSON       bool   `mapstructure:"json"         json:"json"         yaml:"json"`
	File       string `mapstructure:"file"         json:"file"         yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  json:"max_size_mb"  yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"  json:"max_backups"  yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" json:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress"     json:"compress"     yaml:"compress"`
}

// TelemetryConfig holds tracing and metrics export settings.
type TelemetryConfig struct {
	ServiceName  string `mapstructure:"service_name"  json:"service_name"  yaml:"service_name"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint" json:"otlp_endpoint" yaml:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure" json:"otlp_insecure" yaml:"otlp_insecure"`
	MetricsFile  string `mapstructure:"metrics_file"  json:"metrics_file"  yaml:"metrics_file"`
}

// Sentinel errors for configuration validation.
var (
	// ErrSchema indicates the configuration does not match the JSON schema.
	ErrSchema = errors.New("config does not match schema")
	// ErrInvalidPerPage indicates a non-positive page size.
	ErrInvalidPerPage = errors.New("visualize.per_page must be positive")
	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("report.workers must be non-negative")
	// ErrInvalidPreviewRows indicates a negative preview size.
	ErrInvalidPreviewRows = errors.New("report.preview_rows must be non-negative")
	// ErrInvalidFormat indicates an unknown artifact format.
	ErrInvalidFormat = errors.New("output.format must be auto, csv or xlsx")
	// ErrInvalidTheme indicates an unknown chart theme.
	ErrInvalidTheme = errors.New("visualize.theme must be dark or light")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("logging.level must be debug, info, warn or error")
	// ErrInvalidKind indicates an unknown report kind.
	ErrInvalidKind = errors.New("report.kinds has an unknown kind")
	// ErrInvalidTimeout indicates a negative provider timeout.
	ErrInvalidTimeout = errors.New("provider.timeout must be non-negative")
)

var (
	validFormats   = []string{"auto", "csv", "xlsx", "excel"}
	validThemes    = []string{"dark", "light"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	schemaErr := validateSchema(c)
	if schemaErr != nil {
		return schemaErr
	}

	if c.Provider.Timeout < 0 {
		return ErrInvalidTimeout
	}

	reportErr := c.validateReport()
	if reportErr != nil {
		return reportErr
	}

	if c.Visualize.PerPage <= 0 {
		return ErrInvalidPerPage
	}

	if !slices.Contains(validThemes, strings.ToLower(c.Visualize.Theme)) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Visualize.Theme)
	}

	if !slices.Contains(validFormats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}

func (c *Config) validateReport() error {
	if c.Report.Workers < 0 {
		return ErrInvalidWorkers
	}

	if c.Report.PreviewRows < 0 {
		return ErrInvalidPreviewRows
	}

	for _, kind := range c.Report.Kinds {
		if !slices.Contains(DefaultReportKinds, kind) {
			return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
		}
	}

	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return out, nil
}
