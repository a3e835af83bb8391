package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".trendscope"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for trendscope settings.
const envPrefix = "TRENDSCOPE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("provider.base_url", DefaultProviderBaseURL)
	viperCfg.SetDefault("provider.rss_url", DefaultProviderRSSURL)
	viperCfg.SetDefault("provider.host_language", DefaultProviderHostLanguage)
	viperCfg.SetDefault("provider.timezone_offset", DefaultProviderTimezoneOffset)
	viperCfg.SetDefault("provider.timeout", DefaultProviderTimeout)
	viperCfg.SetDefault("provider.user_agent", DefaultProviderUserAgent)

	viperCfg.SetDefault("report.countries", DefaultReportCountries)
	viperCfg.SetDefault("report.keywords", DefaultReportKeywords)
	viperCfg.SetDefault("report.kinds", DefaultReportKinds)
	viperCfg.SetDefault("report.region_timeframe", DefaultReportRegionTimeframe)
	viperCfg.SetDefault("report.over_time_timeframe", DefaultReportOverTimeTimeframe)
	viperCfg.SetDefault("report.platforms", defaultPlatforms())
	viperCfg.SetDefault("report.categories", defaultCategories())
	viperCfg.SetDefault("report.workers", DefaultReportWorkers)
	viperCfg.SetDefault("report.preview_rows", DefaultReportPreviewRows)

	viperCfg.SetDefault("visualize.enabled", DefaultVisualizeEnabled)
	viperCfg.SetDefault("visualize.per_page", DefaultVisualizePerPage)
	viperCfg.SetDefault("visualize.timeframe", DefaultVisualizeTimeframe)
	viperCfg.SetDefault("visualize.theme", DefaultVisualizeTheme)
	viperCfg.SetDefault("visualize.title", DefaultVisualizeTitle)
	viperCfg.SetDefault("visualize.dir", DefaultVisualizeDir)

	viperCfg.SetDefault("output.dir", DefaultOutputDir)
	viperCfg.SetDefault("output.format", DefaultOutputFormat)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.json", DefaultLoggingJSON)
	viperCfg.SetDefault("logging.file", "")
	viperCfg.SetDefault("logging.max_size_mb", DefaultLoggingMaxSizeMB)
	viperCfg.SetDefault("logging.max_backups", DefaultLoggingMaxBackups)
	viperCfg.SetDefault("logging.max_age_days", DefaultLoggingMaxAgeDays)
	viperCfg.SetDefault("logging.compress", DefaultLoggingCompress)

	viperCfg.SetDefault("telemetry.service_name", DefaultTelemetryServiceName)
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.metrics_file", "")
}
