package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/trendscope/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".trendscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultProviderHostLanguage, cfg.Provider.HostLanguage)
	assert.Equal(t, config.DefaultProviderTimezoneOffset, cfg.Provider.TimezoneOffset)
	assert.Equal(t, config.DefaultProviderTimeout, cfg.Provider.Timeout)
	assert.Equal(t, config.DefaultReportCountries, cfg.Report.Countries)
	assert.Equal(t, config.DefaultReportKeywords, cfg.Report.Keywords)
	assert.Equal(t, config.DefaultReportKinds, cfg.Report.Kinds)
	assert.Equal(t, []config.PlatformQuery{{Keyword: "Artificial Intelligence", Platform: "youtube"}}, cfg.Report.Platforms)
	assert.Equal(t, []config.CategoryQuery{{Keyword: "Football", Category: 7}}, cfg.Report.Categories)
	assert.Equal(t, config.DefaultReportPreviewRows, cfg.Report.PreviewRows)
	assert.Equal(t, config.DefaultVisualizePerPage, cfg.Visualize.PerPage)
	assert.True(t, cfg.Visualize.Enabled)
	assert.Equal(t, config.DefaultOutputFormat, cfg.Output.Format)
	assert.Equal(t, config.DefaultLoggingLevel, cfg.Logging.Level)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `provider:
  timeout: 5s
report:
  countries: [japan]
  keywords: [Rust, Go]
  kinds: [interest_over_time]
  platforms:
    - keyword: Go
      platform: news
  categories: []
  workers: 4
visualize:
  per_page: 2
  theme: light
output:
  dir: out
  format: csv
logging:
  level: debug
  json: true
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, []string{"japan"}, cfg.Report.Countries)
	assert.Equal(t, []string{"Rust", "Go"}, cfg.Report.Keywords)
	assert.True(t, cfg.Report.HasKind("interest_over_time"))
	assert.False(t, cfg.Report.HasKind("trending"))
	assert.Equal(t, []config.PlatformQuery{{Keyword: "Go", Platform: "news"}}, cfg.Report.Platforms)
	assert.Empty(t, cfg.Report.Categories)
	assert.Equal(t, 4, cfg.Report.Workers)
	assert.Equal(t, 2, cfg.Visualize.PerPage)
	assert.Equal(t, "light", cfg.Visualize.Theme)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"per page zero", "visualize:\n  per_page: 0\n", config.ErrInvalidPerPage},
		{"negative workers", "report:\n  workers: -1\n", config.ErrInvalidWorkers},
		{"negative preview", "report:\n  preview_rows: -2\n", config.ErrInvalidPreviewRows},
		{"bad format", "output:\n  format: parquet\n", config.ErrInvalidFormat},
		{"bad theme", "visualize:\n  theme: neon\n", config.ErrInvalidTheme},
		{"bad level", "logging:\n  level: loud\n", config.ErrInvalidLogLevel},
		{"bad kind", "report:\n  kinds: [weather]\n", config.ErrInvalidKind},
		{"bad platform", "report:\n  platforms:\n    - keyword: Go\n      platform: radio\n", config.ErrSchema},
		{"negative category", "report:\n  categories:\n    - keyword: Go\n      category: -3\n", config.ErrSchema},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadConfig_BrokenYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "report: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TRENDSCOPE_VISUALIZE_PER_PAGE", "5")
	t.Setenv("TRENDSCOPE_OUTPUT_FORMAT", "xlsx")

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Visualize.PerPage)
	assert.Equal(t, "xlsx", cfg.Output.Format)
}

func TestConfig_YAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)

	var decoded map[string]any

	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "provider")
	assert.Contains(t, string(out), "timeout: 30s")
	assert.Contains(t, string(out), "- Artificial Intelligence")
}
