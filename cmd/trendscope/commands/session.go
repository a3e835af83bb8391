// Package commands implements CLI command handlers for trendscope.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/trendscope/internal/gtrends"
	"github.com/Sumatoshi-tech/trendscope/pkg/artifact"
	"github.com/Sumatoshi-tech/trendscope/pkg/config"
	"github.com/Sumatoshi-tech/trendscope/pkg/observability"
	"github.com/Sumatoshi-tech/trendscope/pkg/plotpage"
	"github.com/Sumatoshi-tech/trendscope/pkg/report"
	"github.com/Sumatoshi-tech/trendscope/pkg/terminal"
	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
	"github.com/Sumatoshi-tech/trendscope/pkg/version"
)

// AdapterFactory builds the trend provider used by a session.
type AdapterFactory func(cfg config.ProviderConfig, client *http.Client, logger *slog.Logger) trends.Adapter

// Deps holds the replaceable dependencies of the commands.
type Deps struct {
	NewAdapter AdapterFactory
	Init       func(cfg observability.Config) (observability.Providers, error)
}

// DefaultDeps wires the Google Trends client and real telemetry.
func DefaultDeps() Deps {
	return Deps{
		NewAdapter: func(cfg config.ProviderConfig, client *http.Client, logger *slog.Logger) trends.Adapter {
			return gtrends.New(gtrends.Config{
				BaseURL:        cfg.BaseURL,
				RSSURL:         cfg.RSSURL,
				HostLanguage:   cfg.HostLanguage,
				TimezoneOffset: cfg.TimezoneOffset,
				Timeout:        cfg.Timeout,
				UserAgent:      cfg.UserAgent,
			}, client, logger)
		},
		Init: observability.Init,
	}
}

func (d Deps) withDefaults() Deps {
	defaults := DefaultDeps()

	if d.NewAdapter == nil {
		d.NewAdapter = defaults.NewAdapter
	}

	if d.Init == nil {
		d.Init = defaults.Init
	}

	return d
}

// commonFlags are shared by every command that runs queries.
type commonFlags struct {
	configPath string
	noColor    bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file (default: .trendscope.yaml in CWD or $HOME)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colored output")
}

// session is the per-invocation runtime: configuration, telemetry and the
// console.
type session struct {
	cfg       *config.Config
	runID     string
	providers observability.Providers
	metrics   *observability.ReportMetrics
	console   *report.Console
	out       io.Writer
}

// openSession loads and validates the configuration, applies the command
// overrides and starts telemetry. The caller must call close.
func openSession(cmd *cobra.Command, flags *commonFlags, deps Deps, override func(*config.Config)) (*session, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	if override != nil {
		override(cfg)

		validateErr := cfg.Validate()
		if validateErr != nil {
			return nil, fmt.Errorf("validate config: %w", validateErr)
		}
	}

	runID := uuid.NewString()

	providers, err := deps.Init(observabilityConfig(cfg, runID, cmd.ErrOrStderr()))
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewReportMetrics(providers.Meter)
	if err != nil {
		_ = providers.Shutdown(context.Background())

		return nil, err
	}

	term := terminal.NewConfig()
	if flags.noColor {
		term.NoColor = true
	}

	out := cmd.OutOrStdout()

	return &session{
		cfg:       cfg,
		runID:     runID,
		providers: providers,
		metrics:   metrics,
		console:   report.NewConsole(out, term, cfg.Report.PreviewRows),
		out:       out,
	}, nil
}

func observabilityConfig(cfg *config.Config, runID string, logWriter io.Writer) observability.Config {
	obs := observability.DefaultConfig()
	obs.ServiceName = cfg.Telemetry.ServiceName
	obs.ServiceVersion = version.Version
	obs.RunID = runID
	obs.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obs.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obs.MetricsFile = cfg.Telemetry.MetricsFile
	obs.LogLevel = observability.ParseLevel(cfg.Logging.Level)
	obs.LogJSON = cfg.Logging.JSON
	obs.LogFile = cfg.Logging.File
	obs.LogMaxSizeMB = cfg.Logging.MaxSizeMB
	obs.LogMaxBackups = cfg.Logging.MaxBackups
	obs.LogMaxAgeDays = cfg.Logging.MaxAgeDays
	obs.LogCompress = cfg.Logging.Compress
	obs.LogWriter = logWriter

	return obs
}

func (s *session) close() {
	shutdownErr := s.providers.Shutdown(context.Background())
	if shutdownErr != nil {
		s.providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
	}
}

// assembler wires the provider, writer and chart surface of the session.
func (s *session) assembler(deps Deps, withSurface bool) (*report.Assembler, error) {
	logger := s.providers.Logger

	httpClient := &http.Client{
		Timeout:   s.cfg.Provider.Timeout,
		Transport: observability.NewTransport(http.DefaultTransport, s.providers.Tracer, s.metrics),
	}

	fetcher := trends.NewFetcher(deps.NewAdapter(s.cfg.Provider, httpClient, logger),
		trends.WithLogger(logger),
		trends.WithTracer(s.providers.Tracer),
		trends.WithObserver(func(ctx context.Context, r trends.QueryResult, elapsed time.Duration) {
			s.metrics.RecordQuery(ctx, r.Spec.Kind.String(), r.Status.String(), elapsed)
		}),
	)

	opts := []report.Option{
		report.WithConsole(s.console),
		report.WithLogger(logger),
		report.WithTracer(s.providers.Tracer),
		report.WithMetrics(s.metrics),
		report.WithRunID(s.runID),
	}

	if withSurface {
		theme, err := plotpage.ParseTheme(s.cfg.Visualize.Theme)
		if err != nil {
			return nil, err
		}

		opts = append(opts, report.WithSurface(report.NewHTMLSurface(
			s.visualizeDir(), s.cfg.Visualize.Title, "run "+s.runID, theme)))
	}

	return report.NewAssembler(fetcher, artifact.NewWriter(s.cfg.Output.Dir, logger), opts...), nil
}

func (s *session) visualizeDir() string {
	if filepath.IsAbs(s.cfg.Visualize.Dir) {
		return s.cfg.Visualize.Dir
	}

	return filepath.Join(s.cfg.Output.Dir, s.cfg.Visualize.Dir)
}

// finish prints the summary and reports a run error.
func (s *session) finish(summary *report.Summary, runErr error) error {
	if summary != nil {
		s.console.Summary(summary)
	}

	if runErr != nil {
		return fmt.Errorf("run %s: %w", s.runID, runErr)
	}

	return nil
}
