// Package app wires the configured components together and owns their lifecycle.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/law-makers/shopcrawl/internal/config"
	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/internal/engine/batch"
	"github.com/law-makers/shopcrawl/internal/engine/dynamic"
	"github.com/law-makers/shopcrawl/internal/engine/hybrid"
	"github.com/law-makers/shopcrawl/internal/engine/static"
	"github.com/law-makers/shopcrawl/internal/metrics"
	"github.com/law-makers/shopcrawl/internal/pipeline"
	"github.com/law-makers/shopcrawl/internal/ratelimit"
	"github.com/law-makers/shopcrawl/internal/runctx"
	"github.com/law-makers/shopcrawl/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// Fetcher and Browser are interfaces so a run can be pointed at test doubles.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Metrics     *metrics.Metrics
	RateLimiter ratelimit.RateLimiter
	HTTPClient  *http.Client
	Fetcher     engine.Fetcher
	Browser     engine.Browser
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
// No browser is started here; sessions are opened per interactive page.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := setupLogger(cfg, os.Stderr)

	m := metrics.New()

	rateLimiter := ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	fetcher := static.New(httpClient, rateLimiter, m, cfg.HTTPTimeout, cfg.UserAgent).
		WithHeaders(cfg.Headers)

	browser := dynamic.NewBrowser(dynamic.Options{
		Headless:   cfg.Headless,
		ChromePath: cfg.ChromePath,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.BrowserTimeout,
	}, m)

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		Metrics:     m,
		RateLimiter: rateLimiter,
		HTTPClient:  httpClient,
		Fetcher:     fetcher,
		Browser:     browser,
		startTime:   time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return app, nil
}

// setupLogger configures the global zerolog logger and returns it
func setupLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = out
	} else {
		logWriter = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(logWriter).With().Timestamp().Logger()

	log.Debug().
		Str("level", level.String()).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	return log.Logger
}

// Categories returns the fixed category list resolved against the configured base URL
func (a *Application) Categories() ([]models.Category, error) {
	return config.Categories(a.Config.BaseURL)
}

// Run scrapes every category in order. observer, when not nil, is called
// after each category. The metrics file is written even when the run fails.
func (a *Application) Run(ctx context.Context, observer func(batch.Report)) ([]batch.Report, error) {
	categories, err := a.Categories()
	if err != nil {
		return nil, err
	}

	ctx = runctx.With(ctx)
	run := runctx.From(ctx)

	a.Logger.Info().
		Str("run_id", run.ID).
		Str("base_url", a.Config.BaseURL).
		Int("categories", len(categories)).
		Msg("Run started")

	loader := hybrid.NewLoader(a.Fetcher, a.Browser, hybrid.Options{
		PollInterval: a.Config.PollInterval,
		MaxClicks:    a.Config.MaxClicks,
	}, a.Metrics)

	p := pipeline.New(loader, a.Config.OutputDir, a.Metrics)

	runner := batch.New(p, batch.Options{
		FailFast: a.Config.FailFast,
		Observer: observer,
	}, a.Metrics)

	reports, runErr := runner.RunAll(ctx, categories)

	a.Logger.Info().
		Str("run_id", run.ID).
		Dur("elapsed", time.Since(run.StartTime)).
		Bool("ok", runErr == nil).
		Msg("Run finished")

	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Warn().Err(err).Str("path", a.Config.MetricsFile).Msg("Failed to write metrics file")
	}

	return reports, runErr
}

// Close releases pooled connections. Browser sessions are closed by the
// component that opened them.
func (a *Application) Close() error {
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
