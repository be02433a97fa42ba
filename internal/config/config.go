package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/law-makers/shopcrawl/internal/utils/headers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Target and output
	BaseURL   string
	OutputDir string

	// HTTP
	HTTPTimeout    time.Duration
	UserAgent      string
	Headers        map[string]string
	RateLimitRPS   float64
	RateLimitBurst int

	// Browser
	Headless       bool
	ChromePath     string
	BrowserTimeout time.Duration
	PollInterval   time.Duration
	MaxClicks      int

	// Run
	FailFast    bool
	MetricsFile string
	Progress    bool
}

// Load builds a Config by combining defaults, SHOPCRAWL_* environment
// variables and CLI flags, in increasing priority. cmd may be nil.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if cmd != nil {
		if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := &Config{
		LogLevel:       v.GetString(KeyLogLevel),
		JSONLog:        v.GetBool(KeyJSON),
		BaseURL:        v.GetString(KeyBaseURL),
		OutputDir:      v.GetString(KeyOutputDir),
		HTTPTimeout:    v.GetDuration(KeyTimeout),
		UserAgent:      v.GetString(KeyUserAgent),
		RateLimitRPS:   v.GetFloat64(KeyRateLimit),
		RateLimitBurst: v.GetInt(KeyRateBurst),
		Headless:       v.GetBool(KeyHeadless),
		ChromePath:     v.GetString(KeyChromePath),
		BrowserTimeout: v.GetDuration(KeyBrowserTimeout),
		PollInterval:   v.GetDuration(KeyPollInterval),
		MaxClicks:      v.GetInt(KeyMaxClicks),
		FailFast:       v.GetBool(KeyFailFast),
		MetricsFile:    v.GetString(KeyMetricsFile),
		Progress:       !v.GetBool(KeyNoProgress),
	}

	hdrs, err := headers.Parse(v.GetStringSlice(KeyHeader))
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Headers = hdrs

	// --quiet wins over --verbose
	if v.GetBool(KeyVerbose) {
		cfg.LogLevel = "debug"
	}
	if v.GetBool(KeyQuiet) {
		cfg.LogLevel = "error"
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyJSON, DefaultJSONLog)
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyTimeout, DefaultHTTPTimeout)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyRateLimit, DefaultRateLimitRPS)
	v.SetDefault(KeyRateBurst, DefaultRateLimitBurst)
	v.SetDefault(KeyHeadless, DefaultHeadless)
	v.SetDefault(KeyChromePath, "")
	v.SetDefault(KeyBrowserTimeout, time.Duration(DefaultBrowserTimeout))
	v.SetDefault(KeyPollInterval, DefaultPollInterval)
	v.SetDefault(KeyMaxClicks, DefaultMaxClicks)
	v.SetDefault(KeyFailFast, DefaultFailFast)
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyNoProgress, !DefaultProgress)
	v.SetDefault(KeyHeader, []string{})
}
