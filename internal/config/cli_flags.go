package config

import "github.com/spf13/cobra"

// Flag names double as viper keys
const (
	KeyLogLevel       = "log-level"
	KeyVerbose        = "verbose"
	KeyQuiet          = "quiet"
	KeyJSON           = "json"
	KeyBaseURL        = "base-url"
	KeyOutputDir      = "output-dir"
	KeyTimeout        = "timeout"
	KeyUserAgent      = "user-agent"
	KeyRateLimit      = "rate-limit"
	KeyRateBurst      = "rate-burst"
	KeyHeadless       = "headless"
	KeyChromePath     = "chrome-path"
	KeyBrowserTimeout = "browser-timeout"
	KeyPollInterval   = "poll-interval"
	KeyMaxClicks      = "max-clicks"
	KeyFailFast       = "fail-fast"
	KeyMetricsFile    = "metrics-file"
	KeyNoProgress     = "no-progress"
	KeyHeader         = "header"
)

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	f := cmd.PersistentFlags()
	f.String(KeyLogLevel, DefaultLogLevel, "Log level (debug, info, warn, error)")
	f.BoolP(KeyVerbose, "v", false, "Enable debug logging")
	f.BoolP(KeyQuiet, "q", false, "Suppress all output except errors")
	f.Bool(KeyJSON, DefaultJSONLog, "Emit logs as JSON")
	f.String(KeyBaseURL, DefaultBaseURL, "Site root the category paths are resolved against")
	f.StringP(KeyOutputDir, "o", DefaultOutputDir, "Directory the CSV files are written to")
	f.Duration(KeyTimeout, DefaultHTTPTimeout, "Timeout for each static request")
	f.String(KeyUserAgent, DefaultUserAgent, "User agent for HTTP requests and the browser")
	f.StringArrayP(KeyHeader, "H", nil, "Extra request header as \"Key: Value\" (repeatable)")
	f.Float64(KeyRateLimit, DefaultRateLimitRPS, "Maximum requests per second per host")
	f.Int(KeyRateBurst, DefaultRateLimitBurst, "Request burst allowed per host")
	f.Bool(KeyHeadless, DefaultHeadless, "Run the browser without a window")
	f.String(KeyChromePath, "", "Chrome or Chromium executable (auto-detected when empty)")
	f.Duration(KeyBrowserTimeout, DefaultBrowserTimeout, "Upper bound for one browser session, 0 disables it")
	f.Duration(KeyPollInterval, DefaultPollInterval, "Wait between a load more click and the next check")
	f.Int(KeyMaxClicks, DefaultMaxClicks, "Give up after this many load more clicks, 0 disables the limit")
	f.Bool(KeyFailFast, DefaultFailFast, "Stop at the first failing category")
	f.String(KeyMetricsFile, "", "Write Prometheus metrics to this file after the run")
	f.Bool(KeyNoProgress, !DefaultProgress, "Disable the progress bar")
}
