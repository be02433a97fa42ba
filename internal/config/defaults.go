package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel       = "info"
	DefaultJSONLog        = false
	DefaultBaseURL        = "https://webscraper.io/"
	DefaultOutputDir      = "."
	DefaultUserAgent      = "Shopcrawl/1.0 (https://github.com/law-makers/shopcrawl)"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRateLimitRPS   = 2.0
	DefaultRateLimitBurst = 1
	DefaultHeadless       = true
	DefaultBrowserTimeout = 0 // no bound
	DefaultPollInterval   = time.Second
	DefaultMaxClicks      = 0 // no bound
	DefaultFailFast       = false
	DefaultProgress       = true

	// EnvPrefix namespaces every environment override, e.g. SHOPCRAWL_BASE_URL
	EnvPrefix = "SHOPCRAWL"
)
