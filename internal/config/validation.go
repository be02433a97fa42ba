package config

import (
	"fmt"

	urlutil "github.com/law-makers/shopcrawl/internal/utils/url"
	"github.com/rs/zerolog"
)

func validate(c *Config) error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if err := urlutil.ValidateURL(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit and burst must be > 0")
	}
	if c.BrowserTimeout < 0 {
		return fmt.Errorf("browser timeout must be >= 0")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be > 0")
	}
	if c.MaxClicks < 0 {
		return fmt.Errorf("max clicks must be >= 0")
	}
	return nil
}
