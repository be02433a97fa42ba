package config

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "shopcrawl"}
	RegisterFlags(cmd)
	return cmd
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newCommand())
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, time.Duration(0), cfg.BrowserTimeout)
	assert.Equal(t, 0, cfg.MaxClicks)
	assert.True(t, cfg.Headless)
	assert.True(t, cfg.Progress)
	assert.False(t, cfg.FailFast)
}

func TestLoad_NilCommand(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
}

func TestLoad_Flags(t *testing.T) {
	cmd := newCommand()
	f := cmd.PersistentFlags()
	require.NoError(t, f.Set(KeyBaseURL, "http://127.0.0.1:8080/"))
	require.NoError(t, f.Set(KeyOutputDir, "out"))
	require.NoError(t, f.Set(KeyPollInterval, "250ms"))
	require.NoError(t, f.Set(KeyMaxClicks, "40"))
	require.NoError(t, f.Set(KeyFailFast, "true"))
	require.NoError(t, f.Set(KeyNoProgress, "true"))
	require.NoError(t, f.Set(KeyVerbose, "true"))

	cfg, err := Load(cmd)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080/", cfg.BaseURL)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 40, cfg.MaxClicks)
	assert.True(t, cfg.FailFast)
	assert.False(t, cfg.Progress)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Headers(t *testing.T) {
	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set(KeyHeader, "accept-language: de-DE"))
	require.NoError(t, cmd.PersistentFlags().Set(KeyHeader, "X-Trace: 1"))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Accept-Language": "de-DE", "X-Trace": "1"}, cfg.Headers)

	bad := newCommand()
	require.NoError(t, bad.PersistentFlags().Set(KeyHeader, "no colon"))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoad_QuietWinsOverVerbose(t *testing.T) {
	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set(KeyVerbose, "true"))
	require.NoError(t, cmd.PersistentFlags().Set(KeyQuiet, "true"))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SHOPCRAWL_BASE_URL", "http://mirror.test/")
	t.Setenv("SHOPCRAWL_LOG_LEVEL", "warn")
	t.Setenv("SHOPCRAWL_MAX_CLICKS", "12")

	cfg, err := Load(newCommand())
	require.NoError(t, err)

	assert.Equal(t, "http://mirror.test/", cfg.BaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 12, cfg.MaxClicks)
}

func TestLoad_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("SHOPCRAWL_OUTPUT_DIR", "from-env")

	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set(KeyOutputDir, "from-flag"))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.OutputDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{KeyBaseURL, "ftp://webscraper.io/"},
		{KeyLogLevel, "chatty"},
		{KeyTimeout, "0s"},
		{KeyPollInterval, "0s"},
		{KeyMaxClicks, "-1"},
		{KeyRateLimit, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cmd := newCommand()
			require.NoError(t, cmd.PersistentFlags().Set(tt.key, tt.value))

			_, err := Load(cmd)
			assert.Error(t, err)
		})
	}
}

func TestCategories(t *testing.T) {
	categories, err := Categories(DefaultBaseURL)
	require.NoError(t, err)
	require.Len(t, categories, 6)

	want := []struct{ name, url, output string }{
		{"home", "https://webscraper.io/test-sites/e-commerce/more/", "home.csv"},
		{"computers", "https://webscraper.io/test-sites/e-commerce/more/computers", "computers.csv"},
		{"laptops", "https://webscraper.io/test-sites/e-commerce/more/computers/laptops", "laptops.csv"},
		{"tablets", "https://webscraper.io/test-sites/e-commerce/more/computers/tablets", "tablets.csv"},
		{"phones", "https://webscraper.io/test-sites/e-commerce/more/phones", "phones.csv"},
		{"touch-phones", "https://webscraper.io/test-sites/e-commerce/more/phones/touch", "touch.csv"},
	}
	for i, w := range want {
		assert.Equal(t, w.name, categories[i].Name)
		assert.Equal(t, w.url, categories[i].URL)
		assert.Equal(t, w.output, categories[i].Output)
	}
}

func TestCategories_LocalBase(t *testing.T) {
	categories, err := Categories("http://127.0.0.1:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/test-sites/e-commerce/more/phones/touch", categories[5].URL)
}
