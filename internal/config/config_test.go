package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jufengpp/signup/internal/domain"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, EnvDeployed, cfg.Env)
	require.Equal(t, 60*time.Second, cfg.API.Timeout)
	require.Equal(t, 10*time.Second, cfg.Polling.SlotsInterval)
	require.Equal(t, time.Second, cfg.Polling.TickInterval)
	require.Equal(t, 10, cfg.Activity.Capacity)
	require.Len(t, cfg.Activity.Packages, 2)
	require.NoError(t, cfg.Validate())
}

func TestBaseURL(t *testing.T) {
	cfg := Defaults()

	url, err := cfg.BaseURL()
	require.NoError(t, err)
	require.Equal(t, "http://jufeng.devtesting.top/jufeng/api", url)

	cfg.Env = EnvLocal
	url, err = cfg.BaseURL()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:7088/jufeng/api", url)
}

func TestBaseURL_UnknownEnv(t *testing.T) {
	cfg := Defaults()
	cfg.Env = "staging"

	_, err := cfg.BaseURL()
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown environment "staging"`)
	require.Contains(t, err.Error(), "deployed, development, local")
}

func TestBaseURL_Empty(t *testing.T) {
	cfg := Defaults()
	cfg.Environments["blank"] = EnvironmentConfig{}
	cfg.Env = "blank"

	_, err := cfg.BaseURL()
	require.ErrorContains(t, err, "environments.blank.base_url is empty")
}

func TestWindow(t *testing.T) {
	window, err := Defaults().Activity.Window()
	require.NoError(t, err)

	cst := time.FixedZone("CST", 8*3600)
	require.True(t, window.Start.Equal(time.Date(2025, 10, 18, 0, 0, 0, 0, cst)))
	require.True(t, window.End.Equal(time.Date(2025, 10, 18, 23, 59, 59, 0, cst)))
}

func TestWindow_InvalidStart(t *testing.T) {
	a := Defaults().Activity
	a.Start = "2025-10-18 00:00"

	_, err := a.Window()
	require.ErrorContains(t, err, "activity.start")
}

func TestActivity_Package(t *testing.T) {
	a := Defaults().Activity

	p, ok := a.Package(domain.Package60)
	require.True(t, ok)
	require.Equal(t, 14488, p.Price)
	require.Equal(t, 2312, p.Savings())

	_, ok = a.Package("PACKAGE_90")
	require.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"end before start", func(c *Config) { c.Activity.End = "2025-10-17T00:00:00+08:00" }, "is before activity.start"},
		{"negative capacity", func(c *Config) { c.Activity.Capacity = -1 }, "activity.capacity"},
		{"no packages", func(c *Config) { c.Activity.Packages = nil }, "at least one package"},
		{"bad package id", func(c *Config) { c.Activity.Packages[0].ID = "PACKAGE_90" }, `invalid id "PACKAGE_90"`},
		{"duplicate package", func(c *Config) { c.Activity.Packages[1].ID = domain.Package30 }, "duplicate id"},
		{"free package", func(c *Config) { c.Activity.Packages[0].Price = 0 }, "price must be positive"},
		{"zero poll interval", func(c *Config) { c.Polling.SlotsInterval = 0 }, "polling.slots_interval"},
		{"zero tick", func(c *Config) { c.Polling.TickInterval = 0 }, "polling.tick_interval"},
		{"markdown style", func(c *Config) { c.UI.MarkdownStyle = "neon" }, "ui.markdown_style"},
		{"negative ttl", func(c *Config) { c.Members.CacheTTL = -time.Second }, "members.cache_ttl"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "tracing.sample_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_EmptyMarkdownStyleAllowed(t *testing.T) {
	cfg := Defaults()
	cfg.UI.MarkdownStyle = ""
	require.NoError(t, cfg.Validate())
}

func TestValidateTracing(t *testing.T) {
	cfg := Defaults().Tracing
	require.NoError(t, ValidateTracing(cfg))

	cfg.Exporter = "jaeger"
	require.ErrorContains(t, ValidateTracing(cfg), "tracing.exporter")

	cfg.Exporter = "file"
	cfg.Enabled = true
	cfg.FilePath = ""
	require.ErrorContains(t, ValidateTracing(cfg), "tracing.file_path is required")

	cfg.Exporter = "otlp"
	cfg.OTLPEndpoint = ""
	require.ErrorContains(t, ValidateTracing(cfg), "tracing.otlp_endpoint is required")

	// Paths are not checked while disabled.
	cfg.Enabled = false
	require.NoError(t, ValidateTracing(cfg))
}

func TestEnvironmentNames_Sorted(t *testing.T) {
	require.Equal(t, []string{"deployed", "development", "local"}, Defaults().EnvironmentNames())
}
