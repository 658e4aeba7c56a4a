package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jufengpp/signup/internal/log"
)

// EnvPrefix prefixes environment overrides, e.g. SIGNUP_ENV=local or
// SIGNUP_API_TIMEOUT=10s.
const EnvPrefix = "SIGNUP"

// LocalConfigPath is tried first and receives the default config when no
// file exists anywhere.
var LocalConfigPath = filepath.Join(".signup", "config.yaml")

// UserConfigDir returns ~/.config/signup, or an empty string if the home
// directory is unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "signup")
}

// SetDefaults registers every default with v so env overrides and partial
// files resolve against them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("env", d.Env)
	for name, env := range d.Environments {
		v.SetDefault("environments."+name+".base_url", env.BaseURL)
	}

	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.forwarded_proto", d.API.ForwardedProto)

	v.SetDefault("activity.brand", d.Activity.Brand)
	v.SetDefault("activity.title", d.Activity.Title)
	v.SetDefault("activity.subtitle", d.Activity.Subtitle)
	v.SetDefault("activity.tagline", d.Activity.Tagline)
	v.SetDefault("activity.start", d.Activity.Start)
	v.SetDefault("activity.end", d.Activity.End)
	v.SetDefault("activity.capacity", d.Activity.Capacity)
	v.SetDefault("activity.packages", d.Activity.Packages)
	v.SetDefault("activity.notices", d.Activity.Notices)
	v.SetDefault("activity.description", d.Activity.Description)
	v.SetDefault("activity.age_range", d.Activity.AgeRange)
	v.SetDefault("activity.address", d.Activity.Address)

	v.SetDefault("polling.slots_interval", d.Polling.SlotsInterval)
	v.SetDefault("polling.tick_interval", d.Polling.TickInterval)

	v.SetDefault("ui.toast_duration", d.UI.ToastDuration)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)

	v.SetDefault("members.cache_ttl", d.Members.CacheTTL)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Load reads configuration into v and decodes it.
//
// Config lookup order:
//  1. cfgFile, when non-empty
//  2. .signup/config.yaml (current directory)
//  3. ~/.config/signup/config.yaml (user config)
//
// When no file is found a default one is written to .signup/config.yaml.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case fileExists(LocalConfigPath):
		v.SetConfigFile(LocalConfigPath)
	default:
		if dir := UserConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		// No config file anywhere. Continue with defaults if the write fails.
		if writeErr := WriteDefaultConfig(LocalConfigPath); writeErr == nil {
			v.SetConfigFile(LocalConfigPath)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("reading default config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}

	log.Debug(log.CatConfig, "Loaded config", "file", v.ConfigFileUsed(), "env", cfg.Env)
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
