// Package config provides configuration types and defaults for signup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/log"
	"github.com/jufengpp/signup/internal/tracing"
)

// Environment names known out of the box.
const (
	EnvLocal       = "local"
	EnvDevelopment = "development"
	EnvDeployed    = "deployed"
)

// TimeLayout is the format of activity.start and activity.end.
const TimeLayout = time.RFC3339

// Config holds all configuration options for signup.
type Config struct {
	Env          string                       `mapstructure:"env" yaml:"env"`
	Environments map[string]EnvironmentConfig `mapstructure:"environments" yaml:"environments"`
	API          APIConfig                    `mapstructure:"api" yaml:"api"`
	Activity     ActivityConfig               `mapstructure:"activity" yaml:"activity"`
	Polling      PollingConfig                `mapstructure:"polling" yaml:"polling"`
	UI           UIConfig                     `mapstructure:"ui" yaml:"ui"`
	Members      MembersConfig                `mapstructure:"members" yaml:"members"`
	Tracing      tracing.Config               `mapstructure:"tracing" yaml:"tracing"`
}

// EnvironmentConfig is one deployment target of the registration API.
type EnvironmentConfig struct {
	// BaseURL includes the API base path, e.g. http://localhost:7088/jufeng/api.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// APIConfig holds HTTP client settings.
type APIConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ForwardedProto string        `mapstructure:"forwarded_proto" yaml:"forwarded_proto"`
}

// ActivityConfig describes the single promotion shown on the activity page.
type ActivityConfig struct {
	Brand       string           `mapstructure:"brand" yaml:"brand"`
	Title       string           `mapstructure:"title" yaml:"title"`
	Subtitle    string           `mapstructure:"subtitle" yaml:"subtitle"`
	Tagline     string           `mapstructure:"tagline" yaml:"tagline"`
	Start       string           `mapstructure:"start" yaml:"start"`
	End         string           `mapstructure:"end" yaml:"end"`
	Capacity    int              `mapstructure:"capacity" yaml:"capacity"`
	Packages    []domain.Package `mapstructure:"packages" yaml:"packages"`
	Notices     []string         `mapstructure:"notices" yaml:"notices"`
	Description string           `mapstructure:"description" yaml:"description"`
	AgeRange    string           `mapstructure:"age_range" yaml:"age_range"`
	Address     []string         `mapstructure:"address" yaml:"address"`
}

// PollingConfig holds the background refresh cadences.
type PollingConfig struct {
	SlotsInterval time.Duration `mapstructure:"slots_interval" yaml:"slots_interval"`
	TickInterval  time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration" yaml:"toast_duration"`
	MarkdownStyle string        `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default) or "light"
}

// MembersConfig holds member list options.
type MembersConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// DefaultEnvironments returns the known API hosts.
func DefaultEnvironments() map[string]EnvironmentConfig {
	return map[string]EnvironmentConfig{
		EnvLocal:       {BaseURL: "http://localhost:7088/jufeng/api"},
		EnvDevelopment: {BaseURL: "http://121.36.91.199:7088/jufeng/api"},
		EnvDeployed:    {BaseURL: "http://jufeng.devtesting.top/jufeng/api"},
	}
}

// DefaultPackages returns the two course packages on offer.
func DefaultPackages() []domain.Package {
	return []domain.Package{
		{
			ID:            domain.Package30,
			Title:         "课包一",
			Hours:         30,
			Price:         7588,
			OriginalPrice: 9600,
			Validity:      "4个月有效（排除寒假）",
		},
		{
			ID:            domain.Package60,
			Title:         "课包二",
			Hours:         60,
			Price:         14488,
			OriginalPrice: 16800,
			Validity:      "9个月有效（排除寒假）",
		},
	}
}

// DefaultTracesFilePath returns ~/.config/signup/traces/traces.jsonl, or
// an empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "signup", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Env:          EnvDeployed,
		Environments: DefaultEnvironments(),
		API: APIConfig{
			Timeout:        60 * time.Second,
			ForwardedProto: "http",
		},
		Activity: ActivityConfig{
			Brand:    "飓风乒乓中关村校区",
			Title:    "🏓 10月18日店庆特惠！",
			Subtitle: "乒乓球培训超值课包来袭！",
			Tagline:  "限时一天，先到先得",
			Start:    "2025-10-18T00:00:00+08:00",
			End:      "2025-10-18T23:59:59+08:00",
			Capacity: 10,
			Packages: DefaultPackages(),
			Notices: []string{
				"限新学员报名",
				"活动严格按有效期，过期不退不补，有多训练需求的学员报名",
				"课包不包含赠品，学员自备球拍、球衣、球包，三件套可从我机构优惠购买，299元/套",
				"此活动不可选择教练，如有选择教练需求请报名正式课并与店长沟通",
			},
			Description: "**店庆特惠**：两档课包限时直降，名额有限，报满即止。",
			AgeRange:    "5-12岁",
			Address: []string{
				"北京市海淀区苏州街18号院2号",
				"长远天地大厦B1座2层2204、2206",
			},
		},
		Polling: PollingConfig{
			SlotsInterval: 10 * time.Second,
			TickInterval:  time.Second,
		},
		UI: UIConfig{
			ToastDuration: 3 * time.Second,
			MarkdownStyle: "dark",
		},
		Members: MembersConfig{
			CacheTTL: 30 * time.Second,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// BaseURL returns the API base URL of the selected environment.
func (c Config) BaseURL() (string, error) {
	env, ok := c.Environments[c.Env]
	if !ok {
		return "", fmt.Errorf("unknown environment %q (known: %s)", c.Env, strings.Join(c.EnvironmentNames(), ", "))
	}
	if env.BaseURL == "" {
		return "", fmt.Errorf("environments.%s.base_url is empty", c.Env)
	}
	return env.BaseURL, nil
}

// EnvironmentNames returns the configured environment names, sorted.
func (c Config) EnvironmentNames() []string {
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Window parses the activity start and end.
func (a ActivityConfig) Window() (domain.ActivityWindow, error) {
	start, err := time.Parse(TimeLayout, a.Start)
	if err != nil {
		return domain.ActivityWindow{}, fmt.Errorf("activity.start: %w", err)
	}
	end, err := time.Parse(TimeLayout, a.End)
	if err != nil {
		return domain.ActivityWindow{}, fmt.Errorf("activity.end: %w", err)
	}
	return domain.ActivityWindow{Start: start, End: end}, nil
}

// Package returns the configured package with the given id.
func (a ActivityConfig) Package(id domain.CoursePackage) (domain.Package, bool) {
	for _, p := range a.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Package{}, false
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if _, err := c.BaseURL(); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if err := ValidateActivity(c.Activity); err != nil {
		return err
	}
	if c.Polling.SlotsInterval <= 0 {
		return fmt.Errorf("polling.slots_interval must be positive, got %s", c.Polling.SlotsInterval)
	}
	if c.Polling.TickInterval <= 0 {
		return fmt.Errorf("polling.tick_interval must be positive, got %s", c.Polling.TickInterval)
	}
	if c.UI.MarkdownStyle != "" && c.UI.MarkdownStyle != "dark" && c.UI.MarkdownStyle != "light" {
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle)
	}
	if c.Members.CacheTTL < 0 {
		return fmt.Errorf("members.cache_ttl must not be negative, got %s", c.Members.CacheTTL)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateActivity checks the activity window, capacity and packages.
func ValidateActivity(a ActivityConfig) error {
	window, err := a.Window()
	if err != nil {
		return err
	}
	if window.End.Before(window.Start) {
		return fmt.Errorf("activity.end (%s) is before activity.start (%s)", a.End, a.Start)
	}
	if a.Capacity < 0 {
		return fmt.Errorf("activity.capacity must not be negative, got %d", a.Capacity)
	}
	if len(a.Packages) == 0 {
		return fmt.Errorf("activity.packages: at least one package is required")
	}

	seen := make(map[domain.CoursePackage]bool, len(a.Packages))
	for i, p := range a.Packages {
		if !p.ID.Valid() {
			return fmt.Errorf("package %d: invalid id %q (must be %s or %s)", i, p.ID, domain.Package30, domain.Package60)
		}
		if seen[p.ID] {
			return fmt.Errorf("package %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if p.Price <= 0 {
			return fmt.Errorf("package %d (%s): price must be positive", i, p.ID)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	// Paths only matter when something will be exported.
	if tc.Enabled {
		if tc.Exporter == "file" && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	content, err := DefaultConfigTemplate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
