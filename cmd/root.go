package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jufengpp/signup/internal/api"
	"github.com/jufengpp/signup/internal/app"
	"github.com/jufengpp/signup/internal/config"
	"github.com/jufengpp/signup/internal/log"
	"github.com/jufengpp/signup/internal/members"
	"github.com/jufengpp/signup/internal/mode"
	"github.com/jufengpp/signup/internal/slots"
	"github.com/jufengpp/signup/internal/submit"
	"github.com/jufengpp/signup/internal/timegate"
	"github.com/jufengpp/signup/internal/tracing"
	"github.com/jufengpp/signup/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts, so the OSC 11 response cannot race
	// with the input loop and land in a text field.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	noColor   bool
	noWatch   bool
	cfg       config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "signup",
	Short: "Terminal client for the course package promotion",
	Long: `signup shows the studio's time-limited course package promotion in the
terminal: the activity window and countdown, live remaining slots, and a
registration form that submits to the registration API.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE:              runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .signup/config.yaml, then ~/.config/signup/config.yaml)")
	rootCmd.PersistentFlags().StringP("env", "e", "",
		"API environment to use (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also SIGNUP_DEBUG); ctrl+x shows them in the TUI")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colors")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"do not reload the activity text when the config file changes")

	// Bind flags to viper
	_ = viper.BindPFlag("env", rootCmd.PersistentFlags().Lookup("env"))
}

// debugEnabled reports whether debug logging was requested by flag or env.
func debugEnabled() bool {
	return debugFlag || os.Getenv(config.EnvPrefix+"_DEBUG") != ""
}

// setup applies the output flags and starts logging. It does not load
// the config so that `config init` works without one.
func setup(_ *cobra.Command, _ []string) error {
	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if !debugEnabled() || logCleanup != nil {
		return nil
	}
	logPath := os.Getenv(config.EnvPrefix + "_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "signup starting", "version", version, "debug", true, "logPath", logPath)
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
}

// loadConfig reads and validates the configuration into cfg.
func loadConfig() error {
	loaded, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	return nil
}

// deps holds the wired services and what must be released on exit.
type deps struct {
	services mode.Services
	tracing  *tracing.Provider
}

func (r deps) Close() {
	if r.services.Tracker != nil {
		r.services.Tracker.Stop()
	}
	if r.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.tracing.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatConfig, "Tracing shutdown failed", err)
		}
	}
}

// newDeps wires the API client, time gate, slot tracker, submitter and
// member service from cfg.
func newDeps(cfg config.Config) (_ deps, err error) {
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return deps{}, fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		if err != nil {
			deps{tracing: provider}.Close()
		}
	}()

	baseURL, err := cfg.BaseURL()
	if err != nil {
		return deps{}, err
	}
	client, err := api.NewClient(api.Config{
		BaseURL:        baseURL,
		Timeout:        cfg.API.Timeout,
		ForwardedProto: cfg.API.ForwardedProto,
		Tracer:         provider.Tracer(),
	})
	if err != nil {
		return deps{}, fmt.Errorf("creating api client: %w", err)
	}

	window, err := cfg.Activity.Window()
	if err != nil {
		return deps{}, err
	}
	gate := timegate.New(window, nil)
	tracker := slots.New(client, slots.Config{
		Interval: cfg.Polling.SlotsInterval,
		Capacity: cfg.Activity.Capacity,
	})

	log.Info(log.CatConfig, "Services ready", "env", cfg.Env, "baseURL", client.BaseURL())
	services := mode.Services{
		Config:    &cfg,
		Gate:      gate,
		Tracker:   tracker,
		Submitter: submit.New(client, gate, tracker),
		Members:   members.NewService(client, cfg.Members.CacheTTL),
	}
	return deps{services: services, tracing: provider}, nil
}

func runApp(_ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	rt, err := newDeps(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	var opts []app.Option
	if path := viper.ConfigFileUsed(); path != "" && !noWatch {
		w, err := startWatcher(path)
		if err != nil {
			// The app works without live reload.
			log.Warn(log.CatConfig, "Config watch disabled", "error", err)
		} else {
			defer func() { _ = w.Stop() }()
			opts = append(opts, app.WithConfigWatch(w.Broker(), reloadFrom(path)))
		}
	}

	zone.NewGlobal()
	model := app.New(rt.services, debugEnabled(), opts...)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()

	// Stop polling and listeners before tracing shuts down.
	if m, ok := final.(app.Model); ok {
		model = m
	}
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func startWatcher(path string) (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}

// reloadFrom reads path into a fresh viper so a broken edit leaves the
// running config untouched.
func reloadFrom(path string) func() (config.Config, error) {
	return func() (config.Config, error) {
		loaded, err := config.Load(viper.New(), path)
		if err != nil {
			return config.Config{}, err
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		return loaded, nil
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
