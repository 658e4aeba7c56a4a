package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jufengpp/signup/internal/api"
	"github.com/jufengpp/signup/internal/config"
	"github.com/jufengpp/signup/internal/tracing"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag storage is package state; start every run from the defaults.
	cfgFile = ""
	membersOutput = "table"
	membersRefresh = false
	configForce = false
	viper.Reset()
	_ = viper.BindPFlag("env", rootCmd.PersistentFlags().Lookup("env"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// apiServer serves the registration API envelope for the read endpoints.
func apiServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /jufeng/api"+api.PathRegistrations, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    200,
			"message": "ok",
			"data": []map[string]string{
				{"id": "1", "name": "张三", "phone": "13800138000", "coursePackage": "PACKAGE_30"},
				{"id": "2", "name": "李四", "phone": "13900139000", "coursePackage": "PACKAGE_60"},
			},
		})
	})
	mux.HandleFunc("GET /jufeng/api"+api.PathRemainingSlots, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"data": map[string]any{"remainingSlots": 0, "isFull": true},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// writeConfig points the "test" environment at baseURL.
func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "env: test\nenvironments:\n  test:\n    base_url: " + baseURL + "/jufeng/api\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfigInit_WritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote "+path)

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, config.Defaults().Env, cfg.Env)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: local\n"), 0o600))

	_, err := execute(t, "config", "init", path)
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--force", path)
	require.NoError(t, err)
}

func TestConfigUse_SavesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)

	out, err := execute(t, "--config", path, "config", "use", config.EnvLocal)
	require.NoError(t, err)
	require.Contains(t, out, "Using local")

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, config.EnvLocal, cfg.Env)
}

func TestConfigUse_UnknownEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)

	_, err = execute(t, "--config", path, "config", "use", "staging")
	require.ErrorContains(t, err, "unknown environment")
}

func TestMembers_Table(t *testing.T) {
	srv := apiServer(t)
	path := writeConfig(t, srv.URL)

	out, err := execute(t, "--config", path, "members")
	require.NoError(t, err)
	require.Contains(t, out, "序号")
	require.Contains(t, out, "张三")
	require.Contains(t, out, "60课时")
}

func TestMembers_YAML(t *testing.T) {
	srv := apiServer(t)
	path := writeConfig(t, srv.URL)

	out, err := execute(t, "--config", path, "members", "--output", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "course_package: PACKAGE_30")
	require.Contains(t, out, "name: 李四")
}

func TestMembers_UnknownOutput(t *testing.T) {
	_, err := execute(t, "members", "--output", "json")
	require.ErrorContains(t, err, "unknown output format")
}

func TestSlots_PrintsStatus(t *testing.T) {
	srv := apiServer(t)
	path := writeConfig(t, srv.URL)

	out, err := execute(t, "--config", path, "slots")
	require.NoError(t, err)
	require.Contains(t, out, "剩余名额 0 / 10")
	require.Contains(t, out, "报名名额已满")
}

func TestSlots_ServerDown(t *testing.T) {
	srv := apiServer(t)
	path := writeConfig(t, srv.URL)
	srv.Close()

	_, err := execute(t, "--config", path, "slots")
	require.ErrorContains(t, err, "fetching remaining slots")
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: nowhere\n"), 0o600))

	_, err := execute(t, "--config", path, "slots")
	require.ErrorContains(t, err, "invalid configuration")
}

func TestReloadFrom(t *testing.T) {
	srv := apiServer(t)
	path := writeConfig(t, srv.URL)
	reload := reloadFrom(path)

	cfg, err := reload()
	require.NoError(t, err)
	require.Equal(t, "test", cfg.Env)

	require.NoError(t, os.WriteFile(path, []byte("env: test\nactivity:\n  capacity: 5\n"), 0o600))
	_, err = reload()
	require.Error(t, err, "the test environment is gone")
}

// recording reports whether the global tracer provider still records spans.
func recording() bool {
	_, span := otel.Tracer("signup-test").Start(context.Background(), "check")
	defer span.End()
	return span.IsRecording()
}

func TestNewDeps_TracingLifetime(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })
	enabled := tracing.Config{Enabled: true, Exporter: "none", SampleRate: 1}

	t.Run("closed with the deps", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Tracing = enabled

		d, err := newDeps(cfg)
		require.NoError(t, err)
		require.True(t, recording())

		d.Close()
		require.False(t, recording())
	})

	t.Run("shut down when wiring fails", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Tracing = enabled
		cfg.Env = "nowhere"

		_, err := newDeps(cfg)
		require.Error(t, err)
		require.False(t, recording())
	})
}
