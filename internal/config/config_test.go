package config

import (
	"os"
	"path/filepath"
	"testing"

	utilviper "github.com/amora/amoractl/internal/util/viper"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProfiledConfigProfileEnvWithDashes(t *testing.T) {
	t.Setenv("AMORACTL_TEAM_A_B_C_BACKEND_TOKEN", "token-123")

	profile := "team-a-b-c"
	mainv := utilviper.NewViper("nonexistent.yaml")

	cfg := BuildProfiledConfig(profile, "nonexistent.yaml", mainv)

	assert.Equal(t, "token-123", cfg.GetString(BackendTokenConfigPath))
}

func TestGetConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amoractl", "config.yaml")

	cfg, err := GetConfig(path, DefaultProfile, path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultProfile, cfg.GetProfile())
	assert.Equal(t, path, cfg.GetPath())
	assert.Equal(t, "text", cfg.GetString("output"))
	assert.Equal(t, "auto", cfg.GetString("layout"))
	assert.Equal(t, DefaultBackendBaseURL, cfg.GetString(BackendBaseURLConfigPath))
	assert.Equal(t, DefaultBackendPageSize, cfg.GetInt(BackendPageSizeConfigPath))
	assert.Equal(t,
		filepath.Join(filepath.Dir(path), "logs", "amoractl.log"),
		cfg.GetString("log-file"))
}

func TestGetConfigRejectsMissingExplicitPath(t *testing.T) {
	dir := t.TempDir()
	_, err := GetConfig(filepath.Join(dir, "other.yaml"), DefaultProfile, filepath.Join(dir, "config.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestGetConfigReadsSelectedProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default:
  output: text
staging:
  output: json
  backend:
    base-url: https://staging.example.test/api
`), 0o600))

	cfg, err := GetConfig(path, "staging", "unused")
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.GetString("output"))
	assert.Equal(t, "https://staging.example.test/api", cfg.GetString(BackendBaseURLConfigPath))
	assert.Equal(t, 25, cfg.GetIntOrElse(BackendPageSizeConfigPath, 25))
}

func TestBindFlagOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default:\n  output: yaml\n"), 0o600))

	cfg, err := GetConfig(path, DefaultProfile, "unused")
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("output", "text", "")
	require.NoError(t, fs.Parse([]string{"--output", "json"}))
	require.NoError(t, cfg.BindFlag("output", fs.Lookup("output")))

	assert.Equal(t, "json", cfg.GetString("output"))
}

func TestSavePersistsProfileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default:\n  output: yaml\n"), 0o600))

	cfg, err := GetConfig(path, DefaultProfile, "unused")
	require.NoError(t, err)

	cfg.SetString("layout", "stacked")
	require.NoError(t, cfg.Save())

	reloaded, err := GetConfig(path, DefaultProfile, "unused")
	require.NoError(t, err)
	assert.Equal(t, "stacked", reloaded.GetString("layout"))
	assert.Equal(t, "yaml", reloaded.GetString("output"))
}
