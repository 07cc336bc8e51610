package viper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewViperEnvKeyReplacer(t *testing.T) {
	t.Setenv("AMORACTL_LOG_LEVEL", "debug")
	t.Setenv("AMORACTL_BACKEND_BASE_URL", "https://api.example.test")

	v := NewViper("nonexistent.yaml")

	require.Equal(t, "debug", v.GetString("log-level"))
	require.Equal(t, "https://api.example.test", v.GetString("backend.base-url"))
}

func TestInitializeDefaultViperWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amoractl", "config.yaml")

	v, err := InitializeDefaultViper(map[string]any{
		"default": map[string]any{"output": "text"},
	}, path)
	require.NoError(t, err)
	require.Equal(t, "text", v.GetString("default.output"))

	_, err = os.Stat(path)
	require.NoError(t, err)

	reloaded, err := NewViperE(path)
	require.NoError(t, err)
	require.Equal(t, "text", reloaded.GetString("default.output"))
}

func TestNewViperEFailsOnMissingFile(t *testing.T) {
	_, err := NewViperE(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
