package serve

import (
	"context"
	"log/slog"
	"testing"

	"github.com/amora/amoractl/internal/backend/helpers"
	"github.com/amora/amoractl/internal/cmd"
	"github.com/amora/amoractl/internal/config"
	"github.com/amora/amoractl/internal/iostreams"
	"github.com/amora/amoractl/internal/log"
	testconfig "github.com/amora/amoractl/test/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	c, err := NewServeCmd()
	require.NoError(t, err)
	require.NoError(t, c.Flags().Parse(args))
	return c.Flags()
}

func TestServerConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("AMORACTL_SERVE_ADDR", ":9090")
	t.Setenv("AMORACTL_SERVE_SITE_NAME", "Amora Staging")

	cfg, err := serverConfig(serveFlags(t, "--addr", "127.0.0.1:7000"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, "Amora Staging", cfg.SiteName)
}

func TestServerConfigDefaults(t *testing.T) {
	cfg, err := serverConfig(serveFlags(t))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "Amora", cfg.SiteName)
}

func TestServerConfigRejectsEmptyAddr(t *testing.T) {
	_, err := serverConfig(serveFlags(t, "--addr", " "))
	var cfgErr *cmd.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestServerConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("AMORACTL_SERVE_READ_TIMEOUT", "later")
	_, err := serverConfig(serveFlags(t))
	var cfgErr *cmd.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", displayAddr(":8080"))
	assert.Equal(t, "http://0.0.0.0:80", displayAddr("0.0.0.0:80"))
}

func TestServeStopsWithContext(t *testing.T) {
	c, err := NewServeCmd()
	require.NoError(t, err)

	streams, _, out, _ := iostreams.NewTestIOStreams()
	backend := &helpers.MockBackend{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctx = context.WithValue(ctx, config.ConfigKey, config.Hook(&testconfig.MockConfigHook{}))
	ctx = context.WithValue(ctx, iostreams.StreamsKey, &streams)
	ctx = context.WithValue(ctx, log.LoggerKey, slog.New(slog.DiscardHandler))
	ctx = context.WithValue(ctx, helpers.BackendFactoryKey, helpers.BackendFactory(
		func(config.Hook, *slog.Logger) (helpers.BackendAPI, error) { return backend, nil }))

	c.SetArgs([]string{"--addr", "127.0.0.1:0", "--site-name", "Amora Test"})
	require.NoError(t, c.ExecuteContext(ctx))
	assert.Equal(t, "Serving Amora Test on http://127.0.0.1:0\n", out.String())
}
