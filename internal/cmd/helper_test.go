package cmd

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/amora/amoractl/internal/backend/helpers"
	"github.com/amora/amoractl/internal/build"
	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/cmd/root/resources"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/config"
	"github.com/amora/amoractl/internal/log"
	testconfig "github.com/amora/amoractl/test/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandWithContext(ctx context.Context) *cobra.Command {
	c := &cobra.Command{Use: "list"}
	c.SetContext(ctx)
	return c
}

func TestHelperReadsContextValues(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	info := &build.Info{Version: "1.2.3"}
	cfg := &testconfig.MockConfigHook{Values: map[string]any{
		common.OutputConfigPath: "json",
		common.LayoutConfigPath: "stacked",
	}}

	ctx := context.Background()
	ctx = context.WithValue(ctx, verbs.Verb, verbs.List)
	ctx = context.WithValue(ctx, resources.Resource, resources.ResourceValue("subscription"))
	ctx = context.WithValue(ctx, log.LoggerKey, logger)
	ctx = context.WithValue(ctx, build.InfoKey, info)
	ctx = context.WithValue(ctx, config.ConfigKey, config.Hook(cfg))

	h := BuildHelper(commandWithContext(ctx), []string{"p1"})

	verb, err := h.GetVerb()
	require.NoError(t, err)
	assert.Equal(t, verbs.List, verb)

	res, err := h.GetResource()
	require.NoError(t, err)
	assert.Equal(t, resources.ResourceValue("subscription"), res)

	gotLogger, err := h.GetLogger()
	require.NoError(t, err)
	assert.Same(t, logger, gotLogger)

	gotInfo, err := h.GetBuildInfo()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", gotInfo.Version)

	format, err := h.GetOutputFormat()
	require.NoError(t, err)
	assert.Equal(t, common.JSON, format)

	layout, err := h.GetLayout()
	require.NoError(t, err)
	assert.Equal(t, common.LayoutStacked, layout)

	assert.Equal(t, []string{"p1"}, h.GetArgs())
}

func TestHelperMissingValuesReturnErrors(t *testing.T) {
	h := BuildHelper(commandWithContext(context.Background()), nil)

	_, err := h.GetVerb()
	assert.Error(t, err)
	_, err = h.GetResource()
	assert.Error(t, err)
	_, err = h.GetConfig()
	assert.Error(t, err)

	_, err = h.GetLogger()
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestHelperInvalidLayoutIsConfigurationError(t *testing.T) {
	cfg := &testconfig.MockConfigHook{Values: map[string]any{common.LayoutConfigPath: "diagonal"}}
	ctx := context.WithValue(context.Background(), config.ConfigKey, config.Hook(cfg))

	_, err := BuildHelper(commandWithContext(ctx), nil).GetLayout()
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestHelperInteractiveFlag(t *testing.T) {
	c := commandWithContext(context.Background())
	c.Flags().BoolP(common.InteractiveFlagName, common.InteractiveFlagShort, false, "")

	h := BuildHelper(c, nil)
	interactive, err := h.IsInteractive()
	require.NoError(t, err)
	assert.False(t, interactive)

	require.NoError(t, c.Flags().Set(common.InteractiveFlagName, "true"))
	interactive, err = h.IsInteractive()
	require.NoError(t, err)
	assert.True(t, interactive)
}

func TestHelperGetBackendUsesContextFactory(t *testing.T) {
	mock := &helpers.MockBackend{}
	var factory helpers.BackendFactory = func(config.Hook, *slog.Logger) (helpers.BackendAPI, error) {
		return mock, nil
	}
	ctx := context.WithValue(context.Background(), helpers.BackendFactoryKey, factory)

	backend, err := BuildHelper(commandWithContext(ctx), nil).GetBackend(&testconfig.MockConfigHook{}, nil)
	require.NoError(t, err)
	assert.Same(t, mock, backend)
}

func TestHelperGetBackendWrapsFactoryError(t *testing.T) {
	var factory helpers.BackendFactory = func(config.Hook, *slog.Logger) (helpers.BackendAPI, error) {
		return nil, errors.New("bad base url")
	}
	ctx := context.WithValue(context.Background(), helpers.BackendFactoryKey, factory)

	_, err := BuildHelper(commandWithContext(ctx), nil).GetBackend(&testconfig.MockConfigHook{}, nil)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.EqualError(t, err, "bad base url")
}

func TestPrepareExecutionErrorSilencesCommand(t *testing.T) {
	c := &cobra.Command{Use: "patch"}
	err := PrepareExecutionError("could not patch", errors.New("409"), c, "id", "p1")

	assert.True(t, c.SilenceUsage)
	assert.True(t, c.SilenceErrors)
	assert.Equal(t, "could not patch", err.Msg)
	assert.Equal(t, []any{"id", "p1"}, err.Attrs)
	assert.EqualError(t, err, "409")
}

func TestPrepareExecutionErrorToleratesNilCommand(t *testing.T) {
	err := PrepareExecutionErrorMsg(nil, "")
	assert.EqualError(t, err, "an unknown error occurred")
	assert.Nil(t, PrepareExecutionErrorFromErr(nil, nil))
}

func TestTryConvertErrorToAttrs(t *testing.T) {
	attrs := TryConvertErrorToAttrs(errors.New(`{"status":404}`))
	assert.Equal(t, []any{"status", float64(404)}, attrs)
	assert.Nil(t, TryConvertErrorToAttrs(errors.New("plain")))
}
