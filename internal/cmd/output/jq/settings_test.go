package jq

import (
	"testing"

	cmdcommon "github.com/amora/amoractl/internal/cmd/common"
	testConfig "github.com/amora/amoractl/test/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJQCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	AddFlags(c.Flags())
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestResolveSettingsDefaults(t *testing.T) {
	settings, err := ResolveSettings(newJQCommand(t), nil)
	require.NoError(t, err)
	assert.False(t, settings.HasFilter())
	assert.Equal(t, cmdcommon.ColorModeAuto, settings.ColorMode)
	assert.Equal(t, DefaultTheme, settings.Theme)
}

func TestResolveSettingsEmptyFlagIsIdentity(t *testing.T) {
	settings, err := ResolveSettings(newJQCommand(t, "--jq="), nil)
	require.NoError(t, err)
	assert.Equal(t, ".", settings.Filter)
}

func TestResolveSettingsRawShortFlagWithoutConfig(t *testing.T) {
	settings, err := ResolveSettings(newJQCommand(t, "-r"), nil)
	require.NoError(t, err)
	assert.True(t, settings.RawOutput)
}

func TestResolveSettingsFromConfig(t *testing.T) {
	cfg := &testConfig.MockConfigHook{Values: map[string]any{
		DefaultExpressionConfigPath: ".[].name",
		ColorEnabledConfigPath:      "always",
		ColorThemeConfigPath:        "dracula",
		RawOutputConfigPath:         true,
	}}

	settings, err := ResolveSettings(newJQCommand(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, ".[].name", settings.Filter)
	assert.Equal(t, cmdcommon.ColorModeAlways, settings.ColorMode)
	assert.Equal(t, "dracula", settings.Theme)
	assert.True(t, settings.RawOutput)
}

func TestResolveSettingsFlagBeatsDefaultExpression(t *testing.T) {
	cfg := &testConfig.MockConfigHook{Values: map[string]any{DefaultExpressionConfigPath: ".bar"}}

	settings, err := ResolveSettings(newJQCommand(t, "--jq", ".foo"), cfg)
	require.NoError(t, err)
	assert.Equal(t, ".foo", settings.Filter)
}

func TestResolveSettingsFallsBackToGlobalColor(t *testing.T) {
	cfg := &testConfig.MockConfigHook{Values: map[string]any{cmdcommon.ColorConfigPath: "never"}}

	settings, err := ResolveSettings(newJQCommand(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, cmdcommon.ColorModeNever, settings.ColorMode)
}

func TestResolveSettingsIgnoresConfigWithoutJQFlag(t *testing.T) {
	cfg := &testConfig.MockConfigHook{Values: map[string]any{DefaultExpressionConfigPath: ".x"}}

	settings, err := ResolveSettings(&cobra.Command{Use: "plain"}, cfg)
	require.NoError(t, err)
	assert.Empty(t, settings.Filter)
}

func TestValidateOutputFormat(t *testing.T) {
	require.Error(t, ValidateOutputFormat(cmdcommon.TEXT, Settings{Filter: "."}))
	require.Error(t, ValidateOutputFormat(cmdcommon.JSON, Settings{RawOutput: true}))
	require.Error(t, ValidateOutputFormat(cmdcommon.YAML, Settings{Filter: ".", RawOutput: true}))
	require.NoError(t, ValidateOutputFormat(cmdcommon.YAML, Settings{Filter: "."}))
	require.NoError(t, ValidateOutputFormat(cmdcommon.TEXT, Settings{}))
}
