package jq

import (
	"fmt"
	"strings"

	cmdpkg "github.com/amora/amoractl/internal/cmd"
	cmdcommon "github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	FlagName           = "jq"
	ColorFlagName      = "jq-color"
	ColorThemeFlagName = "jq-color-theme"
	RawOutputFlagName  = "jq-raw-output"
	RawOutputFlagShort = "r"

	DefaultExpressionConfigPath = "jq.default-expression"
	ColorEnabledConfigPath      = "jq.color.enabled"
	ColorThemeConfigPath        = "jq.color.theme"
	RawOutputConfigPath         = "jq.raw-output"

	DefaultTheme = "friendly"
)

// Settings is the resolved jq configuration for one command invocation.
type Settings struct {
	Filter    string
	ColorMode cmdcommon.ColorMode
	Theme     string
	RawOutput bool
}

func (s Settings) HasFilter() bool {
	return strings.TrimSpace(s.Filter) != ""
}

// AddFlags registers the jq flags on a command that prints json or yaml.
func AddFlags(flags *pflag.FlagSet) {
	flags.String(FlagName, "",
		fmt.Sprintf(`Filter json or yaml output with a jq expression.
- Config path: [ %s ]`, DefaultExpressionConfigPath))

	flags.Var(cmdpkg.NewEnum(cmdcommon.ColorModeNames(), cmdcommon.DefaultColorMode),
		ColorFlagName,
		fmt.Sprintf(`Colorize jq results.
- Config path: [ %s ]
- Allowed    : [ %s ]`, ColorEnabledConfigPath, strings.Join(cmdcommon.ColorModeNames(), "|")))

	flags.String(ColorThemeFlagName, DefaultTheme,
		fmt.Sprintf(`Color theme for jq results (any chroma style, e.g. friendly, dracula).
- Config path: [ %s ]`, ColorThemeConfigPath))

	flags.BoolP(RawOutputFlagName, RawOutputFlagShort, false,
		fmt.Sprintf(`Print string results without JSON quotes, like jq -r.
- Config path: [ %s ]`, RawOutputConfigPath))
}

// BindFlags binds the jq flags present on flags to their config paths.
func BindFlags(cfg config.Hook, flags *pflag.FlagSet) error {
	if cfg == nil || flags == nil {
		return nil
	}
	for flagName, path := range map[string]string{
		ColorFlagName:      ColorEnabledConfigPath,
		ColorThemeFlagName: ColorThemeConfigPath,
		RawOutputFlagName:  RawOutputConfigPath,
	} {
		f := flags.Lookup(flagName)
		if f == nil {
			continue
		}
		if err := cfg.BindFlag(path, f); err != nil {
			return err
		}
	}
	return nil
}

// ResolveSettings merges the jq flags of command with cfg. Commands without
// a --jq flag never pick up a default expression from config.
func ResolveSettings(command *cobra.Command, cfg config.Hook) (Settings, error) {
	settings := Settings{Theme: DefaultTheme, ColorMode: cmdcommon.ColorModeAuto}
	if command == nil {
		return settings, nil
	}
	flags := command.Flags()
	if flags.Lookup(FlagName) == nil {
		return settings, nil
	}

	expr, err := flags.GetString(FlagName)
	if err != nil {
		return Settings{}, err
	}
	expr = strings.TrimSpace(expr)
	if flags.Changed(FlagName) && expr == "" {
		expr = "."
	}
	settings.Filter = expr

	if cfg == nil {
		if flags.Lookup(RawOutputFlagName) != nil {
			settings.RawOutput, err = flags.GetBool(RawOutputFlagName)
		}
		return settings, err
	}

	if !flags.Changed(FlagName) {
		if def := strings.TrimSpace(cfg.GetString(DefaultExpressionConfigPath)); def != "" {
			settings.Filter = def
		}
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.GetString(ColorEnabledConfigPath)))
	if mode == "" {
		// the global --color setting applies when jq has no setting of its own
		mode = strings.ToLower(strings.TrimSpace(cfg.GetString(cmdcommon.ColorConfigPath)))
	}
	if settings.ColorMode, err = cmdcommon.ColorModeStringToIota(mode); err != nil {
		return Settings{}, err
	}
	if theme := strings.TrimSpace(cfg.GetString(ColorThemeConfigPath)); theme != "" {
		settings.Theme = theme
	}
	settings.RawOutput = cfg.GetBool(RawOutputConfigPath)
	return settings, nil
}

// ValidateOutputFormat rejects jq settings that cannot apply to outType.
func ValidateOutputFormat(outType cmdcommon.OutputFormat, settings Settings) error {
	switch {
	case settings.RawOutput && !settings.HasFilter():
		return &cmdpkg.ConfigurationError{
			Err: fmt.Errorf("--%s requires --%s", RawOutputFlagName, FlagName),
		}
	case settings.RawOutput && outType != cmdcommon.JSON:
		return &cmdpkg.ConfigurationError{
			Err: fmt.Errorf("--%s is only supported with --output json", RawOutputFlagName),
		}
	case settings.HasFilter() && outType == cmdcommon.TEXT:
		return &cmdpkg.ConfigurationError{
			Err: fmt.Errorf("--%s is only supported with --output json or --output yaml", FlagName),
		}
	}
	return nil
}
