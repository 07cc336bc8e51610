package root

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/amora/amoractl/internal/build"
	"github.com/amora/amoractl/internal/cmd"
	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/cmd/root/verbs/api"
	"github.com/amora/amoractl/internal/cmd/root/verbs/create"
	"github.com/amora/amoractl/internal/cmd/root/verbs/get"
	"github.com/amora/amoractl/internal/cmd/root/verbs/legal"
	"github.com/amora/amoractl/internal/cmd/root/verbs/list"
	"github.com/amora/amoractl/internal/cmd/root/verbs/patch"
	"github.com/amora/amoractl/internal/cmd/root/verbs/serve"
	"github.com/amora/amoractl/internal/cmd/root/verbs/update"
	"github.com/amora/amoractl/internal/cmd/root/verbs/view"
	"github.com/amora/amoractl/internal/cmd/root/version"
	"github.com/amora/amoractl/internal/config"
	"github.com/amora/amoractl/internal/iostreams"
	"github.com/amora/amoractl/internal/log"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/profile"
	"github.com/amora/amoractl/internal/theme"
	"github.com/amora/amoractl/internal/util"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	rootLong = normalizers.LongDesc(i18n.T("root.rootLong", `
  amoractl is the admin command line tool of the Amora dating app.

  It manages subscription plans, reviews identity verification requests
  and serves the public legal pages.`))

	rootShort = i18n.T("root/rootShort", fmt.Sprintf("%s administers Amora", meta.CLIName))

	rootCmd *cobra.Command

	// Stores the global runtime value for the Configuration file path,
	configFilePath = config.ExpandDefaultConfigFilePath()
	currProfile    = config.DefaultProfile

	currConfig   *config.ProfiledConfig
	streams      *iostreams.IOStreams
	pMgr         profile.Manager
	logger       *slog.Logger
	closeLog     = func() error { return nil }
	outputFormat = cmd.NewEnum(common.OutputFormatNames(), common.DefaultOutputFormat)
	logLevel     = cmd.NewEnum(common.LogLevelNames(), common.DefaultLogLevel)
	colorMode    = cmd.NewEnum(common.ColorModeNames(), common.DefaultColorMode)
	layoutMode   = cmd.NewEnum(common.LayoutNames(), common.DefaultLayoutMode)

	buildInfo *build.Info
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           meta.CLIName,
		Short:         rootShort,
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			ctx := context.WithValue(cmd.Context(), config.ConfigKey, config.Hook(currConfig))
			ctx = context.WithValue(ctx, iostreams.StreamsKey, streams)
			ctx = context.WithValue(ctx, profile.ProfileManagerKey, pMgr)
			ctx = context.WithValue(ctx, log.LoggerKey, logger)
			ctx = context.WithValue(ctx, build.InfoKey, buildInfo)
			cmd.SetContext(ctx)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return closeLog()
		},
	}

	// parses all flags not just the target command
	rootCmd.TraverseChildren = true

	rootCmd.PersistentFlags().StringVar(&configFilePath, common.ConfigFilePathFlagName,
		config.ExpandDefaultConfigFilePath(),
		i18n.T("root."+common.ConfigFilePathFlagName, "Path to the configuration file to load."))

	rootCmd.PersistentFlags().StringVarP(&currProfile, common.ProfileFlagName, common.ProfileFlagShort,
		config.DefaultProfile,
		fmt.Sprintf("Specify the profile to use for this command. Also read from %s_PROFILE.",
			strings.ToUpper(meta.CLIName)))

	rootCmd.PersistentFlags().VarP(outputFormat, common.OutputFlagName, common.OutputFlagShort,
		fmt.Sprintf(`Configures the output format.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.OutputConfigPath, strings.Join(outputFormat.Allowed, "|")))

	rootCmd.PersistentFlags().Var(logLevel, common.LogLevelFlagName,
		fmt.Sprintf(`Configures the logging level. Execution logs are written to the log file.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.LogLevelConfigPath, strings.Join(logLevel.Allowed, "|")))

	rootCmd.PersistentFlags().String(common.LogFileFlagName, "",
		fmt.Sprintf(`Write execution logs to the specified file.
- Config path: [ %s ]`,
			common.LogFileConfigPath))

	rootCmd.PersistentFlags().Var(colorMode, common.ColorFlagName,
		fmt.Sprintf(`Controls colorized text output.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.ColorConfigPath, strings.Join(colorMode.Allowed, "|")))

	rootCmd.PersistentFlags().Var(layoutMode, common.LayoutFlagName,
		fmt.Sprintf(`Controls how record lists are laid out in text output. auto picks
stacked cards on terminals narrower than 80 columns.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.LayoutConfigPath, strings.Join(layoutMode.Allowed, "|")))

	rootCmd.PersistentFlags().String(common.ColorThemeFlagName, "",
		fmt.Sprintf(`Color theme of text output. See '%s list themes'.
- Config path: [ %s ]`,
			meta.CLIName, common.ColorThemeConfigPath))

	return rootCmd
}

// addCommands adds the root subcommands to the command.
func addCommands() error {
	rootCmd.AddCommand(version.NewVersionCmd())

	for _, newCmd := range []func() (*cobra.Command, error){
		list.NewListCmd,
		get.NewGetCmd,
		view.NewViewCmd,
		create.NewCreateCmd,
		update.NewUpdateCmd,
		patch.NewPatchCmd,
		api.NewAPICmd,
		serve.NewServeCmd,
		legal.NewLegalCmd,
	} {
		c, e := newCmd()
		if e != nil {
			return e
		}
		rootCmd.AddCommand(c)
	}

	return nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd = newRootCmd()
	err := addCommands()
	util.CheckError(err)

	// Because the profile is not part of the configuration, we can't use viper
	// to read it following it's built in priorities.  So here we look for a well known
	// profile variable and set our package level variable if it's set before
	// continuing to process the command run.  This creates a ENV_VAR < CLI_FLAG priority
	profileEnvVar, found := os.LookupEnv(fmt.Sprintf("%s_PROFILE", strings.ToUpper(meta.CLIName)))
	if found {
		currProfile = profileEnvVar
	}
}

func initConfig() {
	cfg, e1 := config.GetConfig(configFilePath, currProfile, config.ExpandDefaultConfigFilePath())
	util.CheckError(e1)
	currConfig = cfg

	pMgr = profile.NewManager(cfg.Viper)

	for flagName, path := range map[string]string{
		common.OutputFlagName:     common.OutputConfigPath,
		common.LogLevelFlagName:   common.LogLevelConfigPath,
		common.LogFileFlagName:    common.LogFileConfigPath,
		common.ColorFlagName:      common.ColorConfigPath,
		common.LayoutFlagName:     common.LayoutConfigPath,
		common.ColorThemeFlagName: common.ColorThemeConfigPath,
	} {
		util.CheckError(cfg.BindFlag(path, rootCmd.PersistentFlags().Lookup(flagName)))
	}

	l, closer, e2 := log.New(log.Options{
		Level:   cfg.GetString(common.LogLevelConfigPath),
		LogFile: cfg.GetString(common.LogFileConfigPath),
		ErrOut:  streams.ErrOut,
	})
	util.CheckError(e2)
	logger, closeLog = l, closer

	util.CheckError(theme.SetCurrent(cfg.GetString(common.ColorThemeConfigPath)))
	if mode, err := common.ColorModeStringToIota(cfg.GetString(common.ColorConfigPath)); err == nil &&
		mode == common.ColorModeNever {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger.Debug("configuration loaded",
		slog.String("path", cfg.GetPath()),
		slog.String("profile", cfg.GetProfile()))
}

// Execute runs the command tree. Execution errors go through the logger,
// which mirrors them on ErrOut. Any error ends the process with exit code 1.
func Execute(ctx context.Context, s *iostreams.IOStreams, bi *build.Info) {
	buildInfo = bi
	cobra.EnableTraverseRunHooks = true
	streams = s
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	var executionError *cmd.ExecutionError
	if errors.As(err, &executionError) && logger != nil {
		attrs := append([]any{slog.String("error", err.Error())}, executionError.Attrs...)
		logger.Error(executionError.Msg, attrs...)
	} else {
		fmt.Fprintf(s.ErrOut, "Error: %s\nRun '%s --help' for usage.\n", err, meta.CLIName)
	}
	_ = closeLog()
	os.Exit(1)
}
