package version

import (
	"fmt"
	"io"

	"github.com/amora/amoractl/internal/build"
	"github.com/amora/amoractl/internal/cmd"
	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

const (
	ShowCommitFlagName   = "show-commit"
	ShowCommitConfigPath = "version." + ShowCommitFlagName
)

var (
	versionUse   = "version"
	versionShort = i18n.T("root.version.versionShort",
		fmt.Sprintf("Print the %s version", meta.CLIName))
	versionLong = normalizers.LongDesc(i18n.T("root.version.versionLong",
		`The version command prints the version and other optional build information`))
	versionExample = normalizers.Examples(i18n.T("root.version.versionExamples",
		fmt.Sprintf(`
		# Print the simple version
		%[1]s version
		# Print the version and the git commit hash
		%[1]s version --show-commit
		`, meta.CLIName)))
)

// Build a new instance of the version command
func NewVersionCmd() *cobra.Command {
	rv := &cobra.Command{
		Use:     versionUse,
		Short:   versionShort,
		Long:    versionLong,
		Example: versionExample,
		PreRunE: bindFlags,
		RunE: func(c *cobra.Command, args []string) error {
			return run(cmd.BuildHelper(c, args))
		},
	}

	rv.Flags().Bool(ShowCommitFlagName, false,
		i18n.T(fmt.Sprintf("root.%s", ShowCommitConfigPath),
			fmt.Sprintf("True to show the git commit hash and build date.\n (config path = '%s')", ShowCommitConfigPath)))

	return rv
}

func bindFlags(c *cobra.Command, args []string) error {
	helper := cmd.BuildHelper(c, args)
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	return cfg.BindFlag(ShowCommitConfigPath, c.Flags().Lookup(ShowCommitFlagName))
}

func run(helper cmd.Helper) error {
	info, err := helper.GetBuildInfo()
	if err != nil {
		return err
	}
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}

	result := map[string]any{
		"version": info.Version,
	}
	if cfg.GetBool(ShowCommitConfigPath) {
		result["commit"] = info.Commit
		result["date"] = info.Date
	}

	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	if outType == common.TEXT {
		return printText(info, cfg.GetBool(ShowCommitConfigPath), helper.GetStreams().Out)
	}

	p, err := cli.Format(outType.String(), helper.GetStreams().Out)
	if err != nil {
		return err
	}
	defer p.Flush()
	p.Print(result)

	return nil
}

func printText(info *build.Info, showCommit bool, out io.Writer) error {
	if !showCommit {
		_, err := fmt.Fprintln(out, info.Version)
		return err
	}
	_, err := fmt.Fprintf(out, "%s (%s, %s)\n", info.Version, info.Commit, info.Date)
	return err
}
