package legal

import (
	"context"
	"fmt"
	"strings"

	"github.com/amora/amoractl/internal/cmd"
	cmdcommon "github.com/amora/amoractl/internal/cmd/common"
	jqoutput "github.com/amora/amoractl/internal/cmd/output/jq"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/legal"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

const (
	Verb = verbs.Legal

	widthFlagName = "width"
)

var (
	legalUse = fmt.Sprintf("%s <%s>", Verb.String(), strings.Join(legal.Slugs(), "|"))

	legalShort = i18n.T("root.verbs.legal.legalShort", "Print the privacy policy or the terms of service")

	legalLong = normalizers.LongDesc(i18n.T("root.verbs.legal.legalLong",
		`Print one of the legal documents published by the app.

Text output renders the Markdown for the terminal. JSON and YAML output carry
the Markdown source.`))

	legalExamples = normalizers.Examples(i18n.T("root.verbs.legal.legalExamples",
		fmt.Sprintf(`
	# Read the privacy policy
	%[1]s legal privacy

	# Export the terms of service source
	%[1]s legal terms -o json`, meta.CLIName)))
)

type documentRecord struct {
	Slug     string `json:"slug" yaml:"slug"`
	Title    string `json:"title" yaml:"title"`
	Markdown string `json:"markdown" yaml:"markdown"`
}

func NewLegalCmd() (*cobra.Command, error) {
	c := &cobra.Command{
		Use:       legalUse,
		Short:     legalShort,
		Long:      legalLong,
		Example:   legalExamples,
		ValidArgs: legal.Slugs(),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		PersistentPreRun: func(c *cobra.Command, _ []string) {
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			c.SetContext(context.WithValue(ctx, verbs.Verb, Verb))
		},
		RunE: func(c *cobra.Command, args []string) error {
			return run(cmd.BuildHelper(c, args))
		},
	}
	c.Flags().Int(widthFlagName, 0, "Wrap text output at this many columns. Zero keeps the renderer default.")
	return c, nil
}

func run(helper cmd.Helper) error {
	doc, err := legal.Get(helper.GetArgs()[0])
	if err != nil {
		return &cmd.ConfigurationError{Err: err}
	}

	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	streams := helper.GetStreams()

	if outType != cmdcommon.TEXT {
		printer, err := cli.Format(outType.String(), streams.Out)
		if err != nil {
			return err
		}
		defer printer.Flush()
		printer.Print(documentRecord{Slug: doc.Slug, Title: doc.Title, Markdown: doc.Markdown})
		return nil
	}

	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	mode, err := cmdcommon.ColorModeStringToIota(strings.ToLower(strings.TrimSpace(cfg.GetString(cmdcommon.ColorConfigPath))))
	if err != nil {
		return &cmd.ConfigurationError{Err: err}
	}
	width, _ := helper.GetCmd().Flags().GetInt(widthFlagName)
	if width < 0 {
		return &cmd.ConfigurationError{Err: fmt.Errorf("%s cannot be negative", widthFlagName)}
	}

	rendered := doc.Terminal(legal.RenderOptions{
		NoColor: !jqoutput.ShouldUseColor(mode, streams.Out),
		Width:   width,
	})
	_, err = fmt.Fprint(streams.Out, rendered)
	return err
}
