package list

import (
	"strings"

	"github.com/amora/amoractl/internal/cmd"
	cmdcommon "github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/cmd/output/tableview"
	"github.com/amora/amoractl/internal/config"
	"github.com/amora/amoractl/internal/theme"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

type themeRecord struct {
	ID          string `json:"id"           yaml:"id"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Active      bool   `json:"active"       yaml:"active"`
	Accent      string `json:"accent"       yaml:"accent"`
	Success     string `json:"success"      yaml:"success"`
	Danger      string `json:"danger"       yaml:"danger"`
}

func (t themeRecord) RecordID() string {
	return t.ID
}

var themeColumns = []tableview.Column[themeRecord]{
	{
		Header: "ID",
		Accessor: tableview.Compute(func(t themeRecord) string {
			if t.Active {
				return "*" + t.ID
			}
			return t.ID
		}),
	},
	{Header: "NAME", Accessor: tableview.Field[themeRecord]("display_name")},
	{Accessor: tableview.Field[themeRecord]("accent"), ClassName: "accent"},
	{Accessor: tableview.Field[themeRecord]("success"), ClassName: "success"},
	{Accessor: tableview.Field[themeRecord]("danger"), ClassName: "danger"},
}

func newThemesCmd() *cobra.Command {
	themesCmd := &cobra.Command{
		Use:     "themes",
		Aliases: []string{"theme"},
		Short:   "List available color themes",
		Long: normalizers.LongDesc(`Display all registered color themes and a sample
of their palette. The active theme is marked with *.`),
		RunE: func(c *cobra.Command, args []string) error {
			helper := cmd.BuildHelper(c, args)
			return runListThemes(helper)
		},
	}

	return themesCmd
}

func runListThemes(helper cmd.Helper) error {
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}

	printer, err := cli.Format(outType.String(), helper.GetStreams().Out)
	if err != nil {
		return err
	}
	defer printer.Flush()

	records := buildThemeRecords(activeThemeName(cfg))
	return tableview.RenderForFormat(helper, false, outType, printer, records, themeColumns, records)
}

func activeThemeName(cfg config.Hook) string {
	name := strings.ToLower(strings.TrimSpace(cfg.GetString(cmdcommon.ColorThemeConfigPath)))
	if name == "" {
		name = cmdcommon.DefaultColorTheme
	}
	return name
}

func buildThemeRecords(activeName string) []themeRecord {
	ids := theme.Available()
	records := make([]themeRecord, 0, len(ids))
	for _, id := range ids {
		pal, ok := theme.Get(id)
		if !ok {
			continue
		}
		records = append(records, themeRecord{
			ID:          pal.Name,
			DisplayName: pal.DisplayName,
			Active:      pal.Name == activeName,
			Accent:      pal.Color(theme.ColorAccent).Light,
			Success:     pal.Color(theme.ColorSuccess).Light,
			Danger:      pal.Color(theme.ColorDanger).Light,
		})
	}
	return records
}
