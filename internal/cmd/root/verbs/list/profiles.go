package list

import (
	"fmt"

	"github.com/amora/amoractl/internal/cmd"
	cmdcommon "github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/cmd/output/tableview"
	"github.com/amora/amoractl/internal/profile"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

type profileRecord struct {
	Name    string `json:"name"     yaml:"name"`
	Active  bool   `json:"active"   yaml:"active"`
	BaseURL string `json:"base_url" yaml:"base_url"`
	Output  string `json:"output"   yaml:"output"`
}

func (p profileRecord) RecordID() string {
	return p.Name
}

var profileColumns = []tableview.Column[profileRecord]{
	{
		Header: "NAME",
		Accessor: tableview.Compute(func(p profileRecord) string {
			if p.Active {
				return "*" + p.Name
			}
			return p.Name
		}),
	},
	{Header: "BASE URL", Accessor: tableview.Field[profileRecord]("base_url")},
	{Accessor: tableview.Field[profileRecord]("output")},
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "List the profiles of the config file",
		Long: normalizers.LongDesc(`Display every profile defined in the config file with
the backend it talks to. The active profile is marked with *.`),
		RunE: func(c *cobra.Command, args []string) error {
			return runListProfiles(cmd.BuildHelper(c, args))
		},
	}
}

func runListProfiles(helper cmd.Helper) error {
	mgr, ok := helper.GetContext().Value(profile.ProfileManagerKey).(profile.Manager)
	if !ok || mgr == nil {
		return cmd.PrepareExecutionErrorMsg(helper, "no profile manager found in context")
	}
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}

	records, err := buildProfileRecords(mgr, cfg.GetProfile())
	if err != nil {
		return cmd.PrepareExecutionErrorWithHelper(helper, "failed to read profiles", err)
	}

	printer, err := cli.Format(outType.String(), helper.GetStreams().Out)
	if err != nil {
		return err
	}
	defer printer.Flush()

	return tableview.RenderForFormat(helper, false, outType, printer, records, profileColumns, records)
}

func buildProfileRecords(mgr profile.Manager, active string) ([]profileRecord, error) {
	names := mgr.GetProfiles()
	records := make([]profileRecord, 0, len(names))
	for _, name := range names {
		values, err := mgr.GetProfile(name)
		if err != nil {
			return nil, err
		}
		rec := profileRecord{Name: name, Active: name == active}
		if backend, ok := values["backend"].(map[string]any); ok {
			rec.BaseURL = stringValue(backend["base-url"])
		}
		rec.Output = stringValue(values[cmdcommon.OutputConfigPath])
		records = append(records, rec)
	}
	return records, nil
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
