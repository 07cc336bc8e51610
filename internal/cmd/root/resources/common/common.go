package common

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amora/amoractl/internal/backend/helpers"
	cmdpkg "github.com/amora/amoractl/internal/cmd"
	cmdcommon "github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/cmd/root/resources"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/config"
	"github.com/spf13/cobra"
)

const (
	BaseURLFlagName  = "base-url"
	TokenFlagName    = "token" // #nosec G101
	PageSizeFlagName = "page-size"

	SearchFlagName = "search"
	StatusFlagName = "status"
	ReasonFlagName = "reason"
	FileFlagName   = "file"
	FileFlagShort  = "f"
)

// AddBackendFlags registers the connection flags every resource command
// accepts. List style verbs also get --page-size.
func AddBackendFlags(verb verbs.VerbValue, cmd *cobra.Command) {
	cmd.Flags().String(BaseURLFlagName, "",
		fmt.Sprintf(`Base URL of the Amora backend API.
- Config path: [ %s ]
- Default    : [ %s ]`,
			config.BackendBaseURLConfigPath, config.DefaultBackendBaseURL))

	cmd.Flags().String(TokenFlagName, "",
		fmt.Sprintf(`Admin API token sent as a bearer token.
- Config path: [ %s ]`,
			config.BackendTokenConfigPath))

	if verb == verbs.Get || verb == verbs.List || verb == verbs.View {
		cmd.Flags().Int(PageSizeFlagName, config.DefaultBackendPageSize,
			fmt.Sprintf(`Max number of records requested per list call.
- Config path: [ %s ]`,
				config.BackendPageSizeConfigPath))
	}
}

// AddAutoApproveFlag registers --yes on commands that change state.
func AddAutoApproveFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(cmdcommon.AutoApproveFlagName, false,
		"Skip the confirmation prompt and apply the change.")
}

// AddInteractiveFlag registers --interactive on list style commands.
func AddInteractiveFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP(cmdcommon.InteractiveFlagName, cmdcommon.InteractiveFlagShort, false,
		"Browse the records in an interactive view (terminal only).")
}

// AddFilterFlags registers --search and --status. statuses lists the values
// --status accepts besides "all".
func AddFilterFlags(cmd *cobra.Command, statuses []string) {
	cmd.Flags().String(SearchFlagName, "",
		"Only show records whose searchable fields contain this text (case insensitive).")
	cmd.Flags().String(StatusFlagName, "all",
		fmt.Sprintf(`Only show records with this status.
- Allowed    : [ all|%s ]`, strings.Join(statuses, "|")))
}

func bindFlags(c *cobra.Command, args []string) error {
	helper := cmdpkg.BuildHelper(c, args)
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}

	for flagName, path := range map[string]string{
		BaseURLFlagName:  config.BackendBaseURLConfigPath,
		TokenFlagName:    config.BackendTokenConfigPath,
		PageSizeFlagName: config.BackendPageSizeConfigPath,
	} {
		f := c.Flags().Lookup(flagName)
		if f == nil { // might not be present depending on verb
			continue
		}
		if err := cfg.BindFlag(path, f); err != nil {
			return err
		}
	}
	return nil
}

// PreRunE returns the pre-run hook of a resource command. It records the
// resource and the backend factory on the context and binds the connection
// flags to their config paths.
func PreRunE(resource resources.ResourceValue) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, args []string) error {
		ctx := c.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = context.WithValue(ctx, resources.Resource, resource)
		if _, ok := ctx.Value(helpers.BackendFactoryKey).(helpers.BackendFactory); !ok {
			ctx = context.WithValue(ctx, helpers.BackendFactoryKey, helpers.GetBackendFactory())
		}
		c.SetContext(ctx)
		return bindFlags(c, args)
	}
}

// Backend resolves the config, logger and backend client for helper.
func Backend(helper cmdpkg.Helper) (helpers.BackendAPI, *slog.Logger, error) {
	cfg, err := helper.GetConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := helper.GetLogger()
	if err != nil {
		return nil, nil, err
	}
	if cfg.GetIntOrElse(config.BackendPageSizeConfigPath, config.DefaultBackendPageSize) < 1 {
		return nil, nil, &cmdpkg.ConfigurationError{
			Err: fmt.Errorf("%s must be greater than 0", PageSizeFlagName),
		}
	}
	backend, err := helper.GetBackend(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return backend, logger, nil
}
