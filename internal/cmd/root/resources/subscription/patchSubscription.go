package subscription

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/cmd"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/query"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

var (
	patchSubscriptionShort = i18n.T("root.resources.subscription.patchSubscriptionShort",
		"Change the status of a subscription plan")
	patchSubscriptionLong = normalizers.LongDesc(i18n.T("root.resources.subscription.patchSubscriptionLong",
		`Activate, deactivate or archive a subscription plan. The change is
confirmed interactively unless --yes is given.`))
	patchSubscriptionExample = normalizers.Examples(i18n.T("root.resources.subscription.patchSubscriptionExamples",
		fmt.Sprintf(`
	# Deactivate a plan
	%[1]s patch subscription Gold --status inactive
	# Archive a plan without confirmation
	%[1]s patch subscription 1f0c2a7e-9a53-4a3b-8f0e-0c9d1b5a6e21 --status archived --yes
	`, meta.CLIName)))
)

type patchSubscriptionCmd struct {
	*cobra.Command
}

func (c *patchSubscriptionCmd) status() (client.PlanStatus, error) {
	raw, _ := c.Flags().GetString(rescommon.StatusFlagName)
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "" {
		return "", fmt.Errorf("--%s is required", rescommon.StatusFlagName)
	}
	if !slices.Contains(client.PlanStatuses, status) {
		msg := fmt.Sprintf("invalid status %q, must be one of %s",
			raw, strings.Join(client.PlanStatuses, ", "))
		if s, ok := query.Suggest(status, client.PlanStatuses); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		return "", errors.New(msg)
	}
	return client.PlanStatus(status), nil
}

func (c *patchSubscriptionCmd) runE(cobraCmd *cobra.Command, args []string) error {
	helper := cmd.BuildHelper(cobraCmd, args)
	status, err := c.status()
	if err != nil {
		return &cmd.ConfigurationError{Err: err}
	}

	backend, logger, err := rescommon.Backend(helper)
	if err != nil {
		return err
	}
	plan, err := findPlan(helper, backend, helper.GetArgs()[0])
	if err != nil {
		return err
	}

	if err := cmd.Confirm(helper,
		fmt.Sprintf("set subscription plan %q to %s", plan.Name, status),
		fmt.Sprintf("id: %s", plan.ID),
		fmt.Sprintf("current status: %s", plan.Status),
	); err != nil {
		return err
	}

	out := backend.GetSubscriptionAPI().SetSubscriptionPlanStatus(helper.GetContext(), plan.ID, status)
	logger.Info("subscription plan status change",
		slog.String("id", plan.ID),
		slog.String("status", string(status)),
		slog.Bool("succeeded", out.Succeeded))

	return rescommon.ReportOutcome(helper, out, map[string]any{
		"id":      plan.ID,
		"status":  string(status),
		"message": out.Message,
	})
}

func newPatchSubscriptionCmd(baseCmd *cobra.Command) *patchSubscriptionCmd {
	rv := patchSubscriptionCmd{
		Command: baseCmd,
	}

	baseCmd.Flags().String(rescommon.StatusFlagName, "",
		fmt.Sprintf("New plan status.\n- Allowed    : [ %s ]", strings.Join(client.PlanStatuses, "|")))
	rescommon.AddAutoApproveFlag(baseCmd)

	baseCmd.Use = CommandName + " <id|name>"
	baseCmd.Args = verbs.ExactIDArg
	baseCmd.Short = patchSubscriptionShort
	baseCmd.Long = patchSubscriptionLong
	baseCmd.Example = patchSubscriptionExample
	baseCmd.RunE = rv.runE

	return &rv
}
