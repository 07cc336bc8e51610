package subscription

import (
	"fmt"
	"log/slog"

	"github.com/amora/amoractl/internal/cmd"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

var (
	updateSubscriptionShort = i18n.T("root.resources.subscription.updateSubscriptionShort",
		"Replace the attributes of a subscription plan")
	updateSubscriptionLong = normalizers.LongDesc(i18n.T("root.resources.subscription.updateSubscriptionLong",
		`Update a subscription plan. The current plan is read first, so only the
attributes given by flags or by the document change.`))
	updateSubscriptionExample = normalizers.Examples(i18n.T("root.resources.subscription.updateSubscriptionExamples",
		fmt.Sprintf(`
	# Raise the price of a plan
	%[1]s update subscription Gold --price 12.99
	# Apply a document to a plan
	%[1]s update subscription 1f0c2a7e-9a53-4a3b-8f0e-0c9d1b5a6e21 -f plan.yaml
	`, meta.CLIName)))
)

type updateSubscriptionCmd struct {
	*cobra.Command
}

func (c *updateSubscriptionCmd) runE(cobraCmd *cobra.Command, args []string) error {
	helper := cmd.BuildHelper(cobraCmd, args)

	backend, logger, err := rescommon.Backend(helper)
	if err != nil {
		return err
	}
	current, err := findPlan(helper, backend, helper.GetArgs()[0])
	if err != nil {
		return err
	}

	in, err := readPlanInput(cobraCmd, helper.GetStreams().In, inputFromPlan(*current))
	if err != nil {
		return &cmd.ConfigurationError{Err: err}
	}
	if err := in.Validate(); err != nil {
		return &cmd.ConfigurationError{Err: err}
	}

	plan, err := backend.GetSubscriptionAPI().UpdateSubscriptionPlan(helper.GetContext(), current.ID, in)
	if err != nil {
		return rescommon.FetchError(helper, err)
	}
	logger.Info("subscription plan updated", slog.String("id", plan.ID))

	return rescommon.RenderRecord(helper, *plan, Columns())
}

func newUpdateSubscriptionCmd(baseCmd *cobra.Command) *updateSubscriptionCmd {
	rv := updateSubscriptionCmd{
		Command: baseCmd,
	}

	addInputFlags(baseCmd)

	baseCmd.Use = CommandName + " <id|name>"
	baseCmd.Args = verbs.ExactIDArg
	baseCmd.Short = updateSubscriptionShort
	baseCmd.Long = updateSubscriptionLong
	baseCmd.Example = updateSubscriptionExample
	baseCmd.RunE = rv.runE

	return &rv
}
