package subscription

import (
	"fmt"
	"log/slog"

	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/cmd"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

var (
	createSubscriptionShort = i18n.T("root.resources.subscription.createSubscriptionShort",
		"Create a subscription plan")
	createSubscriptionLong = normalizers.LongDesc(i18n.T("root.resources.subscription.createSubscriptionLong",
		`Create a subscription plan from flags or from a YAML or JSON document.
Flags override the values read from the document.`))
	createSubscriptionExample = normalizers.Examples(i18n.T("root.resources.subscription.createSubscriptionExamples",
		fmt.Sprintf(`
	# Create a monthly plan
	%[1]s create subscription --name Gold --price 9.99 --currency USD --feature "unlimited likes"
	# Create a plan from a file
	%[1]s create subscription -f plan.yaml
	`, meta.CLIName)))
)

type createSubscriptionCmd struct {
	*cobra.Command
}

func (c *createSubscriptionCmd) validate(helper cmd.Helper) error {
	if len(helper.GetArgs()) > 0 {
		return &cmd.ConfigurationError{
			Err: fmt.Errorf("create subscription takes no arguments, use --name or --file"),
		}
	}
	return nil
}

func (c *createSubscriptionCmd) runE(cobraCmd *cobra.Command, args []string) error {
	helper := cmd.BuildHelper(cobraCmd, args)
	if e := c.validate(helper); e != nil {
		return e
	}

	in, err := readPlanInput(cobraCmd, helper.GetStreams().In, client.PlanInput{
		Currency: defaultCurrency,
		Interval: client.Monthly,
	})
	if err != nil {
		return &cmd.ConfigurationError{Err: err}
	}
	if err := in.Validate(); err != nil {
		return &cmd.ConfigurationError{Err: err}
	}

	backend, logger, err := rescommon.Backend(helper)
	if err != nil {
		return err
	}
	plan, err := backend.GetSubscriptionAPI().CreateSubscriptionPlan(helper.GetContext(), in)
	if err != nil {
		return rescommon.FetchError(helper, err)
	}
	logger.Info("subscription plan created", slog.String("id", plan.ID), slog.String("name", plan.Name))

	return rescommon.RenderRecord(helper, *plan, Columns())
}

func newCreateSubscriptionCmd(baseCmd *cobra.Command) *createSubscriptionCmd {
	rv := createSubscriptionCmd{
		Command: baseCmd,
	}

	addInputFlags(baseCmd)

	baseCmd.Short = createSubscriptionShort
	baseCmd.Long = createSubscriptionLong
	baseCmd.Example = createSubscriptionExample
	baseCmd.RunE = rv.runE

	return &rv
}
