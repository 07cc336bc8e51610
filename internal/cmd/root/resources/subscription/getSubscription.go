package subscription

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/backend/helpers"
	"github.com/amora/amoractl/internal/cmd"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

var (
	getSubscriptionsShort = i18n.T("root.resources.subscription.getSubscriptionsShort",
		"List or get subscription plans")
	getSubscriptionsLong = i18n.T("root.resources.subscription.getSubscriptionsLong",
		`Use the get or list verb with the subscription command to query subscription plans.
Without an argument every plan is listed, narrowed by --search and --status.`)
	getSubscriptionsExample = normalizers.Examples(i18n.T("root.resources.subscription.getSubscriptionsExamples",
		fmt.Sprintf(`
	# List all the subscription plans
	%[1]s list subscriptions
	# List the active plans whose name or description mentions "gold"
	%[1]s list subscriptions --status active --search gold
	# Get a plan by id
	%[1]s get subscription 1f0c2a7e-9a53-4a3b-8f0e-0c9d1b5a6e21
	# Get a plan by name
	%[1]s get subscription Gold
	# Browse the plans interactively
	%[1]s list subs -i
	`, meta.CLIName)))

	viewSubscriptionsShort = i18n.T("root.resources.subscription.viewSubscriptionsShort",
		"Browse subscription plans interactively")
	viewSubscriptionsLong = normalizers.LongDesc(i18n.T("root.resources.subscription.viewSubscriptionsLong",
		`Open the interactive subscription plan view. Press enter on a plan to toggle it
between active and inactive, / to search, s to cycle the status filter and ? for help.`))
)

type getSubscriptionCmd struct {
	*cobra.Command
	verb        verbs.VerbValue
	interactive bool
}

func (c *getSubscriptionCmd) validate(helper cmd.Helper) error {
	maxArgs := 1
	if c.verb == verbs.List || c.interactive {
		maxArgs = 0
	}
	if len(helper.GetArgs()) > maxArgs {
		return &cmd.ConfigurationError{
			Err: fmt.Errorf("too many arguments. %s subscriptions accepts at most %d argument(s) (id or name)",
				c.verb, maxArgs),
		}
	}
	return nil
}

func (c *getSubscriptionCmd) runE(cobraCmd *cobra.Command, args []string) error {
	helper := cmd.BuildHelper(cobraCmd, args)
	if e := c.validate(helper); e != nil {
		return e
	}

	if len(helper.GetArgs()) == 0 {
		return listing().Run(helper, c.interactive)
	}

	backend, _, err := rescommon.Backend(helper)
	if err != nil {
		return err
	}
	plan, err := findPlan(helper, backend, helper.GetArgs()[0])
	if err != nil {
		return err
	}
	return rescommon.RenderRecord(helper, *plan, Columns())
}

// findPlan gets a plan by id. Identifiers that are not UUIDs and are not
// found are retried as a case-insensitive name.
func findPlan(helper cmd.Helper, backend helpers.BackendAPI, ref string) (*client.SubscriptionPlan, error) {
	ctx := helper.GetContext()
	api := backend.GetSubscriptionAPI()

	plan, err := api.GetSubscriptionPlan(ctx, ref)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, client.ErrNotFound) || util.IsValidUUID(ref) {
		return nil, rescommon.FetchError(helper, err)
	}

	plans, listErr := api.ListSubscriptionPlans(ctx)
	if listErr != nil {
		return nil, rescommon.FetchError(helper, listErr)
	}
	var matches []client.SubscriptionPlan
	for _, p := range plans {
		if strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(ref)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, rescommon.FetchError(helper, err)
	case 1:
		return &matches[0], nil
	default:
		return nil, cmd.PrepareExecutionErrorMsg(helper,
			fmt.Sprintf("%d subscription plans are named %q, use the plan id instead", len(matches), ref))
	}
}

func newGetSubscriptionCmd(verb verbs.VerbValue, baseCmd *cobra.Command) *getSubscriptionCmd {
	rv := getSubscriptionCmd{
		Command: baseCmd,
		verb:    verb,
	}

	rescommon.AddFilterFlags(baseCmd, client.PlanStatuses)
	rescommon.AddInteractiveFlag(baseCmd)

	baseCmd.Short = getSubscriptionsShort
	baseCmd.Long = getSubscriptionsLong
	baseCmd.Example = getSubscriptionsExample
	baseCmd.RunE = rv.runE

	return &rv
}

func newViewSubscriptionCmd(baseCmd *cobra.Command) *getSubscriptionCmd {
	rv := getSubscriptionCmd{
		Command:     baseCmd,
		verb:        verbs.View,
		interactive: true,
	}

	rescommon.AddFilterFlags(baseCmd, client.PlanStatuses)

	baseCmd.Short = viewSubscriptionsShort
	baseCmd.Long = viewSubscriptionsLong
	baseCmd.RunE = rv.runE

	return &rv
}
