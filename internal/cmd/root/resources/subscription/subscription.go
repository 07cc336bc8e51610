package subscription

import (
	"context"
	"fmt"

	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/backend/helpers"
	"github.com/amora/amoractl/internal/cmd/output/tableview"
	"github.com/amora/amoractl/internal/cmd/root/resources"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/query"
	"github.com/amora/amoractl/internal/util"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

const (
	Resource    = resources.ResourceValue("subscriptions")
	CommandName = "subscription"
)

var (
	subscriptionUse   = CommandName
	subscriptionShort = i18n.T("root.resources.subscription.subscriptionShort",
		"Manage subscription plans")
	subscriptionLong = normalizers.LongDesc(i18n.T("root.resources.subscription.subscriptionLong",
		`The subscription command works with the subscription plans offered to members.`))
	subscriptionExample = normalizers.Examples(i18n.T("root.resources.subscription.subscriptionExamples",
		fmt.Sprintf(`
	# List all subscription plans
	%[1]s list subscriptions
	# Get a plan by id or name
	%[1]s get subscription gold
	# Deactivate a plan
	%[1]s patch subscription 1f0c2a7e-9a53-4a3b-8f0e-0c9d1b5a6e21 --status inactive
	`, meta.CLIName)))

	// Statuses is the status enumeration offered by --status and the
	// interactive status filter.
	Statuses = query.Statuses(client.PlanStatuses)
)

// Columns are the text output columns of a subscription plan.
func Columns() []tableview.Column[client.SubscriptionPlan] {
	return []tableview.Column[client.SubscriptionPlan]{
		{
			Header: "ID",
			Accessor: tableview.Compute(func(p client.SubscriptionPlan) string {
				return util.AbbreviateUUID(p.ID)
			}),
			ClassName: "id",
		},
		{Accessor: tableview.Field[client.SubscriptionPlan]("name")},
		{
			Header: "PRICE",
			Accessor: tableview.Derive(func(p client.SubscriptionPlan) (string, error) {
				return p.Price(), nil
			}),
		},
		{Accessor: tableview.Field[client.SubscriptionPlan]("interval")},
		{Accessor: tableview.Field[client.SubscriptionPlan]("status"), ClassName: tableview.StatusClass},
		{Header: "UPDATED", Accessor: tableview.Field[client.SubscriptionPlan]("updated_at")},
	}
}

// Spec designates the searchable text and the status of a plan.
func Spec() query.Spec[client.SubscriptionPlan] {
	return query.Spec[client.SubscriptionPlan]{
		Text: func(p client.SubscriptionPlan) []string {
			return []string{p.Name, p.Description}
		},
		Status: func(p client.SubscriptionPlan) string {
			return string(p.Status)
		},
	}
}

func listing() rescommon.Listing[client.SubscriptionPlan] {
	return rescommon.Listing[client.SubscriptionPlan]{
		Title:    "Subscription plans",
		Columns:  Columns(),
		Spec:     Spec(),
		Statuses: Statuses,
		Fetch: func(ctx context.Context, backend helpers.BackendAPI) ([]client.SubscriptionPlan, error) {
			return backend.GetSubscriptionAPI().ListSubscriptionPlans(ctx)
		},
		Activate: activateToggle,
	}
}

// activateToggle flips a plan between active and inactive. Archived plans
// are reactivated.
func activateToggle(backend helpers.BackendAPI) tableview.ActivateFunc[client.SubscriptionPlan] {
	return func(ctx context.Context, p client.SubscriptionPlan) (string, error) {
		return backend.GetSubscriptionAPI().SetSubscriptionPlanStatus(ctx, p.ID, p.ToggledStatus()).Result()
	}
}

func NewSubscriptionCmd(verb verbs.VerbValue) (*cobra.Command, error) {
	baseCmd := cobra.Command{
		Use:               subscriptionUse,
		Short:             subscriptionShort,
		Long:              subscriptionLong,
		Example:           subscriptionExample,
		Aliases:           []string{"subscriptions", "subs", "sub", "plans", "plan"},
		PersistentPreRunE: rescommon.PreRunE(Resource),
	}

	rescommon.AddBackendFlags(verb, &baseCmd)

	switch verb {
	case verbs.Get, verbs.List:
		return newGetSubscriptionCmd(verb, &baseCmd).Command, nil
	case verbs.View:
		return newViewSubscriptionCmd(&baseCmd).Command, nil
	case verbs.Create:
		return newCreateSubscriptionCmd(&baseCmd).Command, nil
	case verbs.Update:
		return newUpdateSubscriptionCmd(&baseCmd).Command, nil
	case verbs.Patch:
		return newPatchSubscriptionCmd(&baseCmd).Command, nil
	}

	return nil, fmt.Errorf("unsupported verb %s", verb)
}
