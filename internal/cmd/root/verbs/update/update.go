package update

import (
	"context"
	"fmt"

	"github.com/amora/amoractl/internal/cmd/root/resources/subscription"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

const (
	Verb = verbs.Update
)

var (
	updateUse = Verb.String()

	updateShort = i18n.T("root.verbs.update.updateShort", "Update objects")

	updateLong = normalizers.LongDesc(i18n.T("root.verbs.update.updateLong",
		`Use update to change the attributes of an existing object.

Further sub-commands determine which resource is updated.`))

	updateExamples = normalizers.Examples(i18n.T("root.verbs.update.updateExamples",
		fmt.Sprintf(`
		# Change the price of a subscription plan
		%[1]s update subscription Gold --price 12.99
		`, meta.CLIName)))
)

func NewUpdateCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     updateUse,
		Short:   updateShort,
		Long:    updateLong,
		Example: updateExamples,
		Aliases: []string{"u"},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(context.WithValue(cmd.Context(), verbs.Verb, Verb))
		},
	}

	c, e := subscription.NewSubscriptionCmd(Verb)
	if e != nil {
		return nil, e
	}
	cmd.AddCommand(c)

	return cmd, nil
}
