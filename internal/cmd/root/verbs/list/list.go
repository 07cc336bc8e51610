package list

import (
	"context"
	"fmt"

	"github.com/amora/amoractl/internal/cmd/root/resources/subscription"
	"github.com/amora/amoractl/internal/cmd/root/resources/verification"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

const (
	Verb = verbs.List
)

var (
	listUse = Verb.String()

	listShort = i18n.T("root.verbs.list.listShort", "Retrieve object lists")

	listLong = normalizers.LongDesc(i18n.T("root.verbs.list.listLong",
		`Use list to retrieve a list of objects.

Further sub-commands determine which resource is listed. Text output is a grid
on wide terminals and stacked cards on narrow ones. Output can be formatted in
multiple ways to aid in further processing.`))

	listExamples = normalizers.Examples(i18n.T("root.verbs.list.listExamples",
		fmt.Sprintf(`
		# Retrieve subscription plans
		%[1]s list subscriptions
		# Retrieve pending verification requests
		%[1]s list verifications --status pending
		# Retrieve the available color themes
		%[1]s list themes
		# Show the profiles of the config file
		%[1]s list profiles
		`, meta.CLIName)))
)

func NewListCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     listUse,
		Short:   listShort,
		Long:    listLong,
		Example: listExamples,
		Aliases: []string{"ls", "l"},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(context.WithValue(cmd.Context(), verbs.Verb, Verb))
		},
	}

	c, e := subscription.NewSubscriptionCmd(Verb)
	if e != nil {
		return nil, e
	}
	cmd.AddCommand(c)

	c, e = verification.NewVerificationCmd(Verb)
	if e != nil {
		return nil, e
	}
	cmd.AddCommand(c)

	cmd.AddCommand(newThemesCmd())
	cmd.AddCommand(newProfilesCmd())

	return cmd, nil
}
