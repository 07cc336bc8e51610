package view

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
	Verb = verbs.View
)

var (
	viewUse = Verb.String()

	viewShort = i18n.T("root.verbs.view.viewShort", "Launch the interactive resource viewer")

	viewLong = normalizers.LongDesc(i18n.T("root.verbs.view.viewLong",
		`Open an interactive view into a resource collection. Rows can be searched,
filtered by status and activated with enter. On a terminal narrower than 80
columns records are shown as stacked cards.`))

	viewExamples = normalizers.Examples(i18n.T("root.verbs.view.viewExamples",
		fmt.Sprintf(`
		# Manage subscription plans
		%[1]s view subscriptions
		# Work through pending verification requests
		%[1]s view verifications --status pending
		`, meta.CLIName)))
)

// NewViewCmd creates the view command which opens the interactive viewer.
func NewViewCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     viewUse,
		Short:   viewShort,
		Long:    viewLong,
		Example: viewExamples,
		Aliases: []string{"v", "V"},
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

	return cmd, nil
}
