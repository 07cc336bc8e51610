package get

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
	Verb = verbs.Get
)

var (
	getUse = Verb.String()

	getShort = i18n.T("root.verbs.get.getShort", "Retrieve objects")

	getLong = normalizers.LongDesc(i18n.T("root.verbs.get.getLong",
		`Use get to retrieve an object or list of objects.

Further sub-commands determine which resource is retrieved. The command
returns one object when an id is given and a list otherwise.
Output can be formatted in multiple ways to aid in further processing.`))

	getExamples = normalizers.Examples(i18n.T("root.verbs.get.getExamples",
		fmt.Sprintf(`
		# Retrieve all subscription plans
		%[1]s get subscriptions
		# Retrieve one subscription plan as JSON
		%[1]s get subscription gold -o json
		# Retrieve one verification request
		%[1]s get verification 6b1d3c0e-2f4a-4e8b-9c7d-5a3e1f0b2c4d
		`, meta.CLIName)))
)

func NewGetCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     getUse,
		Short:   getShort,
		Long:    getLong,
		Example: getExamples,
		Aliases: []string{"g", "G"},
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
