package create

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
	Verb = verbs.Create
)

var (
	createUse = Verb.String()

	createShort = i18n.T("root.verbs.create.createShort", "Create objects")

	createLong = normalizers.LongDesc(i18n.T("root.verbs.create.createLong",
		`Use create to create a new object.

Further sub-commands determine which resource is created.`))

	createExamples = normalizers.Examples(i18n.T("root.verbs.create.createExamples",
		fmt.Sprintf(`
		# Create a subscription plan
		%[1]s create subscription --name Gold --price 9.99
		`, meta.CLIName)))
)

func NewCreateCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     createUse,
		Short:   createShort,
		Long:    createLong,
		Example: createExamples,
		Aliases: []string{"c", "C"},
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
