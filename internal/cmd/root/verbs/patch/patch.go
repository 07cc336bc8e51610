package patch

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
	Verb = verbs.Patch
)

var (
	patchUse = Verb.String()

	patchShort = i18n.T("root.verbs.patch.patchShort", "Change the status of objects")

	patchLong = normalizers.LongDesc(i18n.T("root.verbs.patch.patchLong",
		`Use patch to change the status of an object. Status changes are confirmed
before they are sent unless --yes is given.`))

	patchExamples = normalizers.Examples(i18n.T("root.verbs.patch.patchExamples",
		fmt.Sprintf(`
        # Deactivate a subscription plan
        %[1]s patch subscription Gold --status inactive

        # Reject a verification request
        %[1]s patch verification 6b1d3c0e-2f4a-4e8b-9c7d-5a3e1f0b2c4d --status rejected --reason "expired id"
        `, meta.CLIName)))
)

func NewPatchCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     patchUse,
		Short:   patchShort,
		Long:    patchLong,
		Example: patchExamples,
		Aliases: []string{"p"},
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
