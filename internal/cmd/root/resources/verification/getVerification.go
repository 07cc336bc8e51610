package verification

import (
	"fmt"

	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/cmd"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

var (
	getVerificationsShort = i18n.T("root.resources.verification.getVerificationsShort",
		"List or get verification requests")
	getVerificationsExample = normalizers.Examples(i18n.T("root.resources.verification.getVerificationsExamples",
		fmt.Sprintf(`
	# List all verification requests
	%[1]s list verifications
	# Find the requests of a member by name or email
	%[1]s list verifications --search ann@example.com
	# Get one request
	%[1]s get verification 6b1d3c0e-2f4a-4e8b-9c7d-5a3e1f0b2c4d -o yaml
	`, meta.CLIName)))

	viewVerificationsShort = i18n.T("root.resources.verification.viewVerificationsShort",
		"Work through verification requests interactively")
	viewVerificationsLong = normalizers.LongDesc(i18n.T("root.resources.verification.viewVerificationsLong",
		`Open the interactive verification queue. Press enter on a request to approve
it, / to search, s to cycle the status filter and ? for help.`))
)

type getVerificationCmd struct {
	*cobra.Command
	verb        verbs.VerbValue
	interactive bool
}

func (c *getVerificationCmd) validate(helper cmd.Helper) error {
	maxArgs := 1
	if c.verb == verbs.List || c.interactive {
		maxArgs = 0
	}
	if len(helper.GetArgs()) > maxArgs {
		return &cmd.ConfigurationError{
			Err: fmt.Errorf("too many arguments. %s verifications accepts at most %d argument(s) (id)",
				c.verb, maxArgs),
		}
	}
	return nil
}

func (c *getVerificationCmd) runE(cobraCmd *cobra.Command, args []string) error {
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
	req, err := backend.GetVerificationAPI().GetVerificationRequest(helper.GetContext(), helper.GetArgs()[0])
	if err != nil {
		return rescommon.FetchError(helper, err)
	}
	return rescommon.RenderRecord(helper, *req, Columns())
}

func newGetVerificationCmd(verb verbs.VerbValue, baseCmd *cobra.Command) *getVerificationCmd {
	rv := getVerificationCmd{
		Command: baseCmd,
		verb:    verb,
	}

	rescommon.AddFilterFlags(baseCmd, client.VerificationStatuses)
	rescommon.AddInteractiveFlag(baseCmd)

	baseCmd.Short = getVerificationsShort
	baseCmd.Example = getVerificationsExample
	baseCmd.RunE = rv.runE

	return &rv
}

func newViewVerificationCmd(baseCmd *cobra.Command) *getVerificationCmd {
	rv := getVerificationCmd{
		Command:     baseCmd,
		verb:        verbs.View,
		interactive: true,
	}

	rescommon.AddFilterFlags(baseCmd, client.VerificationStatuses)

	baseCmd.Short = viewVerificationsShort
	baseCmd.Long = viewVerificationsLong
	baseCmd.RunE = rv.runE

	return &rv
}
