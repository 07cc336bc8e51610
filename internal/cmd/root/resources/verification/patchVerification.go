package verification

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/cmd"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/query"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

var (
	patchVerificationShort = i18n.T("root.resources.verification.patchVerificationShort",
		"Approve or reject a verification request")
	patchVerificationLong = normalizers.LongDesc(i18n.T("root.resources.verification.patchVerificationLong",
		`Record the review decision of a verification request. Rejections require
a --reason, which is shared with the member.`))
	patchVerificationExample = normalizers.Examples(i18n.T("root.resources.verification.patchVerificationExamples",
		fmt.Sprintf(`
	# Approve a request
	%[1]s patch verification 6b1d3c0e-2f4a-4e8b-9c7d-5a3e1f0b2c4d --status approved
	# Reject a request without a confirmation prompt
	%[1]s patch verification 6b1d3c0e-2f4a-4e8b-9c7d-5a3e1f0b2c4d --status rejected --reason "document is blurry" --yes
	`, meta.CLIName)))
)

type patchVerificationCmd struct {
	*cobra.Command
}

func (c *patchVerificationCmd) review() (client.Review, error) {
	raw, _ := c.Flags().GetString(rescommon.StatusFlagName)
	reason, _ := c.Flags().GetString(rescommon.ReasonFlagName)
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "" {
		return client.Review{}, fmt.Errorf("--%s is required", rescommon.StatusFlagName)
	}
	if !slices.Contains(client.VerificationStatuses, status) {
		msg := fmt.Sprintf("invalid status %q, must be one of %s",
			raw, strings.Join(client.VerificationStatuses, ", "))
		if s, ok := query.Suggest(status, client.VerificationStatuses); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		return client.Review{}, errors.New(msg)
	}
	review := client.Review{
		Status: client.VerificationStatus(status),
		Reason: strings.TrimSpace(reason),
	}
	return review, review.Validate()
}

func (c *patchVerificationCmd) runE(cobraCmd *cobra.Command, args []string) error {
	helper := cmd.BuildHelper(cobraCmd, args)
	review, err := c.review()
	if err != nil {
		return &cmd.ConfigurationError{Err: err}
	}
	id := helper.GetArgs()[0]

	details := []string{fmt.Sprintf("id: %s", id)}
	if review.Reason != "" {
		details = append(details, fmt.Sprintf("reason: %s", review.Reason))
	}
	if err := cmd.Confirm(helper, fmt.Sprintf("mark verification request %s as %s", id, review.Status),
		details...); err != nil {
		return err
	}

	backend, logger, err := rescommon.Backend(helper)
	if err != nil {
		return err
	}
	out := backend.GetVerificationAPI().ReviewVerificationRequest(helper.GetContext(), id, review)
	logger.Info("verification review",
		slog.String("id", id),
		slog.String("status", string(review.Status)),
		slog.Bool("succeeded", out.Succeeded))

	return rescommon.ReportOutcome(helper, out, map[string]any{
		"id":      id,
		"status":  string(review.Status),
		"message": out.Message,
	})
}

func newPatchVerificationCmd(baseCmd *cobra.Command) *patchVerificationCmd {
	rv := patchVerificationCmd{
		Command: baseCmd,
	}

	baseCmd.Flags().String(rescommon.StatusFlagName, "",
		fmt.Sprintf("Review decision.\n- Allowed    : [ %s ]", strings.Join(client.VerificationStatuses, "|")))
	baseCmd.Flags().String(rescommon.ReasonFlagName, "",
		"Reason shared with the member. Required when rejecting.")
	rescommon.AddAutoApproveFlag(baseCmd)

	baseCmd.Use = CommandName + " <id>"
	baseCmd.Args = verbs.ExactIDArg
	baseCmd.Short = patchVerificationShort
	baseCmd.Long = patchVerificationLong
	baseCmd.Example = patchVerificationExample
	baseCmd.RunE = rv.runE

	return &rv
}
