package verification

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
	Resource    = resources.ResourceValue("verifications")
	CommandName = "verification"
)

var (
	verificationUse   = CommandName
	verificationShort = i18n.T("root.resources.verification.verificationShort",
		"Review member identity verification requests")
	verificationLong = normalizers.LongDesc(i18n.T("root.resources.verification.verificationLong",
		`The verification command works with the identity verification requests
members submit before they get a verified badge.`))
	verificationExample = normalizers.Examples(i18n.T("root.resources.verification.verificationExamples",
		fmt.Sprintf(`
	# List pending verification requests
	%[1]s list verifications --status pending
	# Approve a request
	%[1]s patch verification 6b1d3c0e-2f4a-4e8b-9c7d-5a3e1f0b2c4d --status approved
	# Work through the queue interactively
	%[1]s view verifications
	`, meta.CLIName)))

	Statuses = query.Statuses(client.VerificationStatuses)
)

// Columns are the text output columns of a verification request.
func Columns() []tableview.Column[client.VerificationRequest] {
	return []tableview.Column[client.VerificationRequest]{
		{
			Header: "ID",
			Accessor: tableview.Compute(func(v client.VerificationRequest) string {
				return util.AbbreviateUUID(v.ID)
			}),
			ClassName: "id",
		},
		{Header: "USER", Accessor: tableview.Field[client.VerificationRequest]("user_name")},
		{Accessor: tableview.Field[client.VerificationRequest]("email")},
		{Header: "DOCUMENT", Accessor: tableview.Field[client.VerificationRequest]("document_type")},
		{Header: "SUBMITTED", Accessor: tableview.Field[client.VerificationRequest]("submitted_at")},
		{Accessor: tableview.Field[client.VerificationRequest]("status"), ClassName: tableview.StatusClass},
	}
}

// Spec designates the searchable text and the status of a request.
func Spec() query.Spec[client.VerificationRequest] {
	return query.Spec[client.VerificationRequest]{
		Text: func(v client.VerificationRequest) []string {
			return []string{v.UserName, v.Email}
		},
		Status: func(v client.VerificationRequest) string {
			return string(v.Status)
		},
	}
}

func listing() rescommon.Listing[client.VerificationRequest] {
	return rescommon.Listing[client.VerificationRequest]{
		Title:    "Verification requests",
		Columns:  Columns(),
		Spec:     Spec(),
		Statuses: Statuses,
		Fetch: func(ctx context.Context, backend helpers.BackendAPI) ([]client.VerificationRequest, error) {
			return backend.GetVerificationAPI().ListVerificationRequests(ctx)
		},
		Activate: activateApprove,
	}
}

// activateApprove approves the selected request. Rejections need a reason
// and go through the patch command.
func activateApprove(backend helpers.BackendAPI) tableview.ActivateFunc[client.VerificationRequest] {
	return func(ctx context.Context, v client.VerificationRequest) (string, error) {
		review := client.Review{Status: client.VerificationApproved}
		return backend.GetVerificationAPI().ReviewVerificationRequest(ctx, v.ID, review).Result()
	}
}

func NewVerificationCmd(verb verbs.VerbValue) (*cobra.Command, error) {
	baseCmd := cobra.Command{
		Use:               verificationUse,
		Short:             verificationShort,
		Long:              verificationLong,
		Example:           verificationExample,
		Aliases:           []string{"verifications", "verif", "verifs", "kyc"},
		PersistentPreRunE: rescommon.PreRunE(Resource),
	}

	rescommon.AddBackendFlags(verb, &baseCmd)

	switch verb {
	case verbs.Get, verbs.List:
		return newGetVerificationCmd(verb, &baseCmd).Command, nil
	case verbs.View:
		return newViewVerificationCmd(&baseCmd).Command, nil
	case verbs.Patch:
		return newPatchVerificationCmd(&baseCmd).Command, nil
	}

	return nil, fmt.Errorf("unsupported verb %s", verb)
}
