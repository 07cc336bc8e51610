package client

import (
	"context"
	"net/http"
	"strings"
)

const deletionAcknowledgement = "Your account deletion request has been received. " +
	"We will process it within 30 days and confirm by email."

func (c *Client) RequestAccountDeletion(ctx context.Context, req AccountDeletionRequest) Outcome {
	req.Email = strings.TrimSpace(req.Email)
	req.Reason = strings.TrimSpace(req.Reason)
	if err := req.Validate(); err != nil {
		return Failure(err)
	}
	if err := c.do(ctx, http.MethodPost, accountDeletionsPath, nil, req, nil); err != nil {
		return Failure(err)
	}
	return Success(deletionAcknowledgement)
}
