package client

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) ListVerificationRequests(ctx context.Context) ([]VerificationRequest, error) {
	return list[VerificationRequest](ctx, c, verificationsPath)
}

func (c *Client) GetVerificationRequest(ctx context.Context, id string) (*VerificationRequest, error) {
	path, err := itemPath(verificationsPath, id)
	if err != nil {
		return nil, err
	}
	return single[VerificationRequest](ctx, c, http.MethodGet, path, nil)
}

// ReviewVerificationRequest approves or rejects a request. Rejection
// requires a reason.
func (c *Client) ReviewVerificationRequest(ctx context.Context, id string, review Review) Outcome {
	path, err := itemPath(verificationsPath, id)
	if err != nil {
		return Failure(err)
	}
	if err := review.Validate(); err != nil {
		return Failure(err)
	}
	if err := c.do(ctx, http.MethodPatch, path+"/status", nil, review, nil); err != nil {
		return Failure(err)
	}
	return Success(fmt.Sprintf("Verification request %s marked %s.", id, review.Status))
}
