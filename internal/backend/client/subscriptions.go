package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

func (c *Client) ListSubscriptionPlans(ctx context.Context) ([]SubscriptionPlan, error) {
	return list[SubscriptionPlan](ctx, c, subscriptionsPath)
}

func (c *Client) GetSubscriptionPlan(ctx context.Context, id string) (*SubscriptionPlan, error) {
	path, err := itemPath(subscriptionsPath, id)
	if err != nil {
		return nil, err
	}
	return single[SubscriptionPlan](ctx, c, http.MethodGet, path, nil)
}

func (c *Client) CreateSubscriptionPlan(ctx context.Context, in PlanInput) (*SubscriptionPlan, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	return single[SubscriptionPlan](ctx, c, http.MethodPost, subscriptionsPath, in)
}

func (c *Client) UpdateSubscriptionPlan(ctx context.Context, id string, in PlanInput) (*SubscriptionPlan, error) {
	path, err := itemPath(subscriptionsPath, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	return single[SubscriptionPlan](ctx, c, http.MethodPut, path, in)
}

// SetSubscriptionPlanStatus changes the status of one plan.
func (c *Client) SetSubscriptionPlanStatus(ctx context.Context, id string, status PlanStatus) Outcome {
	path, err := itemPath(subscriptionsPath, id)
	if err != nil {
		return Failure(err)
	}
	switch status {
	case PlanActive, PlanInactive, PlanArchived:
	default:
		return Failure(invalidInput("status must be one of %v, got %q", PlanStatuses, status))
	}

	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPatch, path+"/status", nil, body, nil); err != nil {
		return Failure(err)
	}
	return Success(fmt.Sprintf("Subscription plan %s is now %s.", id, status))
}
