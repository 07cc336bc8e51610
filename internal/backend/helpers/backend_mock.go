package helpers

import (
	"context"
	"errors"
	"io"

	"github.com/amora/amoractl/internal/backend/apiutil"
	"github.com/amora/amoractl/internal/backend/client"
)

var errNotMocked = errors.New("not mocked")

// MockBackend is an in-memory BackendAPI. Unset functions fail with an error.
type MockBackend struct {
	ListPlansFunc       func(ctx context.Context) ([]client.SubscriptionPlan, error)
	GetPlanFunc         func(ctx context.Context, id string) (*client.SubscriptionPlan, error)
	CreatePlanFunc      func(ctx context.Context, in client.PlanInput) (*client.SubscriptionPlan, error)
	UpdatePlanFunc      func(ctx context.Context, id string, in client.PlanInput) (*client.SubscriptionPlan, error)
	SetPlanStatusFunc   func(ctx context.Context, id string, status client.PlanStatus) client.Outcome
	ListVerifsFunc      func(ctx context.Context) ([]client.VerificationRequest, error)
	GetVerifFunc        func(ctx context.Context, id string) (*client.VerificationRequest, error)
	ReviewFunc          func(ctx context.Context, id string, review client.Review) client.Outcome
	AccountDeletionFunc func(ctx context.Context, req client.AccountDeletionRequest) client.Outcome
	RawFunc             func(ctx context.Context, method, path string, body io.Reader) (*apiutil.Result, error)
}

func (m *MockBackend) GetSubscriptionAPI() SubscriptionAPI { return m }
func (m *MockBackend) GetVerificationAPI() VerificationAPI { return m }
func (m *MockBackend) GetAccountDeletionAPI() AccountDeletionAPI { return m }
func (m *MockBackend) GetRawAPI() RawAPI { return m }

func (m *MockBackend) ListSubscriptionPlans(ctx context.Context) ([]client.SubscriptionPlan, error) {
	if m.ListPlansFunc == nil {
		return nil, errNotMocked
	}
	return m.ListPlansFunc(ctx)
}

func (m *MockBackend) GetSubscriptionPlan(ctx context.Context, id string) (*client.SubscriptionPlan, error) {
	if m.GetPlanFunc == nil {
		return nil, errNotMocked
	}
	return m.GetPlanFunc(ctx, id)
}

func (m *MockBackend) CreateSubscriptionPlan(
	ctx context.Context, in client.PlanInput,
) (*client.SubscriptionPlan, error) {
	if m.CreatePlanFunc == nil {
		return nil, errNotMocked
	}
	return m.CreatePlanFunc(ctx, in)
}

func (m *MockBackend) UpdateSubscriptionPlan(
	ctx context.Context, id string, in client.PlanInput,
) (*client.SubscriptionPlan, error) {
	if m.UpdatePlanFunc == nil {
		return nil, errNotMocked
	}
	return m.UpdatePlanFunc(ctx, id, in)
}

func (m *MockBackend) SetSubscriptionPlanStatus(
	ctx context.Context, id string, status client.PlanStatus,
) client.Outcome {
	if m.SetPlanStatusFunc == nil {
		return client.Failure(errNotMocked)
	}
	return m.SetPlanStatusFunc(ctx, id, status)
}

func (m *MockBackend) ListVerificationRequests(ctx context.Context) ([]client.VerificationRequest, error) {
	if m.ListVerifsFunc == nil {
		return nil, errNotMocked
	}
	return m.ListVerifsFunc(ctx)
}

func (m *MockBackend) GetVerificationRequest(ctx context.Context, id string) (*client.VerificationRequest, error) {
	if m.GetVerifFunc == nil {
		return nil, errNotMocked
	}
	return m.GetVerifFunc(ctx, id)
}

func (m *MockBackend) ReviewVerificationRequest(ctx context.Context, id string, review client.Review) client.Outcome {
	if m.ReviewFunc == nil {
		return client.Failure(errNotMocked)
	}
	return m.ReviewFunc(ctx, id, review)
}

func (m *MockBackend) RequestAccountDeletion(ctx context.Context, req client.AccountDeletionRequest) client.Outcome {
	if m.AccountDeletionFunc == nil {
		return client.Failure(errNotMocked)
	}
	return m.AccountDeletionFunc(ctx, req)
}

func (m *MockBackend) Raw(ctx context.Context, method, path string, body io.Reader) (*apiutil.Result, error) {
	if m.RawFunc == nil {
		return nil, errNotMocked
	}
	return m.RawFunc(ctx, method, path, body)
}
