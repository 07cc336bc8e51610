package helpers

import (
	"context"
	"io"
	"log/slog"

	"github.com/amora/amoractl/internal/backend/apiutil"
	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/config"
)

type SubscriptionAPI interface {
	ListSubscriptionPlans(ctx context.Context) ([]client.SubscriptionPlan, error)
	GetSubscriptionPlan(ctx context.Context, id string) (*client.SubscriptionPlan, error)
	CreateSubscriptionPlan(ctx context.Context, in client.PlanInput) (*client.SubscriptionPlan, error)
	UpdateSubscriptionPlan(ctx context.Context, id string, in client.PlanInput) (*client.SubscriptionPlan, error)
	SetSubscriptionPlanStatus(ctx context.Context, id string, status client.PlanStatus) client.Outcome
}

type VerificationAPI interface {
	ListVerificationRequests(ctx context.Context) ([]client.VerificationRequest, error)
	GetVerificationRequest(ctx context.Context, id string) (*client.VerificationRequest, error)
	ReviewVerificationRequest(ctx context.Context, id string, review client.Review) client.Outcome
}

type AccountDeletionAPI interface {
	RequestAccountDeletion(ctx context.Context, req client.AccountDeletionRequest) client.Outcome
}

type RawAPI interface {
	Raw(ctx context.Context, method, path string, body io.Reader) (*apiutil.Result, error)
}

// BackendAPI groups the backend operations commands use, allowing for
// easier testing and mocking.
type BackendAPI interface {
	GetSubscriptionAPI() SubscriptionAPI
	GetVerificationAPI() VerificationAPI
	GetAccountDeletionAPI() AccountDeletionAPI
	GetRawAPI() RawAPI
}

// Backend is the real BackendAPI, backed by one HTTP client.
type Backend struct {
	Client *client.Client
}

func (b *Backend) GetSubscriptionAPI() SubscriptionAPI {
	return b.Client
}

func (b *Backend) GetVerificationAPI() VerificationAPI {
	return b.Client
}

func (b *Backend) GetAccountDeletionAPI() AccountDeletionAPI {
	return b.Client
}

func (b *Backend) GetRawAPI() RawAPI {
	return b.Client
}

// BackendFactory builds a BackendAPI from the active configuration.
type BackendFactory func(cfg config.Hook, logger *slog.Logger) (BackendAPI, error)

type Key struct{}

// BackendFactoryKey stores the BackendFactory on a command context.
var BackendFactoryKey = Key{}

// DefaultBackendFactory overrides the real factory when set. Tests use it.
var DefaultBackendFactory BackendFactory

// NewBackend is the real BackendFactory.
func NewBackend(cfg config.Hook, logger *slog.Logger) (BackendAPI, error) {
	c, err := client.New(cfg.GetString(config.BackendBaseURLConfigPath),
		client.WithToken(cfg.GetString(config.BackendTokenConfigPath)),
		client.WithPageSize(cfg.GetIntOrElse(config.BackendPageSizeConfigPath, config.DefaultBackendPageSize)),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return &Backend{Client: c}, nil
}

// GetBackendFactory returns the factory to use, checking for test overrides.
func GetBackendFactory() BackendFactory {
	if DefaultBackendFactory != nil {
		return DefaultBackendFactory
	}
	return NewBackend
}
