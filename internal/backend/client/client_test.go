package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			require.NoError(t, json.Unmarshal(data, &rec.Body))
		}
		calls = append(calls, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api", WithToken("tok"), WithDoer(srv.Client()))
	require.NoError(t, err)
	return c, &calls
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
	_, err = New("not a url")
	require.Error(t, err)
}

func TestListSubscriptionPlansAcceptsBareArray(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK,
		`[{"id":"p1","name":"Gold","price_cents":900,"currency":"usd","status":"active"}]`)

	plans, err := c.ListSubscriptionPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "p1", plans[0].RecordID())
	assert.Equal(t, "9.00 USD", plans[0].Price())

	require.Len(t, *calls, 1)
	assert.Equal(t, "/api/admin/subscriptions", (*calls)[0].Path)
	assert.Equal(t, "Bearer tok", (*calls)[0].Auth)
}

func TestListVerificationRequestsAcceptsEnvelope(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK,
		`{"data":[{"id":"v1","user_name":"Ann","status":"pending"},{"id":"v2","user_name":"Bob","status":"approved"}]}`)
	c.pageSize = 25

	reqs, err := c.ListVerificationRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, VerificationApproved, reqs[1].Status)
	assert.Equal(t, "limit=25", (*calls)[0].Query)
}

func TestDecodeListEdgeCases(t *testing.T) {
	items, err := decodeList[SubscriptionPlan](json.RawMessage(`{"data":null}`))
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = decodeList[SubscriptionPlan](nil)
	require.NoError(t, err)
	assert.NotNil(t, items)

	items, err = decodeList[SubscriptionPlan](json.RawMessage(`{"data": null, "total": 0}`))
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	items, err = decodeList[SubscriptionPlan](json.RawMessage(`{"data":[{"id":"p1","name":"Gold"}]}`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Gold", items[0].Name)

	_, err = decodeList[SubscriptionPlan](json.RawMessage(`{"items":[]}`))
	require.Error(t, err)

	_, err = decodeList[SubscriptionPlan](json.RawMessage(`{"data":{"id":"p1"}}`))
	require.Error(t, err)
}

func TestGetSubscriptionPlanNotFound(t *testing.T) {
	c, _ := newTestServer(t, http.StatusNotFound, `{"message":"Plan not found"}`)

	_, err := c.GetSubscriptionPlan(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Plan not found", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestGetSubscriptionPlanAcceptsEnvelope(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{"data":{"id":"p 1","name":"Gold"}}`)

	plan, err := c.GetSubscriptionPlan(context.Background(), "p 1")
	require.NoError(t, err)
	assert.Equal(t, "Gold", plan.Name)
	assert.Equal(t, "/api/admin/subscriptions/p 1", (*calls)[0].Path)
}

func TestCreateSubscriptionPlanValidatesBeforeSending(t *testing.T) {
	c, calls := newTestServer(t, http.StatusCreated, `{"id":"p2"}`)

	_, err := c.CreateSubscriptionPlan(context.Background(), PlanInput{Name: "", Currency: "USD", Interval: Monthly})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, *calls)

	plan, err := c.CreateSubscriptionPlan(context.Background(), PlanInput{
		Name: "Plus", PriceCents: 1999, Currency: "eur", Interval: Yearly,
	})
	require.NoError(t, err)
	assert.Equal(t, "p2", plan.ID)
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodPost, (*calls)[0].Method)
	assert.Equal(t, "EUR", (*calls)[0].Body["currency"])
}

func TestUpdateSubscriptionPlanUsesPut(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{"id":"p1","name":"Plus"}`)

	_, err := c.UpdateSubscriptionPlan(context.Background(), "p1", PlanInput{
		Name: "Plus", Currency: "USD", Interval: Quarterly,
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, (*calls)[0].Method)
	assert.Equal(t, "/api/admin/subscriptions/p1", (*calls)[0].Path)
}

func TestSetSubscriptionPlanStatusOutcome(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, ``)

	out := c.SetSubscriptionPlanStatus(context.Background(), "p1", PlanInactive)
	assert.True(t, out.Succeeded)
	assert.Contains(t, out.Message, "inactive")
	assert.Equal(t, http.MethodPatch, (*calls)[0].Method)
	assert.Equal(t, "/api/admin/subscriptions/p1/status", (*calls)[0].Path)
	assert.Equal(t, "inactive", (*calls)[0].Body["status"])

	out = c.SetSubscriptionPlanStatus(context.Background(), "p1", "bogus")
	assert.True(t, out.Failed())
	assert.Len(t, *calls, 1)
}

func TestSetSubscriptionPlanStatusFailureUsesBackendMessage(t *testing.T) {
	c, _ := newTestServer(t, http.StatusConflict, `{"message":"Plan has active subscribers"}`)

	out := c.SetSubscriptionPlanStatus(context.Background(), "p1", PlanArchived)
	assert.True(t, out.Failed())
	assert.Equal(t, "Plan has active subscribers", out.Message)
}

func TestFailureFallsBackToGenericMessage(t *testing.T) {
	c, _ := newTestServer(t, http.StatusInternalServerError, `<html>oops</html>`)

	out := c.SetSubscriptionPlanStatus(context.Background(), "p1", PlanActive)
	assert.True(t, out.Failed())
	assert.Equal(t, GenericErrorMessage, out.Message)
}

func TestReviewVerificationRequest(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{}`)

	out := c.ReviewVerificationRequest(context.Background(), "v1", Review{Status: VerificationRejected})
	assert.True(t, out.Failed())
	assert.Contains(t, out.Message, "reason is required")
	assert.Empty(t, *calls)

	out = c.ReviewVerificationRequest(context.Background(), "v1",
		Review{Status: VerificationRejected, Reason: "blurry document"})
	assert.True(t, out.Succeeded)
	require.Len(t, *calls, 1)
	assert.Equal(t, "/api/admin/verifications/v1/status", (*calls)[0].Path)
	assert.Equal(t, "rejected", (*calls)[0].Body["status"])
	assert.Equal(t, "blurry document", (*calls)[0].Body["reason"])
}

func TestRequestAccountDeletion(t *testing.T) {
	c, calls := newTestServer(t, http.StatusAccepted, ``)

	out := c.RequestAccountDeletion(context.Background(), AccountDeletionRequest{Email: "nope"})
	assert.True(t, out.Failed())
	assert.Empty(t, *calls)

	out = c.RequestAccountDeletion(context.Background(), AccountDeletionRequest{
		Email: " ann@example.test ", Reason: "moving on",
	})
	assert.True(t, out.Succeeded)
	assert.Equal(t, "/api/account-deletion-requests", (*calls)[0].Path)
	assert.Equal(t, "ann@example.test", (*calls)[0].Body["email"])
}

func TestAccountDeletionRequestValidate(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{email: "ann@example.test", valid: true},
		{email: " ann.lee+amora@mail.example.test ", valid: true},
		{email: "", valid: false},
		{email: "nope", valid: false},
		{email: "@example.test", valid: false},
		{email: "ann@", valid: false},
		{email: "ann @example.test", valid: false},
		{email: "Ann <ann@example.test>", valid: false},
		{email: "ann@example.test, bob@example.test", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := AccountDeletionRequest{Email: tt.email}.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestToggledStatus(t *testing.T) {
	assert.Equal(t, PlanInactive, SubscriptionPlan{Status: PlanActive}.ToggledStatus())
	assert.Equal(t, PlanActive, SubscriptionPlan{Status: PlanInactive}.ToggledStatus())
	assert.Equal(t, PlanActive, SubscriptionPlan{Status: PlanArchived}.ToggledStatus())
}

func TestPriceFormatting(t *testing.T) {
	assert.Equal(t, "0.05", SubscriptionPlan{PriceCents: 5}.Price())
	assert.Equal(t, "-1.50 GBP", SubscriptionPlan{PriceCents: -150, Currency: "gbp"}.Price())
}

func TestAPIErrorMatchesSentinels(t *testing.T) {
	tests := []struct {
		status   int
		notFound bool
		invalid  bool
	}{
		{status: http.StatusBadRequest, invalid: true},
		{status: http.StatusConflict, invalid: true},
		{status: http.StatusUnprocessableEntity, invalid: true},
		{status: http.StatusNotFound, notFound: true},
		{status: http.StatusInternalServerError},
		{status: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := fmt.Errorf("request: %w", &APIError{StatusCode: tt.status, Message: "x"})
			assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestRequestAccountDeletionBackendRejection(t *testing.T) {
	c, calls := newTestServer(t, http.StatusUnprocessableEntity, `{"message":"no account with that email"}`)
	out := c.RequestAccountDeletion(context.Background(), AccountDeletionRequest{Email: "ann@example.test"})
	require.Len(t, *calls, 1)
	assert.True(t, out.Failed())
	assert.ErrorIs(t, out.Err, ErrInvalidInput)
	assert.Equal(t, "no account with that email", out.Message)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, GenericErrorMessage, Message(errors.New("dial tcp: refused")))
	assert.Equal(t, "boom", Message(&APIError{StatusCode: 500, Message: "boom"}))
}

func TestOutcomeResult(t *testing.T) {
	msg, err := Success("Plan activated").Result()
	require.NoError(t, err)
	assert.Equal(t, "Plan activated", msg)

	apiErr := &APIError{StatusCode: http.StatusNotFound, Message: "Plan not found"}
	_, err = Failure(fmt.Errorf("get plan: %w", apiErr)).Result()
	require.Error(t, err)
	assert.Equal(t, "Plan not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Failure(errors.New("dial tcp: refused")).Result()
	assert.Equal(t, GenericErrorMessage, err.Error())

	_, err = Outcome{}.Result()
	assert.Equal(t, GenericErrorMessage, err.Error())
}
