package verification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/backend/helpers"
	"github.com/amora/amoractl/internal/cmd"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/config"
	"github.com/amora/amoractl/internal/iostreams"
	"github.com/amora/amoractl/internal/log"
	testconfig "github.com/amora/amoractl/test/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestID = "6b1d3c0e-2f4a-4e8b-9c7d-5a3e1f0b2c4d"

func requests() []client.VerificationRequest {
	submitted := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	return []client.VerificationRequest{
		{
			ID: requestID, UserID: "u1", UserName: "Ann Lee", Email: "ann@example.com",
			DocumentType: "passport", SubmittedAt: submitted, Status: client.VerificationPending,
		},
		{
			ID: "a3bb189e-8bf9-3888-9912-ace4e6543002", UserID: "u2", UserName: "Bo Chen", Email: "bo@example.com",
			DocumentType: "id_card", SubmittedAt: submitted, Status: client.VerificationApproved,
		},
	}
}

func execute(t *testing.T, verb verbs.VerbValue, backend helpers.BackendAPI, format string, args ...string) (
	string, error,
) {
	t.Helper()

	c, err := NewVerificationCmd(verb)
	require.NoError(t, err)

	streams, _, out, _ := iostreams.NewTestIOStreams()
	cfg := &testconfig.MockConfigHook{Values: map[string]any{"output": format}}

	ctx := context.Background()
	ctx = context.WithValue(ctx, verbs.Verb, verb)
	ctx = context.WithValue(ctx, config.ConfigKey, config.Hook(cfg))
	ctx = context.WithValue(ctx, iostreams.StreamsKey, &streams)
	ctx = context.WithValue(ctx, log.LoggerKey, slog.New(slog.DiscardHandler))
	ctx = context.WithValue(ctx, helpers.BackendFactoryKey, helpers.BackendFactory(
		func(config.Hook, *slog.Logger) (helpers.BackendAPI, error) { return backend, nil }))

	c.SetArgs(args)
	c.SetOut(io.Discard)
	c.SetErr(io.Discard)
	err = c.ExecuteContext(ctx)
	return out.String(), err
}

func TestListSearchMatchesNameAndEmail(t *testing.T) {
	backend := &helpers.MockBackend{
		ListVerifsFunc: func(context.Context) ([]client.VerificationRequest, error) {
			return requests(), nil
		},
	}

	out, err := execute(t, verbs.List, backend, "text", "--search", "BO@EXAMPLE")
	require.NoError(t, err)
	assert.Contains(t, out, "Bo Chen")
	assert.NotContains(t, out, "Ann Lee")

	out, err = execute(t, verbs.List, backend, "text", "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann Lee")
	assert.NotContains(t, out, "Bo Chen")

	// document type is not a searchable field
	out, err = execute(t, verbs.List, backend, "text", "--search", "passport")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ann Lee")
}

func TestListJSON(t *testing.T) {
	backend := &helpers.MockBackend{
		ListVerifsFunc: func(context.Context) ([]client.VerificationRequest, error) {
			return requests(), nil
		},
	}

	out, err := execute(t, verbs.List, backend, "json", "--status", "approved")
	require.NoError(t, err)
	assert.Contains(t, out, `"bo@example.com"`)
	assert.NotContains(t, out, `"ann@example.com"`)
}

func TestGetByID(t *testing.T) {
	backend := &helpers.MockBackend{
		GetVerifFunc: func(_ context.Context, id string) (*client.VerificationRequest, error) {
			r := requests()[0]
			require.Equal(t, requestID, id)
			return &r, nil
		},
	}

	out, err := execute(t, verbs.Get, backend, "text", requestID)
	require.NoError(t, err)
	assert.Contains(t, out, "ann@example.com")
	assert.Contains(t, out, "passport")
}

func TestPatchRejectRequiresReason(t *testing.T) {
	called := false
	backend := &helpers.MockBackend{
		ReviewFunc: func(context.Context, string, client.Review) client.Outcome {
			called = true
			return client.Success("ok")
		},
	}

	_, err := execute(t, verbs.Patch, backend, "text", requestID, "--status", "rejected", "--yes")
	var cfgErr *cmd.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, client.ErrInvalidInput)
	assert.False(t, called)
}

func TestPatchReject(t *testing.T) {
	var got client.Review
	backend := &helpers.MockBackend{
		ReviewFunc: func(_ context.Context, id string, review client.Review) client.Outcome {
			got = review
			return client.Success("Verification request rejected")
		},
	}

	out, err := execute(t, verbs.Patch, backend, "text",
		requestID, "--status", "Rejected", "--reason", " blurry photo ", "--yes")
	require.NoError(t, err)
	assert.Equal(t, client.Review{Status: client.VerificationRejected, Reason: "blurry photo"}, got)
	assert.Equal(t, "Verification request rejected\n", out)
}

func TestPatchUnknownStatus(t *testing.T) {
	_, err := execute(t, verbs.Patch, &helpers.MockBackend{}, "text", requestID, "--status", "aproved", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "approved"?`)
}

func TestPatchRequiresID(t *testing.T) {
	_, err := execute(t, verbs.Patch, &helpers.MockBackend{}, "text", "--status", "approved", "--yes")
	assert.Error(t, err)
}

func TestActivateApprove(t *testing.T) {
	var got client.Review
	backend := &helpers.MockBackend{
		ReviewFunc: func(_ context.Context, _ string, review client.Review) client.Outcome {
			got = review
			return client.Failure(&client.APIError{StatusCode: 409, Message: "request already reviewed"})
		},
	}

	_, err := activateApprove(backend)(context.Background(), requests()[1])
	require.Error(t, err)
	assert.Equal(t, "request already reviewed", err.Error())
	assert.Equal(t, client.VerificationApproved, got.Status)
}
