package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/iostreams"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfirmCommand(t *testing.T, input string) (*cobra.Command, *iostreams.IOStreams) {
	t.Helper()
	streams, in, _, _ := iostreams.NewTestIOStreams()
	in.WriteString(input)

	c := &cobra.Command{Use: "patch"}
	c.Flags().Bool(common.AutoApproveFlagName, false, "")
	c.SetContext(context.WithValue(context.Background(), iostreams.StreamsKey, &streams))
	return c, &streams
}

func TestConfirmAcceptsYes(t *testing.T) {
	c, _ := newConfirmCommand(t, "yes\n")
	require.NoError(t, Confirm(BuildHelper(c, nil), "deactivate plan p1"))
}

func TestConfirmAcceptsShortY(t *testing.T) {
	c, _ := newConfirmCommand(t, "Y\n")
	require.NoError(t, Confirm(BuildHelper(c, nil), "deactivate plan p1"))
}

func TestConfirmRejectsOtherInput(t *testing.T) {
	c, streams := newConfirmCommand(t, "nope\n")

	err := Confirm(BuildHelper(c, nil), "reject verification v1", "reason: blurry")
	require.Error(t, err)

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "reject verification v1 cancelled", execErr.Msg)
	assert.True(t, c.SilenceUsage)

	prompt := streams.ErrOut.(interface{ String() string }).String()
	assert.Contains(t, prompt, "You are about to reject verification v1")
	assert.Contains(t, prompt, "reason: blurry")
}

func TestConfirmCancelsOnEOF(t *testing.T) {
	c, _ := newConfirmCommand(t, "")
	require.Error(t, Confirm(BuildHelper(c, nil), "archive plan"))
}

func TestConfirmSkippedWithYesFlag(t *testing.T) {
	c, _ := newConfirmCommand(t, "")
	require.NoError(t, c.Flags().Set(common.AutoApproveFlagName, "true"))
	require.NoError(t, Confirm(BuildHelper(c, nil), "archive plan"))
}

func TestSetAutoApproveOverridesFlag(t *testing.T) {
	c, _ := newConfirmCommand(t, "")
	SetAutoApprove(c, true)
	assert.True(t, AutoApproveEnabled(BuildHelper(c, nil)))
}
