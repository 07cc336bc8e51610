package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/spf13/cobra"
)

type confirmContextKey string

const autoApproveContextKey confirmContextKey = "amoractl-auto-approve"

// SetAutoApprove stores the --yes state on the command context so nested
// handlers can read it without rebinding flags.
func SetAutoApprove(cmd *cobra.Command, approved bool) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, autoApproveContextKey, approved))
}

// AutoApproveEnabled reports whether confirmation prompts should be skipped.
// A context value wins over the --yes flag.
func AutoApproveEnabled(helper Helper) bool {
	if helper == nil || helper.GetCmd() == nil {
		return false
	}
	if approved, ok := helper.GetContext().Value(autoApproveContextKey).(bool); ok {
		return approved
	}
	f := helper.GetCmd().Flags().Lookup(common.AutoApproveFlagName)
	if f == nil {
		return false
	}
	approved, _ := strconv.ParseBool(f.Value.String())
	return approved
}

// Confirm asks the user to approve action unless auto approval is enabled.
// Anything other than "y" or "yes" cancels with an ExecutionError.
func Confirm(helper Helper, action string, details ...string) error {
	if AutoApproveEnabled(helper) {
		return nil
	}

	streams := helper.GetStreams()
	fmt.Fprintf(streams.ErrOut, "\nYou are about to %s\n", action)
	for _, d := range details {
		if strings.TrimSpace(d) != "" {
			fmt.Fprintln(streams.ErrOut, "  "+d)
		}
	}
	fmt.Fprint(streams.ErrOut, "\nDo you want to continue? [y/N]: ")

	input := streams.In
	if f, ok := input.(*os.File); ok && f.Fd() == os.Stdin.Fd() {
		if tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0); err == nil {
			defer tty.Close()
			input = tty
		}
	}

	lineCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(input).ReadString('\n')
		if err != nil && line == "" {
			errCh <- err
			return
		}
		lineCh <- line
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	cancelled := PrepareExecutionErrorMsg(helper, action+" cancelled")
	select {
	case <-helper.GetContext().Done():
		return cancelled
	case <-sigCh:
		return cancelled
	case <-errCh:
		return cancelled
	case line := <-lineCh:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return nil
		default:
			return cancelled
		}
	}
}
