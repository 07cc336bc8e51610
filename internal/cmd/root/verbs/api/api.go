package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amora/amoractl/internal/cmd"
	cmdcommon "github.com/amora/amoractl/internal/cmd/common"
	jqoutput "github.com/amora/amoractl/internal/cmd/output/jq"
	rescommon "github.com/amora/amoractl/internal/cmd/root/resources/common"
	"github.com/amora/amoractl/internal/cmd/root/verbs"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/i18n"
	"github.com/amora/amoractl/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

const (
	Verb = verbs.API

	methodFlagName  = "method"
	methodFlagShort = "X"
)

var (
	apiUse = fmt.Sprintf("%s <endpoint> [key=value | key:=json]...", Verb.String())

	apiShort = i18n.T("root.verbs.api.apiShort", "Call the Amora backend API directly")

	apiLong = normalizers.LongDesc(i18n.T("root.verbs.api.apiLong",
		`Send an authenticated request to a backend API endpoint and print the response.

Extra arguments build a JSON body: key=value sets a string and key:=value sets
a raw JSON value. A body switches the default method to POST.`))

	apiExamples = normalizers.Examples(i18n.T("root.verbs.api.apiExamples",
		fmt.Sprintf(`
	# List subscription plans as returned by the backend
	%[1]s api /admin/subscriptions

	# Extract plan names
	%[1]s api /admin/subscriptions -o json --jq '.[].name'

	# Send a status change
	%[1]s api /admin/subscriptions/1f0c2a7e-9a53-4a3b-8f0e-0c9d1b5a6e21/status -X PATCH status=inactive`, meta.CLIName)))
)

func NewAPICmd() (*cobra.Command, error) {
	c := &cobra.Command{
		Use:     apiUse,
		Short:   apiShort,
		Long:    apiLong,
		Example: apiExamples,
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			c.SetContext(context.WithValue(ctx, verbs.Verb, Verb))
			if err := rescommon.PreRunE("api")(c, args); err != nil {
				return err
			}
			helper := cmd.BuildHelper(c, args)
			cfg, err := helper.GetConfig()
			if err != nil {
				return err
			}
			return jqoutput.BindFlags(cfg, c.Flags())
		},
		RunE: func(c *cobra.Command, args []string) error {
			helper := cmd.BuildHelper(c, args)
			method, _ := c.Flags().GetString(methodFlagName)
			return run(helper, method)
		},
	}

	rescommon.AddBackendFlags(Verb, c)
	c.Flags().StringP(methodFlagName, methodFlagShort, "",
		"HTTP method. Defaults to GET, or POST when a body is given.")
	jqoutput.AddFlags(c.Flags())

	return c, nil
}

func run(helper cmd.Helper, method string) error {
	args := helper.GetArgs()
	endpoint := strings.TrimSpace(args[0])
	if endpoint == "" {
		return cmd.PrepareExecutionErrorWithHelper(helper, "endpoint is required", errors.New("endpoint cannot be empty"))
	}

	payload, err := parseAssignments(args[1:])
	if err != nil {
		return &cmd.ConfigurationError{Err: err}
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
		if payload != nil {
			method = http.MethodPost
		}
	}
	if payload != nil && (method == http.MethodGet || method == http.MethodHead) {
		return &cmd.ConfigurationError{Err: fmt.Errorf("a request body cannot be sent with %s", method)}
	}

	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	settings, err := jqoutput.ResolveSettings(helper.GetCmd(), cfg)
	if err != nil {
		return err
	}
	if err := jqoutput.ValidateOutputFormat(outType, settings); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &cmd.ConfigurationError{Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		body = bytes.NewReader(encoded)
	}

	backend, _, err := rescommon.Backend(helper)
	if err != nil {
		return err
	}
	result, err := backend.GetRawAPI().Raw(helper.GetContext(), method, endpoint, body)
	if err != nil {
		return cmd.PrepareExecutionErrorWithHelper(helper, "failed to call the backend API", err)
	}
	if !result.Success() {
		return cmd.PrepareExecutionErrorWithHelper(helper,
			fmt.Sprintf("request failed with status %d", result.StatusCode),
			errors.New(strings.TrimSpace(string(result.Body))),
		)
	}

	streams := helper.GetStreams()
	if outType == cmdcommon.TEXT {
		_, err = fmt.Fprintln(streams.Out, strings.TrimRight(string(result.Body), "\n"))
		return err
	}

	var decoded any
	if len(bytes.TrimSpace(result.Body)) > 0 {
		if err := json.Unmarshal(result.Body, &decoded); err != nil {
			decoded = string(result.Body)
		}
	}

	filtered, handled, err := jqoutput.Apply(decoded, outType, settings, streams.Out)
	if err != nil {
		return cmd.PrepareExecutionErrorWithHelper(helper, "jq filter failed", err)
	}
	if handled {
		return nil
	}

	printer, err := cli.Format(outType.String(), streams.Out)
	if err != nil {
		return err
	}
	defer printer.Flush()
	printer.Print(filtered)
	return nil
}

// parseAssignments turns key=value and key:=json arguments into a JSON
// object. No arguments yield a nil map.
func parseAssignments(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	payload := make(map[string]any, len(args))
	for _, arg := range args {
		if key, raw, ok := strings.Cut(arg, ":="); ok {
			if key == "" {
				return nil, fmt.Errorf("assignment %q is missing a key", arg)
			}
			var v any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, fmt.Errorf("assignment %q has an invalid JSON value: %w", arg, err)
			}
			payload[key] = v
			continue
		}
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value or key:=json", arg)
		}
		if key == "" {
			return nil, fmt.Errorf("assignment %q is missing a key", arg)
		}
		payload[key] = value
	}
	return payload, nil
}
