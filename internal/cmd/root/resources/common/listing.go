package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/backend/helpers"
	cmdpkg "github.com/amora/amoractl/internal/cmd"
	cmdcommon "github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/cmd/output/tableview"
	"github.com/amora/amoractl/internal/query"
	"github.com/segmentio/cli"
)

// Listing describes how one resource is fetched, narrowed and shown.
type Listing[R tableview.Record] struct {
	// Title heads the interactive view.
	Title    string
	Columns  []tableview.Column[R]
	Spec     query.Spec[R]
	Statuses query.Statuses
	Fetch    func(ctx context.Context, backend helpers.BackendAPI) ([]R, error)
	// Activate builds the callback bound to enter in the interactive view.
	// Nil leaves the view read only.
	Activate func(backend helpers.BackendAPI) tableview.ActivateFunc[R]
}

// Criteria reads --search and --status from the command. An unknown status
// is kept, so nothing matches, and a warning naming the closest allowed
// value is written to ErrOut.
func Criteria(helper cmdpkg.Helper, statuses query.Statuses) query.Criteria {
	var c query.Criteria
	flags := helper.GetCmd().Flags()
	if f := flags.Lookup(SearchFlagName); f != nil {
		c.SearchText = f.Value.String()
	}
	if f := flags.Lookup(StatusFlagName); f != nil {
		c.Status = strings.ToLower(strings.TrimSpace(f.Value.String()))
	}

	var unknown *query.UnknownStatusError
	if err := statuses.Validate(c.Status); errors.As(err, &unknown) {
		msg := fmt.Sprintf("Warning: %s", unknown.Error())
		if unknown.Suggestion != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", unknown.Suggestion)
		}
		fmt.Fprintln(helper.GetStreams().ErrOut, msg)
	}
	return c
}

// Run lists the records and renders them for the configured output format.
// forceInteractive opens the interactive view regardless of --interactive.
func (l Listing[R]) Run(helper cmdpkg.Helper, forceInteractive bool) error {
	interactive := forceInteractive
	if !interactive {
		var err error
		if interactive, err = helper.IsInteractive(); err != nil {
			return err
		}
	}

	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	criteria := Criteria(helper, l.Statuses)

	backend, logger, err := Backend(helper)
	if err != nil {
		return err
	}

	records, err := l.Fetch(helper.GetContext(), backend)
	if err != nil {
		return FetchError(helper, err)
	}
	logger.Debug("fetched records",
		slog.Int("count", len(records)),
		slog.String("criteria", criteria.String()))

	printer, err := cli.Format(outType.String(), helper.GetStreams().Out)
	if err != nil {
		return err
	}
	defer printer.Flush()

	fetch := l.Fetch
	opts := []tableview.Option{
		tableview.WithFilter(l.Spec, criteria, l.Statuses),
		tableview.WithRefresh(tableview.RefreshFunc[R](func(ctx context.Context) ([]R, error) {
			return fetch(ctx, backend)
		})),
	}
	if interactive {
		opts = append(opts, tableview.WithTitle(l.Title))
		if l.Activate != nil {
			opts = append(opts, tableview.WithActivate(l.Activate(backend)))
		}
	}

	visible := query.Filter(records, criteria, l.Spec)
	return tableview.RenderForFormat(helper, interactive, outType, printer, records, l.Columns, visible, opts...)
}

// RenderRecord shows a single record. Text output defaults to the stacked
// layout unless --layout asks for something else.
func RenderRecord[R tableview.Record](helper cmdpkg.Helper, rec R, columns []tableview.Column[R]) error {
	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	layout, err := helper.GetLayout()
	if err != nil {
		return err
	}

	printer, err := cli.Format(outType.String(), helper.GetStreams().Out)
	if err != nil {
		return err
	}
	defer printer.Flush()

	var opts []tableview.Option
	if layout == cmdcommon.LayoutAuto {
		opts = append(opts, tableview.WithLayout(cmdcommon.LayoutStacked))
	}
	return tableview.RenderForFormat(helper, false, outType, printer, []R{rec}, columns, rec, opts...)
}

// FetchError turns a backend read failure into an ExecutionError carrying
// the user facing message.
func FetchError(helper cmdpkg.Helper, err error) error {
	return cmdpkg.PrepareExecutionErrorWithHelper(helper, client.Message(err), err)
}

// ReportOutcome prints the result of a state change. Text output gets the
// outcome message, json and yaml get result. Failed outcomes become an
// ExecutionError with the backend message.
func ReportOutcome(helper cmdpkg.Helper, out client.Outcome, result any) error {
	msg, err := out.Result()
	if err != nil {
		return cmdpkg.PrepareExecutionErrorWithHelper(helper, err.Error(), err)
	}

	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	streams := helper.GetStreams()
	if outType == cmdcommon.TEXT {
		_, err = fmt.Fprintln(streams.Out, msg)
		return err
	}

	printer, err := cli.Format(outType.String(), streams.Out)
	if err != nil {
		return err
	}
	defer printer.Flush()
	printer.Print(result)
	return nil
}
