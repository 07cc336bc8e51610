package tableview

import (
	"context"
	"errors"
	"fmt"
	"io"

	cmdpkg "github.com/amora/amoractl/internal/cmd"
	"github.com/amora/amoractl/internal/cmd/common"
	jqoutput "github.com/amora/amoractl/internal/cmd/output/jq"
	"github.com/amora/amoractl/internal/iostreams"
	"github.com/amora/amoractl/internal/query"
	"github.com/segmentio/cli"
)

// ActivateFunc handles enter on a row. The returned message is shown in the
// status line.
type ActivateFunc[R Record] func(ctx context.Context, rec R) (string, error)

// RefreshFunc refetches the collection after an activation or on demand.
type RefreshFunc[R Record] func(ctx context.Context) ([]R, error)

type filterSetup[R Record] struct {
	spec     query.Spec[R]
	criteria query.Criteria
	statuses query.Statuses
}

type config struct {
	ctx         context.Context
	title       string
	layout      common.Layout
	width       int
	interactive bool
	profileName string

	// typed by Render's record type
	activate any
	refresh  any
	filter   any
}

type Option func(*config)

func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithLayout forces grid or stacked output. LayoutAuto picks by width.
func WithLayout(layout common.Layout) Option {
	return func(c *config) {
		c.layout = layout
	}
}

// WithWidth overrides the detected terminal width.
func WithWidth(width int) Option {
	return func(c *config) {
		c.width = width
	}
}

func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

// WithInteractive requests the interactive view when the output is a
// terminal.
func WithInteractive(interactive bool) Option {
	return func(c *config) {
		c.interactive = interactive
	}
}

func WithProfileName(name string) Option {
	return func(c *config) {
		c.profileName = name
	}
}

// WithActivate makes every row an activation target. It implies the
// interactive view on terminals.
func WithActivate[R Record](fn ActivateFunc[R]) Option {
	return func(c *config) {
		c.activate = fn
	}
}

func WithRefresh[R Record](fn RefreshFunc[R]) Option {
	return func(c *config) {
		c.refresh = fn
	}
}

// WithFilter narrows the records with criteria before rendering. The
// interactive view lets the user edit the criteria, cycling the status
// through statuses.
func WithFilter[R Record](spec query.Spec[R], criteria query.Criteria, statuses []string) Option {
	return func(c *config) {
		c.filter = filterSetup[R]{spec: spec, criteria: criteria, statuses: statuses}
	}
}

// Render projects records through columns and writes them to streams.Out.
// Terminals get the interactive view when WithInteractive or WithActivate is
// given. Everything else gets the static grid or stacked layout.
func Render[R Record](streams *iostreams.IOStreams, records []R, columns []Column[R], opts ...Option) error {
	if streams == nil || streams.Out == nil {
		return errors.New("tableview: output stream is not available")
	}

	cfg := config{layout: common.LayoutAuto}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ctx == nil {
		cfg.ctx = context.Background()
	}

	activate, refresh, filter, err := typedOptions[R](cfg)
	if err != nil {
		return err
	}

	width, height, isTTY := resolveTerminal(streams.Out)
	if cfg.width > 0 {
		width = cfg.width
	}

	if isTTY && (cfg.interactive || activate != nil) {
		return runInteractive(streams, cfg, interactiveInput[R]{
			records:  records,
			columns:  columns,
			activate: activate,
			refresh:  refresh,
			filter:   filter,
			width:    width,
			height:   height,
		})
	}

	visible := records
	if filter != nil {
		visible = query.Filter(records, filter.criteria, filter.spec)
	}
	p, err := Project(visible, columns)
	if err != nil {
		return err
	}
	return writeStatic(streams.Out, cfg.title, p, ChooseLayout(cfg.layout, width), width)
}

func writeStatic(out io.Writer, title string, p Projection, layout common.Layout, width int) error {
	if title != "" {
		if _, err := fmt.Fprintln(out, title); err != nil {
			return err
		}
	}
	if layout == common.LayoutStacked {
		return RenderStacked(out, p, width)
	}
	return RenderGrid(out, p, width)
}

func typedOptions[R Record](cfg config) (ActivateFunc[R], RefreshFunc[R], *filterSetup[R], error) {
	var (
		activate ActivateFunc[R]
		refresh  RefreshFunc[R]
		filter   *filterSetup[R]
	)
	if cfg.activate != nil {
		fn, ok := cfg.activate.(ActivateFunc[R])
		if !ok {
			return nil, nil, nil, fmt.Errorf("tableview: activate callback does not accept %T", *new(R))
		}
		activate = fn
	}
	if cfg.refresh != nil {
		fn, ok := cfg.refresh.(RefreshFunc[R])
		if !ok {
			return nil, nil, nil, fmt.Errorf("tableview: refresh callback does not return %T", *new(R))
		}
		refresh = fn
	}
	if cfg.filter != nil {
		f, ok := cfg.filter.(filterSetup[R])
		if !ok {
			return nil, nil, nil, fmt.Errorf("tableview: filter does not apply to %T", *new(R))
		}
		filter = &f
	}
	return activate, refresh, filter, nil
}

// RenderForFormat renders records according to the requested output format.
// Text and interactive output go through Render. JSON and YAML print raw with
// printer after applying any --jq filter.
func RenderForFormat[R Record](
	helper cmdpkg.Helper,
	interactive bool,
	outType common.OutputFormat,
	printer cli.PrintFlusher,
	records []R,
	columns []Column[R],
	raw any,
	extraOpts ...Option,
) error {
	cfg, err := helper.GetConfig()
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

	streams := helper.GetStreams()
	if settings.HasFilter() {
		if interactive {
			return &cmdpkg.ConfigurationError{
				Err: fmt.Errorf(
					"--%s is not supported for interactive output; use --output json or --output yaml",
					jqoutput.FlagName,
				),
			}
		}
		filtered, handled, err := jqoutput.Apply(raw, outType, settings, streams.Out)
		if err != nil {
			return cmdpkg.PrepareExecutionErrorWithHelper(helper, "jq filter failed", err)
		}
		if handled {
			return nil
		}
		raw = filtered
	}

	if interactive || outType == common.TEXT {
		layout, err := helper.GetLayout()
		if err != nil {
			return err
		}
		opts := []Option{
			WithContext(helper.GetContext()),
			WithLayout(layout),
			WithInteractive(interactive),
			WithProfileName(cfg.GetProfile()),
		}
		opts = append(opts, extraOpts...)
		return Render(streams, records, columns, opts...)
	}

	switch outType {
	case common.JSON, common.YAML:
		if printer == nil {
			return fmt.Errorf("tableview: no printer for %s output", outType.String())
		}
		printer.Print(raw)
		return nil
	default:
		return fmt.Errorf("tableview: unsupported output format %s", outType.String())
	}
}
