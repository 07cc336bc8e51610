package legal

import (
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

var (
	defaultRenderer *glamour.TermRenderer
	defaultMu       sync.RWMutex
)

// RenderOptions controls terminal rendering.
type RenderOptions struct {
	NoColor bool
	// Width wraps paragraphs. Zero keeps the glamour default.
	Width int
}

// Terminal renders the document for a terminal. The Markdown source is
// returned unchanged when rendering fails.
func (d Document) Terminal(opts RenderOptions) string {
	r, err := getRenderer(opts)
	if err != nil {
		return d.Markdown
	}
	out, err := r.Render(d.Markdown)
	if err != nil {
		return d.Markdown
	}
	return out
}

func getRenderer(opts RenderOptions) (*glamour.TermRenderer, error) {
	if opts.NoColor || opts.Width > 0 {
		ropts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
		if opts.NoColor {
			ropts = []glamour.TermRendererOption{
				glamour.WithStandardStyle("notty"),
				glamour.WithColorProfile(termenv.Ascii),
			}
		}
		if opts.Width > 0 {
			ropts = append(ropts, glamour.WithWordWrap(opts.Width))
		}
		return glamour.NewTermRenderer(ropts...)
	}

	defaultMu.RLock()
	if defaultRenderer != nil {
		r := defaultRenderer
		defaultMu.RUnlock()
		return r, nil
	}
	defaultMu.RUnlock()

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRenderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithColorProfile(termenv.TrueColor),
		)
		if err != nil {
			return nil, err
		}
		defaultRenderer = r
	}

	return defaultRenderer, nil
}
