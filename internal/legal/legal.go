// Package legal holds the public legal documents of the app. They are
// written in Markdown and rendered for the terminal or for the web.
package legal

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
)

//go:embed documents/*.md
var documents embed.FS

type Document struct {
	Slug  string
	Title string
	// Markdown is the source text, including the top level heading.
	Markdown string
}

var order = []string{"privacy", "terms"}

// Slugs lists the known documents in display order.
func Slugs() []string {
	return slices.Clone(order)
}

// Get loads the document named slug.
func Get(slug string) (Document, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !slices.Contains(order, slug) {
		return Document{}, fmt.Errorf("unknown legal document %q, must be one of %s",
			slug, strings.Join(order, ", "))
	}
	data, err := documents.ReadFile("documents/" + slug + ".md")
	if err != nil {
		return Document{}, err
	}
	md := string(data)
	return Document{Slug: slug, Title: title(md), Markdown: md}, nil
}

// HTML converts the document to an HTML fragment.
func (d Document) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(d.Markdown), &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", d.Slug, err)
	}
	return template.HTML(buf.String()), nil // #nosec G203 embedded trusted content
}

func title(md string) string {
	for _, line := range strings.Split(md, "\n") {
		if h, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(h)
		}
	}
	return ""
}
