// Package renderer formats portfolios, lots and quotes as markdown, and markdown for the
// terminal.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// RenderHoldings renders a portfolio summary and its positions.
func RenderHoldings(h *Holdings) string {
	partials := map[string]string{
		"holdings_title":     "holdings_title.md",
		"holdings_summary":   "holdings_summary.md",
		"holdings_positions": "holdings_positions.md",
	}
	return renderTemplate("holdings", "holdings.md", partials, h)
}

// RenderLots renders the shares of a position.
func RenderLots(l *Lots) string { return renderTemplate("lots", "lots.md", nil, l) }

// RenderTrend renders the recent closes of a symbol.
func RenderTrend(t *Trend) string { return renderTemplate("trend", "trend.md", nil, t) }

// RenderBook renders the list of portfolios.
func RenderBook(b *Book) string { return renderTemplate("book", "book.md", nil, b) }

// RenderQuote renders the price of a symbol.
func RenderQuote(q *Quote) string { return renderTemplate("quote", "quote.md", nil, q) }

// RenderSearch renders symbol search results.
func RenderSearch(s *Search) string { return renderTemplate("search", "search.md", nil, s) }

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// Styles accepted by Terminal, besides the glamour style names ("dark", "light", "notty"...).
const (
	StyleAuto = "auto"
	StyleRaw  = "raw"
)

// Terminal formats markdown for a terminal of the given width using a glamour style.
// StyleRaw returns md unchanged.
func Terminal(md, style string, width int) (string, error) {
	if style == StyleRaw {
		return md, nil
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("terminal renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
