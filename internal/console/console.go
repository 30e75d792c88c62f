// Package console renders demo output for the terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/timothywarner/ai900/internal/domain"
)

const ruleWidth = 70

// Printer writes styled demo output. Colors are dropped when w is not a terminal.
type Printer struct {
	w io.Writer

	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	body    lipgloss.Style
}

// New creates a Printer for w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		title: r.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#3B82F6"}),
		section: r.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A855F7"}),
		key:     r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}),
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}),
		warn:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}),
		fail:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}),
		body:    r.NewStyle().PaddingLeft(2).Width(ruleWidth + 2),
	}
}

// Header prints a title framed by rules.
func (p *Printer) Header(title string) {
	rule := strings.Repeat("=", ruleWidth)
	p.printf("\n%s\n%s\n%s\n", p.title.Render(rule), p.title.Render(title), p.title.Render(rule))
}

// Section prints a sub-heading.
func (p *Printer) Section(title string) {
	p.printf("\n%s\n%s\n", p.section.Render(title), p.muted.Render(strings.Repeat("-", ruleWidth)))
}

// KV prints "key: value".
func (p *Printer) KV(key string, value any) {
	p.printf("%s %v\n", p.key.Render(key+":"), value)
}

// Line prints plain text.
func (p *Printer) Line(format string, args ...any) {
	p.printf(format+"\n", args...)
}

// Bullet prints an indented list item.
func (p *Printer) Bullet(format string, args ...any) {
	p.printf("  - "+format+"\n", args...)
}

// Block prints wrapped, indented body text.
func (p *Printer) Block(text string) {
	p.printf("%s\n", p.body.Render(strings.TrimSpace(text)))
}

// Success prints a confirmation.
func (p *Printer) Success(format string, args ...any) {
	p.printf("%s\n", p.success.Render("OK "+fmt.Sprintf(format, args...)))
}

// Warn prints a non-fatal problem.
func (p *Printer) Warn(format string, args ...any) {
	p.printf("%s\n", p.warn.Render("! "+fmt.Sprintf(format, args...)))
}

// Error prints an error.
func (p *Printer) Error(err error) {
	p.printf("%s\n", p.fail.Render("Error: "+err.Error()))
}

// Muted prints de-emphasized text.
func (p *Printer) Muted(format string, args ...any) {
	p.printf("%s\n", p.muted.Render(fmt.Sprintf(format, args...)))
}

// Sources lists retrieved documents with their similarity.
func (p *Printer) Sources(docs []domain.ScoredDocument) {
	for i, d := range docs {
		p.printf("  %d. %s %s\n", i+1, d.Title, p.muted.Render(fmt.Sprintf("(similarity %.4f)", d.Similarity)))
	}
}

// Documents lists knowledge base entries.
func (p *Printer) Documents(docs []domain.Document) {
	for _, d := range docs {
		p.printf("  [%s] %s %s\n", d.ID, d.Title, p.muted.Render("("+d.Category+")"))
	}
}

func (p *Printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}
