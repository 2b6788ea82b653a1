// Package report renders decisions for humans.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ahrav/go-review/internal/domain"
)

// Printer writes decision verdicts to a writer.
type Printer struct {
	w           io.Writer
	color       bool
	showReviews bool
	renderer    *lipgloss.Renderer

	accepted     lipgloss.Style
	rejected     lipgloss.Style
	insufficient lipgloss.Style
}

// Option customizes a Printer.
type Option func(*Printer)

// WithColor toggles the colored verdict label.
func WithColor(enabled bool) Option {
	return func(p *Printer) { p.color = enabled }
}

// WithReviews prints one "Review #i: s" line per score before the verdict.
func WithReviews(enabled bool) Option {
	return func(p *Printer) { p.showReviews = enabled }
}

// WithRenderer replaces the renderer detected from the writer, for example
// to force a color profile.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(p *Printer) { p.renderer = r }
}

// NewPrinter creates a printer for w. Color is detected from w's terminal
// capabilities, so redirected output stays plain.
func NewPrinter(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w}
	for _, opt := range opts {
		opt(p)
	}
	if p.renderer == nil {
		p.renderer = lipgloss.NewRenderer(w)
	}
	r := p.renderer
	p.accepted = r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	p.rejected = r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	p.insufficient = r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	return p
}

// Print writes the decision.
func (p *Printer) Print(d domain.Decision) error {
	if p.showReviews {
		for i, s := range d.Scores {
			if _, err := fmt.Fprintf(p.w, "Review #%d: %d\n", i, s); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(p.w, p.Verdict(d))
	return err
}

// Verdict returns the single verdict line for d.
func (p *Printer) Verdict(d domain.Decision) string {
	var label string
	var style lipgloss.Style
	switch d.Outcome {
	case domain.OutcomeAccepted:
		label, style = "Accepted", p.accepted
	case domain.OutcomeRejected:
		label, style = "Rejected", p.rejected
	default:
		return fmt.Sprintf("%s: no reviews for submission #%d %q",
			p.paint(p.insufficient, "Insufficient reviews"), d.PaperID, d.Title)
	}
	return fmt.Sprintf("%s submission #%d %q", p.paint(style, label), d.PaperID, d.Title)
}

func (p *Printer) paint(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}
