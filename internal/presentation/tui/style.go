package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Style colors CLI output. It degrades to plain text when w is not a
// terminal or NO_COLOR is set.
type Style struct {
	out *termenv.Output
}

// NewStyle creates a Style for w.
func NewStyle(w io.Writer) *Style {
	return &Style{out: termenv.NewOutput(w)}
}

// Rule renders a rule name.
func (s *Style) Rule(name string) string {
	return s.out.String(name).Foreground(s.out.Color("#a78bfa")).Bold().String()
}

// Before renders the expression a rule rewrote.
func (s *Style) Before(expr string) string {
	return s.out.String(expr).Foreground(s.out.Color("#f87171")).String()
}

// After renders the expression a rule produced.
func (s *Style) After(expr string) string {
	return s.out.String(expr).Foreground(s.out.Color("#4ade80")).String()
}

// Faint renders secondary information.
func (s *Style) Faint(text string) string {
	return s.out.String(text).Faint().String()
}
