// Package trace records the rule applications of a reduction and reports them.
package trace

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/algebra/internal/presentation/tui"
	"github.com/aretw0/algebra/pkg/domain"
)

// Step is one rule application.
type Step struct {
	Rule   string
	Tag    domain.Tag
	Depth  int
	Before string
	After  string
}

// Recorder collects the steps of reductions through lifecycle hooks.
type Recorder struct {
	mu    sync.Mutex
	steps []Step
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Hooks returns the hooks feeding the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRuleApplied: func(_ context.Context, e *domain.RuleEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.steps = append(r.steps, Step{
				Rule:   e.Rule,
				Tag:    e.Tag,
				Depth:  e.Depth,
				Before: e.Before,
				After:  e.After,
			})
		},
	}
}

// Steps returns the recorded steps in the order the rules finished.
func (r *Recorder) Steps() []Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Step(nil), r.steps...)
}

// Markdown renders the steps as a report headed by the input and the result.
func (r *Recorder) Markdown(input, result string) string {
	steps := r.Steps()

	var sb strings.Builder
	sb.WriteString("# Reduction\n\n")
	fmt.Fprintf(&sb, "- **Input:** `%s`\n", input)
	fmt.Fprintf(&sb, "- **Result:** `%s`\n", result)
	fmt.Fprintf(&sb, "- **Steps:** %d\n\n", len(steps))
	if len(steps) == 0 {
		sb.WriteString("The expression was already canonical.\n")
		return sb.String()
	}

	sb.WriteString("| # | Rule | Depth | Before | After |\n")
	sb.WriteString("|---|------|-------|--------|-------|\n")
	for i, s := range steps {
		fmt.Fprintf(&sb, "| %d | %s | %d | `%s` | `%s` |\n",
			i+1, strings.TrimPrefix(s.Rule, "Algebra."), s.Depth, cell(s.Before), cell(s.After))
	}
	return sb.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// WritePlain writes one line per step, indented by depth and colored by style.
func (r *Recorder) WritePlain(w io.Writer, style *tui.Style) {
	for _, s := range r.Steps() {
		indent := strings.Repeat("  ", max(s.Depth-1, 0))
		fmt.Fprintf(w, "%s%s %s %s %s\n", indent, style.Rule(s.Rule), style.Before(s.Before), style.Faint("=>"), style.After(s.After))
	}
}
