package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/extbuild/internal/core/domain"
)

// StepView writes one line per pipeline step once a build has ended.
type StepView struct {
	w      io.Writer
	styles styles
}

// NewStepView creates a view writing to w. Color support is detected from w
// unless overridden by opts.
func NewStepView(w io.Writer, opts ...termenv.OutputOption) *StepView {
	return &StepView{
		w:      w,
		styles: newStyles(lipgloss.NewRenderer(w, opts...)),
	}
}

// Render writes the steps in the order given.
func (v *StepView) Render(steps []domain.StepRecord) error {
	width := 0
	for _, s := range steps {
		width = max(width, lipgloss.Width(s.Name))
	}

	var b strings.Builder
	b.WriteString(v.styles.title.Render("STEPS"))
	b.WriteString("\n\n")

	for _, s := range steps {
		icon, style := v.marker(s.Outcome)
		fmt.Fprintf(&b, "%s %-*s  %s", style.Render(icon), width, s.Name, style.Render(string(s.Outcome)))
		if s.Outcome == domain.StepDone || s.Outcome == domain.StepFailed {
			b.WriteString(" " + v.styles.artifact.Render(s.Duration.Round(time.Millisecond).String()))
		}
		if s.Error != "" {
			b.WriteString("\n  " + v.styles.failed.Render(firstLine(s.Error)))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(v.w, b.String())
	return err
}

func (v *StepView) marker(o domain.StepOutcome) (string, lipgloss.Style) {
	switch o {
	case domain.StepDone:
		return "✓", v.styles.done
	case domain.StepCached:
		return "•", v.styles.cached
	case domain.StepFailed:
		return "✗", v.styles.failed
	default:
		return "…", v.styles.running
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
