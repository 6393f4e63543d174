// Package tui renders build records for the terminal.
package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"go.trai.ch/extbuild/internal/core/domain"
)

const (
	colExtension = 0
	colArtifact  = 5
)

// StatusView writes the recorded builds as a table.
type StatusView struct {
	w      io.Writer
	styles styles
}

// NewStatusView creates a view writing to w. Color support is detected from w
// unless overridden by opts.
func NewStatusView(w io.Writer, opts ...termenv.OutputOption) *StatusView {
	return &StatusView{
		w:      w,
		styles: newStyles(lipgloss.NewRenderer(w, opts...)),
	}
}

// Render writes one row per build record.
func (v *StatusView) Render(infos []domain.BuildInfo) error {
	title := v.styles.title.Render("BUILDS")

	if len(infos) == 0 {
		_, err := fmt.Fprintf(v.w, "%s\n\n%s\n", title, v.styles.empty.Render("no builds recorded"))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(v.styles.border).
		Headers("EXTENSION", "TRIPLET", "TYPE", "BUILT", "DURATION", "ARTIFACT").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return v.styles.header
			case col == colExtension:
				return v.styles.name
			case col == colArtifact:
				return v.styles.artifact
			default:
				return v.styles.cell
			}
		})

	for _, info := range infos {
		t.Row(
			info.Extension,
			info.Triplet,
			info.BuildType,
			formatTimestamp(info.Timestamp),
			info.Duration.Round(time.Millisecond).String(),
			info.Artifact,
		)
	}

	_, err := fmt.Fprintf(v.w, "%s\n\n%s\n", title, t.String())
	return err
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(time.DateTime)
}
