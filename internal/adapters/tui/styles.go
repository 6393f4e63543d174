package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Private brand colors.
	colorIris  = lipgloss.Color("#5D3FD3")
	colorSlate = lipgloss.Color("#667085")
	colorWhite = lipgloss.Color("#FFFFFF")
	colorGreen = lipgloss.Color("42")
	colorRed   = lipgloss.Color("196")
)

// styles are bound to the renderer of one output so color support is detected per writer.
type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	name     lipgloss.Style
	artifact lipgloss.Style
	border   lipgloss.Style
	empty    lipgloss.Style
	done     lipgloss.Style
	cached   lipgloss.Style
	failed   lipgloss.Style
	running  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(colorIris).
			Foreground(colorWhite),
		header: r.NewStyle().
			Foreground(colorIris).
			Bold(true).
			Padding(0, 1),
		cell: r.NewStyle().
			Padding(0, 1),
		name: r.NewStyle().
			Foreground(colorGreen).
			Padding(0, 1),
		artifact: r.NewStyle().
			Foreground(colorSlate).
			Padding(0, 1),
		border: r.NewStyle().
			Foreground(colorSlate),
		empty: r.NewStyle().
			Foreground(colorSlate).
			Faint(true),
		done:    r.NewStyle().Foreground(colorGreen),
		cached:  r.NewStyle().Foreground(colorSlate),
		failed:  r.NewStyle().Foreground(colorRed).Bold(true),
		running: r.NewStyle().Foreground(colorIris),
	}
}
