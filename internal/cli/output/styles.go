package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	ColorAccent  = lipgloss.Color("#2CD7C7")
	ColorHeading = lipgloss.Color("#20B9B4")
	ColorSuccess = lipgloss.Color("#2ECC71")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorInfo    = lipgloss.Color("#5DADE2")
	ColorMuted   = lipgloss.Color("#7F8C8D")
)

// Styles is the set of styles a Renderer hands out.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Path    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(ColorAccent),
		Header2: r.NewStyle().Bold(true).Foreground(ColorHeading),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(ColorMuted),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Error:   r.NewStyle().Foreground(ColorError),
		Info:    r.NewStyle().Foreground(ColorInfo),
		Path:    r.NewStyle().Bold(true).Underline(true),

		StatusSuccess: r.NewStyle().SetString("✓").Foreground(ColorSuccess),
		StatusFailed:  r.NewStyle().SetString("✗").Foreground(ColorError),
	}
}
