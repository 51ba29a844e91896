// Package ui renders the roster model for the terminal.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Club palette.
var (
	ColorAccent  = lipgloss.Color("#2CD7C7")
	ColorPrimary = lipgloss.Color("#20B9B4")
	ColorBorder  = lipgloss.Color("#16858E")
	ColorMuted   = lipgloss.Color("#6C8A94")
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles holds the lipgloss styles a Renderer uses.
type Styles struct {
	Title       lipgloss.Style
	Index       lipgloss.Style
	Name        lipgloss.Style
	Muted       lipgloss.Style
	Role        lipgloss.Style
	Participant lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Box         lipgloss.Style
}

// NewStyles builds styles bound to w. With color off every style renders
// plain text.
func NewStyles(w io.Writer, color bool) Styles {
	lr := lipgloss.NewRenderer(w)
	if !color {
		lr.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Title:       lr.NewStyle().Bold(true).Foreground(ColorAccent),
		Index:       lr.NewStyle().Foreground(ColorMuted),
		Name:        lr.NewStyle().Bold(true),
		Muted:       lr.NewStyle().Foreground(ColorMuted),
		Role:        lr.NewStyle().Foreground(ColorPrimary),
		Participant: lr.NewStyle().Foreground(ColorMuted).Italic(true),
		Success:     lr.NewStyle().Foreground(ColorSuccess),
		Warning:     lr.NewStyle().Foreground(ColorWarning),
		Error:       lr.NewStyle().Foreground(ColorError),
		Box: lr.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
	}
}
