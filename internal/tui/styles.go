package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/robometrics/internal/render"
)

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	normal   lipgloss.Style
	value    lipgloss.Style
	label    lipgloss.Style
	errText  lipgloss.Style
	key      lipgloss.Style
	hint     lipgloss.Style
	panel    lipgloss.Style
}

func newStyles(pal render.Palette) styles {
	fg := lipgloss.Color(pal.Foreground)
	muted := lipgloss.Color(pal.Grid)
	primary := lipgloss.Color(pal.Hex(0))
	accent := lipgloss.Color(pal.Hex(4))
	errColor := lipgloss.Color(pal.Hex(1))

	return styles{
		title:    lipgloss.NewStyle().Foreground(primary).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(muted),
		cursor:   lipgloss.NewStyle().Foreground(primary).Bold(true),
		selected: lipgloss.NewStyle().Foreground(fg).Bold(true),
		normal:   lipgloss.NewStyle().Foreground(muted),
		value:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		label:    lipgloss.NewStyle().Foreground(muted),
		errText:  lipgloss.NewStyle().Foreground(errColor),
		key:      lipgloss.NewStyle().Foreground(primary).Bold(true),
		hint:     lipgloss.NewStyle().Foreground(muted).Italic(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
	}
}
