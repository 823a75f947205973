package views

import (
	"refreshnow/internal/refresh"
	"refreshnow/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// ColorForPhase styles an edge phase label.
func ColorForPhase(p refresh.Phase) lipgloss.Style {
	sStyle := styles.StatusStyle
	switch p {
	case refresh.PhasePulling:
		return sStyle.Foreground(lipgloss.Color("220")) // Gold
	case refresh.PhaseCommitted:
		return sStyle.Foreground(lipgloss.Color("46")) // Green
	}
	return sStyle.Foreground(lipgloss.Color("#666"))
}

// RenderPhases renders both edge phases on one line.
func RenderPhases(start, end refresh.Phase) string {
	return lipgloss.JoinHorizontal(lipgloss.Left,
		"top: ", ColorForPhase(start).Render(start.String()),
		"  bottom: ", ColorForPhase(end).Render(end.String()),
	)
}
