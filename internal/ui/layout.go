package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout stacks the viewfinder over the radar on the left, puts the
// side panel on the right, with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, viewfinder, radarPanel, sidePanel, statusBar string) string {
	left := lipgloss.JoinVertical(lipgloss.Left, viewfinder, radarPanel)
	middle := lipgloss.JoinHorizontal(lipgloss.Top, left, sidePanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
