package ui

import (
	"fmt"
	"strings"

	"ar-viewfinder.klederson.com/internal/tracker"
	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, sampling bool, r tracker.Reading, sweepDeg, maxRange float64, lastErr string) string {
	status := ""
	switch {
	case !sampling:
		status = StyleStatusPaused.Render("[PAUSED]")
	case !r.HasFix:
		status = StyleStatusPaused.Render("[NO FIX]")
	case r.FixStale:
		status = StyleStatusPaused.Render("[STALE]")
	default:
		status = StyleStatusLive.Render("[LIVE]")
	}

	heading := "---"
	if r.HasHeading {
		heading = fmt.Sprintf("%03.0f", r.Heading)
	}

	info := fmt.Sprintf(" Heading: %sdeg  Sweep: %ddeg  Range: 0-%.0f%s",
		heading, int(sweepDeg), maxRange, r.Unit)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)
	if lastErr != "" {
		content += "  " + StyleStatusError.Render(lastErr)
	}

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
