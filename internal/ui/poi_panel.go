package ui

import (
	"strings"

	"ar-viewfinder.klederson.com/internal/tracker"
	"github.com/charmbracelet/lipgloss"
)

var markerArt = []string{
	"  \\ | /  ",
	"--( X )--",
	"  / | \\  ",
}

// RenderPOIPanel renders the target panel. Only the in-view flag and the
// range label drive it: the marker and range show while the POI is in view
// and hide otherwise.
func RenderPOIPanel(r tracker.Reading, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}
	innerH := height - 2
	if innerH < 6 {
		innerH = 6
	}

	title := StylePanelTitle.Render("TARGET")
	separator := StyleRadarRing.Render(strings.Repeat("-", innerW))

	lines := []string{title, separator, ""}
	lines = append(lines, center(StylePOIName.Render(truncRunes(r.POI.ShortName, innerW)), innerW))
	lines = append(lines, "")

	if r.InView {
		for _, l := range markerArt {
			lines = append(lines, center(StylePOIMarker.Render(l), innerW))
		}
		lines = append(lines, "")
		lines = append(lines, center(StyleRange.Render(r.RangeStr), innerW))
	} else {
		for range markerArt {
			lines = append(lines, "")
		}
		lines = append(lines, "")
		lines = append(lines, center(StyleHelp.Render(searchText(r)), innerW))
	}

	for len(lines) < innerH {
		lines = append(lines, "")
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	content := strings.Join(lines, "\n")
	sty := StylePanelBorder
	if r.InView {
		sty = StylePanelActive
	}
	return sty.Width(width - 2).Height(innerH).Render(content)
}

func searchText(r tracker.Reading) string {
	switch {
	case !r.HasFix:
		return "no location fix"
	case r.FixStale:
		return "location stale"
	case !r.HasHeading:
		return "no heading"
	}
	return "searching..."
}

func center(s string, w int) string {
	pad := (w - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
