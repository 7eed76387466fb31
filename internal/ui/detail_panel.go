package ui

import (
	"fmt"
	"strings"

	"ar-viewfinder.klederson.com/internal/geo"
	"ar-viewfinder.klederson.com/internal/tracker"
	"github.com/charmbracelet/lipgloss"
)

// RenderDetailPanel renders the diagnostics panel: POI, theoretical and real
// azimuth, device position, window bounds, range history and a compass.
func RenderDetailPanel(r tracker.Reading, width, height int, maxRange float64, rangeHistory []float64) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("DETAIL")
	escHint := StyleHelp.Render("[D]")
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(escHint))) + escHint

	sep := StyleRadarRing.Render(strings.Repeat("-", innerW))

	lines := []string{titleLine, sep, ""}

	lines = append(lines, "  "+StylePOIName.Render(truncRunes(r.POI.FullName, innerW-2)))
	lines = append(lines, "")

	fields := []struct{ label, value string }{
		{"Target", r.POI.Location.String()},
		{"Bearing", bearingText(r.Bearing, r.HasFix)},
		{"Heading", bearingText(r.Heading, r.HasHeading)},
		{"Window", windowText(r)},
		{"Position", positionText(r)},
		{"Range", rangeText(r)},
	}

	for _, f := range fields {
		label := StyleLabel.Render(fmt.Sprintf("  %-10s", f.label))
		value := StyleValue.Render(f.value)
		lines = append(lines, label+value)
	}

	lines = append(lines, "")

	// Range sparkline
	if len(rangeHistory) > 0 {
		sparkW := innerW - 4
		if sparkW < 10 {
			sparkW = 10
		}
		lines = append(lines, StyleLabel.Render("  Range History:"))
		spark := renderSparkline(rangeHistory, sparkW)
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
		lines = append(lines, "")
	}

	// Compass
	usedLines := len(lines)
	compassH := height - usedLines - 4 // leave room for label + border
	if compassH < 5 {
		compassH = 5
	}
	compassW := innerW
	if compassW > compassH*3 {
		compassW = compassH * 3 // keep roughly proportional
	}

	distFrac := 1.0
	if maxRange > 0 {
		distFrac = r.Range / maxRange
	}

	if r.HasFix {
		compass := RenderCompass(compassW, compassH, r, distFrac)
		if compass != "" {
			pad := (innerW - compassW) / 2
			if pad < 0 {
				pad = 0
			}
			prefix := strings.Repeat(" ", pad)
			for _, cl := range strings.Split(compass, "\n") {
				lines = append(lines, prefix+cl)
			}
		}

		dirLabel := fmt.Sprintf("%s  %s  %s", geo.CompassPoint(r.Bearing), r.RangeStr, turnText(r))
		distPad := (innerW - lipgloss.Width(dirLabel)) / 2
		if distPad < 0 {
			distPad = 0
		}
		lines = append(lines, strings.Repeat(" ", distPad)+StyleValue.Render(dirLabel))
	}

	// Pad to fill height
	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 {
		lines = lines[:height-2]
	}

	content := strings.Join(lines, "\n")
	return StylePanelActive.Width(width - 2).Height(height - 2).Render(content)
}

func bearingText(deg float64, ok bool) string {
	if !ok {
		return "--"
	}
	return fmt.Sprintf("%.1fdeg %s", deg, geo.CompassPoint(deg))
}

func windowText(r tracker.Reading) string {
	if !r.HasFix {
		return "--"
	}
	return r.Window.String()
}

func positionText(r tracker.Reading) string {
	if !r.HasFix {
		return "no fix"
	}
	if r.FixStale {
		return r.Location.String() + " (stale)"
	}
	return r.Location.String()
}

func rangeText(r tracker.Reading) string {
	if !r.HasFix {
		return "--"
	}
	return r.RangeStr
}

// turnText says which way to turn to bring the POI into view.
func turnText(r tracker.Reading) string {
	if !r.HasHeading {
		return ""
	}
	if r.InView {
		return "in view"
	}
	rel := geo.RelativeBearing(r.Heading, r.Bearing)
	if rel < 0 {
		return fmt.Sprintf("turn left %.0fdeg", -rel)
	}
	return fmt.Sprintf("turn right %.0fdeg", rel)
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	// Take last `width` values
	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	values = values[start:]

	// Find min/max for scaling
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	rng := maxV - minV
	if rng <= 0 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}

	return sb.String()
}

func truncRunes(s string, w int) string {
	r := []rune(s)
	if w < 0 {
		w = 0
	}
	if len(r) > w {
		return string(r[:w])
	}
	return s
}
