package ui

import (
	"fmt"
	"math"

	"ar-viewfinder.klederson.com/internal/geo"
	"ar-viewfinder.klederson.com/internal/tracker"
	"github.com/charmbracelet/lipgloss"
)

var viewfinderStyles = map[cellKind]lipgloss.Style{
	cellReticle:  StyleHelp,
	cellMarker:   StylePOIMarker,
	cellRange:    StyleRange,
	cellHint:     StyleWarning,
	cellTick:     StyleTick,
	cellCardinal: StyleCardinal,
}

// RenderViewfinder renders the camera-like strip: a heading tape along the
// bottom and the POI marker with its range label when the POI is in view.
// fov is the horizontal field of view in degrees.
func RenderViewfinder(width, height int, r tracker.Reading, fov float64) string {
	if width < 20 || height < 5 {
		return ""
	}

	c := newCanvas(width, height)
	sceneH := height - 2
	midRow := sceneH / 2
	center := (width - 1) / 2

	// Reticle
	for row := 0; row < sceneH; row++ {
		c.put(center, row, ':', cellReticle)
	}

	switch {
	case !r.HasHeading:
		c.text(center, midRow, "waiting for heading", cellHint)
	case !r.HasFix:
		c.text(center, midRow, "waiting for location fix", cellHint)
	case r.InView:
		col := columnFor(geo.RelativeBearing(r.Heading, r.Bearing), fov, width)
		c.text(col, midRow-1, "\\|/", cellMarker)
		c.text(col, midRow, "[X]", cellMarker)
		c.text(col, midRow+1, r.POI.ShortName, cellRange)
		c.text(col, midRow+2, r.RangeStr, cellRange)
	default:
		rel := geo.RelativeBearing(r.Heading, r.Bearing)
		if rel < 0 {
			hint := fmt.Sprintf("<<< %.0fdeg", -rel)
			c.text(len([]rune(hint))/2+1, midRow, hint, cellHint)
		} else {
			hint := fmt.Sprintf("%.0fdeg >>>", rel)
			c.text(width-len([]rune(hint))/2-2, midRow, hint, cellHint)
		}
	}

	heading := 0.0
	if r.HasHeading {
		heading = r.Heading
	}
	drawTape(c, sceneH, heading, fov)

	return c.render(viewfinderStyles)
}

// drawTape draws the heading labels on row top and ticks on row top+1.
func drawTape(c *canvas, top int, heading, fov float64) {
	half := fov / 2
	start := int(math.Ceil((heading-half)/5)) * 5
	for deg := start; float64(deg) <= heading+half; deg += 5 {
		col := columnFor(float64(deg)-heading, fov, c.width)
		norm := int(geo.NormalizeDegrees(float64(deg)))

		tick := '\''
		if norm%10 == 0 {
			tick = '|'
		}
		c.put(col, top+1, tick, cellTick)

		switch {
		case norm%45 == 0:
			c.text(col, top, geo.CompassPoint(float64(norm)), cellCardinal)
		case norm%15 == 0:
			c.text(col, top, fmt.Sprintf("%d", norm), cellTick)
		}
	}
	c.put((c.width-1)/2, top+1, '^', cellCardinal)
}

// columnFor maps an angle relative to the heading to a strip column.
func columnFor(rel, fov float64, width int) int {
	return int(math.Round(float64(width-1)/2 + rel/fov*float64(width-1)))
}
