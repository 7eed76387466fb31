package ui

import (
	"math"

	"ar-viewfinder.klederson.com/internal/geo"
	"ar-viewfinder.klederson.com/internal/tracker"
	"github.com/charmbracelet/lipgloss"
)

// Line characters per 45 degree octant, starting at north and going clockwise.
var (
	ringRunes  = [8]rune{'-', '\\', '|', '/', '-', '\\', '|', '/'}
	shaftRunes = [8]rune{'|', '/', '-', '\\', '|', '/', '-', '\\'}
	tipRunes   = [8]rune{'^', '/', '>', '\\', 'v', '/', '<', '\\'}
)

const (
	ringSteps    = 90
	barbAngle    = 35.0
	longestArrow = 0.85
	shortArrow   = 0.3
)

func octant(deg float64) int {
	return int(math.Round(geo.NormalizeDegrees(deg)/45)) % 8
}

// compassFace maps compass angles onto an elliptical ring so the dial looks
// round with tall terminal cells.
type compassFace struct {
	cx, cy float64
	rx, ry float64
}

func (f compassFace) at(deg, frac float64) (int, int) {
	a := deg * math.Pi / 180
	col := int(math.Round(f.cx + frac*f.rx*math.Sin(a)))
	row := int(math.Round(f.cy - frac*f.ry*math.Cos(a)))
	return col, row
}

// RenderCompass renders a north-up dial for r: the ring with the tolerance
// window marked, an arrow pointing at the POI and an 'o' at the live heading.
// distFrac is the range as a fraction of the radar range; closer POIs get a
// longer, brighter arrow.
func RenderCompass(width, height int, r tracker.Reading, distFrac float64) string {
	if width < 9 || height < 5 {
		return ""
	}

	c := newCanvas(width, height)
	face := compassFace{
		cx: float64(width) / 2,
		cy: float64(height) / 2,
		rx: math.Max(float64(width)/2-2, 3),
		ry: math.Max(float64(height)/2-2, 2),
	}

	if r.HasFix {
		w := r.Window.Width()
		for d := 0.0; d <= w; d += 360.0 / ringSteps {
			col, row := face.at(r.Window.Min+d, 1)
			c.put(col, row, '=', cellWindow)
		}
	}
	for i := 0; i < ringSteps; i++ {
		deg := float64(i) * 360 / ringSteps
		col, row := face.at(deg, 1)
		c.putIfBlank(col, row, ringRunes[octant(deg)], cellRing)
	}

	for _, p := range []struct {
		deg   float64
		label string
	}{{0, "N"}, {90, "E"}, {180, "S"}, {270, "W"}} {
		col, row := face.at(p.deg, 1)
		switch p.deg {
		case 0:
			row--
		case 90:
			col++
		case 180:
			row++
		case 270:
			col--
		}
		c.text(col, row, p.label, cellCardinal)
	}

	cx, cy := face.at(0, 0)
	for row := cy - int(face.ry) + 1; row < cy+int(face.ry); row++ {
		c.putIfBlank(cx, row, ':', cellAxis)
	}
	for col := cx - int(face.rx) + 1; col < cx+int(face.rx); col++ {
		c.putIfBlank(col, cy, '.', cellAxis)
	}

	if r.HasHeading {
		col, row := face.at(r.Heading, 1)
		c.put(col, row, 'o', cellHeading)
	}

	distFrac = math.Max(0, math.Min(distFrac, 1))
	if r.HasFix {
		drawArrow(c, face, r.Bearing, longestArrow-(longestArrow-shortArrow)*distFrac)
	}
	c.put(cx, cy, '+', cellCardinal)

	arrowColor := lipgloss.Color(proximityColor(distFrac))
	if r.InView {
		arrowColor = ColorInView
	}
	return c.render(map[cellKind]lipgloss.Style{
		cellCardinal: lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true),
		cellArrow:    lipgloss.NewStyle().Foreground(arrowColor).Bold(true),
		cellHeading:  lipgloss.NewStyle().Foreground(ColorInView).Bold(true),
		cellWindow:   lipgloss.NewStyle().Foreground(ColorPOI),
		cellRing:     lipgloss.NewStyle().Foreground(ColorDimGreen),
		cellAxis:     lipgloss.NewStyle().Foreground(lipgloss.Color("#003300")),
	})
}

// drawArrow draws a shaft from the center toward bearing, reaching frac of
// the ring, with a head and two barbs.
func drawArrow(c *canvas, face compassFace, bearing, frac float64) {
	steps := int(math.Max(face.rx, face.ry) * frac)
	if steps < 2 {
		steps = 2
	}

	var tipCol, tipRow int
	for s := 1; s <= steps; s++ {
		tipCol, tipRow = face.at(bearing, frac*float64(s)/float64(steps))
		c.put(tipCol, tipRow, shaftRunes[octant(bearing)], cellArrow)
	}

	for _, side := range []float64{-1, 1} {
		a := bearing + 180 + side*barbAngle
		rad := a * math.Pi / 180
		col := tipCol + int(math.Round(math.Sin(rad)*1.5))
		row := tipRow - int(math.Round(math.Cos(rad)))
		c.put(col, row, shaftRunes[octant(a)], cellArrow)
	}
	c.put(tipCol, tipRow, tipRunes[octant(bearing)], cellArrow)
}

// proximityColor maps range to a green shade (brighter = closer).
func proximityColor(distFrac float64) string {
	switch {
	case distFrac < 0.2:
		return "#00FF41"
	case distFrac < 0.4:
		return "#00CC33"
	case distFrac < 0.6:
		return "#00AA22"
	case distFrac < 0.8:
		return "#008F11"
	}
	return "#005511"
}
