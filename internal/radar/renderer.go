package radar

import (
	"math"
	"strings"

	"ar-viewfinder.klederson.com/internal/config"
	"ar-viewfinder.klederson.com/internal/geo"
	"ar-viewfinder.klederson.com/internal/tracker"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorBright  = lipgloss.Color("#00FF41")
	colorMid     = lipgloss.Color("#008F11")
	colorDim     = lipgloss.Color("#004A0A")
	colorPOI     = lipgloss.Color("#00FFAA")
	colorInView  = lipgloss.Color("#FFCC00")
	colorWedge   = lipgloss.Color("#006B1A")
	colorNorth   = lipgloss.Color("#FF3300")
	colorLabelOn = lipgloss.Color("#FFE680")

	styleCenter   = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleRing     = lipgloss.NewStyle().Foreground(colorMid)
	styleDot      = lipgloss.NewStyle().Foreground(colorDim)
	styleWedge    = lipgloss.NewStyle().Foreground(colorWedge)
	stylePOI      = lipgloss.NewStyle().Foreground(colorPOI).Bold(true)
	styleInView   = lipgloss.NewStyle().Foreground(colorInView).Bold(true)
	styleNorth    = lipgloss.NewStyle().Foreground(colorNorth).Bold(true)
	styleLabel    = lipgloss.NewStyle().Foreground(colorPOI)
	styleLabelOn  = lipgloss.NewStyle().Foreground(colorLabelOn).Bold(true)
	styleLegPOI   = lipgloss.NewStyle().Foreground(colorPOI)
	styleLegView  = lipgloss.NewStyle().Foreground(colorInView)
	styleLegNorth = lipgloss.NewStyle().Foreground(colorNorth)
)

const maxLabelLen = 10

// marker is a symbol placed on the radar grid.
type marker struct {
	col, row int
	ch       string
	style    lipgloss.Style
}

// Render produces the heading-up radar as a styled string. The device faces
// the top of the display; the POI blip sits at its bearing relative to the
// heading, scaled by range.
func Render(width, height int, r tracker.Reading, maxRange float64, sweep *Sweep) string {
	if width < 10 || height < 5 {
		return ""
	}

	centerX := width / 2
	centerY := height / 2
	radius := float64(min(centerX-1, int(float64(centerY-1)/config.AspectRatio)))
	if radius < 3 {
		radius = 3
	}

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		ringRadii[i] = radius * float64(i+1) / float64(config.RingCount)
	}

	heading := 0.0
	if r.HasHeading {
		heading = r.Heading
	}
	halfWedge := DegToRad(r.Window.Width() / 2)

	markers, labelRow, labelCol, label := placeMarkers(r, heading, centerX, centerY, radius, maxRange, width)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if len(label) > 0 && row == labelRow && col >= labelCol && col < labelCol+len(label) {
				ch := string(label[col-labelCol])
				if r.InView {
					sb.WriteString(styleLabelOn.Render(ch))
				} else {
					sb.WriteString(styleLabel.Render(ch))
				}
				continue
			}
			sb.WriteString(renderCell(col, row, centerX, centerY, radius, ringRadii, halfWedge, sweep, markers))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// placeMarkers computes the north marker and POI blip cells and the POI label
// position.
func placeMarkers(r tracker.Reading, heading float64, centerX, centerY int, radius, maxRange float64, width int) (markers []marker, labelRow, labelCol int, label []rune) {
	northAngle := DegToRad(geo.NormalizeDegrees(-heading))
	nc, nr := polarToCell(northAngle, radius, centerX, centerY)
	markers = append(markers, marker{col: nc, row: nr, ch: "N", style: styleNorth})

	if !r.HasFix {
		return markers, 0, 0, nil
	}

	angle := DegToRad(geo.NormalizeDegrees(r.Bearing - heading))
	pc, pr := polarToCell(angle, RangeToRadius(r.Range, maxRange, radius), centerX, centerY)
	// The blip wins over the north marker when they overlap.
	if pc == nc && pr == nr {
		markers = markers[:0]
	}
	if r.InView {
		markers = append(markers, marker{col: pc, row: pr, ch: "X", style: styleInView})
	} else {
		markers = append(markers, marker{col: pc, row: pr, ch: "*", style: stylePOI})
	}

	label = []rune(r.POI.ShortName)
	if len(label) > maxLabelLen {
		label = label[:maxLabelLen]
	}

	// Try placing label to the right
	labelCol = pc + 2
	if labelCol+len(label) >= width {
		labelCol = pc - len(label) - 1
	}
	if labelCol < 0 {
		labelCol = 0
	}
	labelRow = pr
	if labelRow == nr && labelCol <= nc && nc < labelCol+len(label) {
		labelRow = pr + 1
	}

	return markers, labelRow, labelCol, label
}

func polarToCell(angle, dist float64, centerX, centerY int) (int, int) {
	col := centerX + int(math.Round(dist*math.Sin(angle)))
	row := centerY - int(math.Round(dist*math.Cos(angle)*config.AspectRatio))
	return col, row
}

func renderCell(col, row, centerX, centerY int, radius float64, ringRadii []float64, halfWedge float64, sweep *Sweep, markers []marker) string {
	for _, m := range markers {
		if col == m.col && row == m.row {
			return m.style.Render(m.ch)
		}
	}

	dist := CellDistance(col, row, centerX, centerY)
	angle := CellAngle(col, row, centerX, centerY)

	if dist > radius+0.5 {
		return " "
	}

	if col == centerX && row == centerY {
		return styleCenter.Render("+")
	}

	inWedge := halfWedge > 0 && AngleDiff(angle, 0) <= halfWedge

	if col == centerX && row < centerY {
		return styleWedge.Bold(true).Render("|")
	}

	for _, ringR := range ringRadii {
		if math.Abs(dist-ringR) < 0.8 {
			return renderSweepChar(RingChar(angle), sweep, angle)
		}
	}

	if dist <= radius {
		if inWedge {
			return styleWedge.Render(":")
		}
		return renderInteriorCell(sweep, angle)
	}

	return " "
}

func renderSweepChar(ch rune, sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleRing.Render(string(ch))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(ch))
}

func renderInteriorCell(sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleDot.Render(".")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(".")
}

func sweepColor(intensity float64) string {
	if intensity <= 0 {
		return ""
	}
	if intensity > 0.8 {
		return "#00FF41"
	}
	if intensity > 0.5 {
		return "#00CC33"
	}
	if intensity > 0.3 {
		return "#00AA22"
	}
	return "#005511"
}

// RenderLegend produces the radar legend line.
func RenderLegend(width int) string {
	legend := "   " +
		styleLegPOI.Render("* POI") +
		"  " +
		styleLegView.Render("X in view") +
		"  " +
		styleLegNorth.Render("N north")

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
