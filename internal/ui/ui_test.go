package ui

import (
	"strings"
	"testing"

	"ar-viewfinder.klederson.com/internal/geo"
	"ar-viewfinder.klederson.com/internal/tracker"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReading(heading float64) tracker.Reading {
	w, _ := geo.ToleranceWindow(45, 5)
	return tracker.Reading{
		POI:        geo.NewPointOfInterest("Ahmet Yesevi Üniversitesi Ankara Yerleşkesi", "AYÜ Ankara", 39.924684, 32.830855),
		Location:   geo.NewGeoPoint(39.914684, 32.820855),
		HasFix:     true,
		HasHeading: true,
		Heading:    heading,
		Bearing:    45,
		Window:     w,
		InView:     w.Contains(heading),
		Range:      1.39,
		Unit:       geo.KM,
		RangeStr:   "1,39 km",
	}
}

func TestViewfinderInView(t *testing.T) {
	out := ansi.Strip(RenderViewfinder(60, 10, testReading(44), 60))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	for _, l := range lines {
		assert.Equal(t, 60, lipgloss.Width(l))
	}

	assert.Contains(t, out, "[X]")
	assert.Contains(t, out, "1,39 km")
	assert.Contains(t, out, "AYÜ Ankara")
	assert.Contains(t, out, "NE")
}

func TestViewfinderOutOfView(t *testing.T) {
	out := ansi.Strip(RenderViewfinder(60, 10, testReading(100), 60))
	assert.NotContains(t, out, "[X]")
	assert.NotContains(t, out, "1,39 km")
	assert.Contains(t, out, "<<< 55deg")

	out = ansi.Strip(RenderViewfinder(60, 10, testReading(0), 60))
	assert.Contains(t, out, "45deg >>>")
	assert.Contains(t, out, "N")
}

func TestViewfinderWaiting(t *testing.T) {
	r := testReading(45)
	r.HasHeading = false
	assert.Contains(t, ansi.Strip(RenderViewfinder(60, 10, r, 60)), "waiting for heading")

	r = testReading(45)
	r.HasFix = false
	assert.Contains(t, ansi.Strip(RenderViewfinder(60, 10, r, 60)), "waiting for location fix")

	assert.Empty(t, RenderViewfinder(10, 3, r, 60))
}

func TestColumnFor(t *testing.T) {
	assert.Equal(t, 30, columnFor(0, 60, 61))
	assert.Equal(t, 0, columnFor(-30, 60, 61))
	assert.Equal(t, 60, columnFor(30, 60, 61))
}

func TestPOIPanel(t *testing.T) {
	out := ansi.Strip(RenderPOIPanel(testReading(45), 30, 16))
	assert.Contains(t, out, "( X )")
	assert.Contains(t, out, "1,39 km")
	assert.Len(t, strings.Split(out, "\n"), 16)

	out = ansi.Strip(RenderPOIPanel(testReading(200), 30, 16))
	assert.NotContains(t, out, "( X )")
	assert.NotContains(t, out, "1,39 km")
	assert.Contains(t, out, "searching...")
}

func TestDetailPanel(t *testing.T) {
	out := ansi.Strip(RenderDetailPanel(testReading(200), 50, 40, 5, []float64{1.5, 1.45, 1.39}))
	assert.Contains(t, out, "Bearing")
	assert.Contains(t, out, "45.0deg NE")
	assert.Contains(t, out, "200.0deg S")
	assert.Contains(t, out, "[40.0, 50.0]")
	assert.Contains(t, out, "39.914684,32.820855")
	assert.Contains(t, out, "turn left 155deg")
	assert.Contains(t, out, "Range History")
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "_~^", renderSparkline([]float64{0, 0.8, 1}, 10))
	assert.Equal(t, "__", renderSparkline([]float64{3, 3}, 10))
	assert.Equal(t, "_^", renderSparkline([]float64{9, 0, 1}, 2))
	assert.Empty(t, renderSparkline(nil, 10))
}

func TestCompass(t *testing.T) {
	r := testReading(0)
	r.Bearing = 0
	r.Window = geo.Window{Min: 355, Max: 5}
	r.HasHeading = false

	out := ansi.Strip(RenderCompass(21, 9, r, 0.5))
	assert.Contains(t, out, "N")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "=")
	assert.NotContains(t, out, "o")
	assert.Len(t, strings.Split(out, "\n"), 9)

	r.HasHeading = true
	r.Heading = 90
	assert.Contains(t, ansi.Strip(RenderCompass(21, 9, r, 0.5)), "o")

	r.HasFix = false
	out = ansi.Strip(RenderCompass(21, 9, r, 0.5))
	assert.NotContains(t, out, "^")
	assert.NotContains(t, out, "=")

	assert.Empty(t, RenderCompass(5, 3, r, 0))
}

func TestBars(t *testing.T) {
	menu := ansi.Strip(RenderMenuBar(100, "demo", true))
	assert.Contains(t, menu, "AR-VIEWFINDER")
	assert.Contains(t, menu, "LIVE")

	status := ansi.Strip(RenderStatusBar(100, true, testReading(7), 90, 5, ""))
	assert.Contains(t, status, "[LIVE]")
	assert.Contains(t, status, "Heading: 007deg")
	assert.Contains(t, status, "0-5km")

	status = ansi.Strip(RenderStatusBar(100, false, testReading(7), 0, 5, "boom"))
	assert.Contains(t, status, "[PAUSED]")
	assert.Contains(t, status, "boom")
}
