package app

import (
	"log/slog"
	"time"

	"ar-viewfinder.klederson.com/internal/config"
	"ar-viewfinder.klederson.com/internal/geo"
	"ar-viewfinder.klederson.com/internal/radar"
	"ar-viewfinder.klederson.com/internal/sensor"
	"ar-viewfinder.klederson.com/internal/tracker"
	"ar-viewfinder.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	tracker *tracker.Tracker
	sweep   *radar.Sweep
	source  sensor.Source
	history *RangeRing
}

// AppModel is the root Bubble Tea model of the viewfinder.
type AppModel struct {
	width  int
	height int

	sampling bool
	detail   bool
	maxRange float64  // radar edge in baseUnit
	baseUnit geo.Unit // unit maxRange was configured in
	lastErr  string

	shared *shared

	// Cached snapshot
	reading tracker.Reading
}

// New creates a new AppModel reading samples from src into trk.
// maxRange is the radar edge in the tracker's current unit.
func New(trk *tracker.Tracker, src sensor.Source, maxRange float64) AppModel {
	return AppModel{
		sampling: true,
		maxRange: maxRange,
		baseUnit: trk.Unit(),
		shared: &shared{
			tracker: trk,
			sweep:   radar.NewSweep(),
			source:  src,
			history: NewRangeRing(config.HistorySize),
		},
		reading: trk.Reading(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		staleCmd(),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.shared.sweep.Update()
		m.reading = m.shared.tracker.Reading()
		return m, tickCmd()

	case StaleMsg:
		if m.shared.tracker.Expire(config.FixTimeout, config.HeadingTimeout) {
			m.reading = m.shared.tracker.Reading()
		}
		return m, staleCmd()

	case sensor.LocationSampleMsg:
		if m.sampling {
			m.shared.tracker.OnLocationSample(msg.Point)
			m.reading = m.shared.tracker.Reading()
			m.shared.history.Push(m.reading.Range)
			m.lastErr = ""
		}
		return m, nil

	case sensor.HeadingSampleMsg:
		if m.sampling {
			m.shared.tracker.OnHeadingSample(msg.Degrees)
			m.reading = m.shared.tracker.Reading()
		}
		return m, nil

	case sensor.SourceErrorMsg:
		slog.Warn("source error", "source", msg.Source, "err", msg.Err)
		m.lastErr = msg.Error()
		return m, nil

	case sensor.SourceDoneMsg:
		slog.Info("source finished", "source", msg.Source)
		m.lastErr = msg.Source + " finished"
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.stopSource()
		return m, tea.Quit

	case "p", "P":
		m.sampling = !m.sampling

	case "d", "D":
		m.detail = !m.detail

	case "u", "U":
		next := geo.NM
		if m.shared.tracker.Unit() == geo.NM {
			next = geo.KM
		}
		m.shared.tracker.SetUnit(next)
		// the sparkline would mix units otherwise
		m.shared.history.Reset()
		m.reading = m.shared.tracker.Reading()
	}

	return m, nil
}

// RadarRange returns the radar edge distance in the current unit.
func (m AppModel) RadarRange() float64 {
	return geo.ConvertDistance(m.maxRange, m.baseUnit, m.reading.Unit)
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing viewfinder..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 12 {
		bodyH = 12
	}

	leftW := m.width * 2 / 3
	if leftW < 30 {
		leftW = 30
	}
	sideW := m.width - leftW
	if sideW < 24 {
		sideW = 24
		leftW = m.width - sideW
	}

	vfH := bodyH / 3
	if vfH < 7 {
		vfH = 7
	}
	radarH := bodyH - vfH

	r := m.reading
	maxRange := m.RadarRange()

	menuBar := ui.RenderMenuBar(m.width, m.sourceName(), m.sampling)

	vfContent := ui.RenderViewfinder(leftW-4, vfH-2, r, config.FieldOfView)
	viewfinder := ui.RenderViewfinderPanel(leftW, vfH, vfContent, r.InView)

	innerW := leftW - 4
	innerH := radarH - 4
	if innerW < 5 {
		innerW = 5
	}
	if innerH < 3 {
		innerH = 3
	}
	radarContent := radar.Render(innerW, innerH, r, maxRange, m.shared.sweep)
	legend := radar.RenderLegend(innerW)
	radarPanel := ui.RenderRadarPanel(leftW, radarH, radarContent, legend)

	var side string
	if m.detail {
		side = ui.RenderDetailPanel(r, sideW, bodyH, maxRange, m.shared.history.Values())
	} else {
		side = ui.RenderPOIPanel(r, sideW, bodyH)
	}

	statusBar := ui.RenderStatusBar(m.width, m.sampling, r,
		m.shared.sweep.Degrees(), maxRange, m.lastErr)

	return ui.ComposeLayout(menuBar, viewfinder, radarPanel, side, statusBar)
}

// StartSource starts the sample source. Must be called before p.Run().
func (m *AppModel) StartSource(p sensor.Sender) error {
	if m.shared.source == nil {
		return nil
	}
	slog.Info("starting source", "source", m.shared.source.Name())
	return m.shared.source.Start(p)
}

func (m *AppModel) stopSource() {
	if m.shared.source != nil {
		m.shared.source.Stop()
	}
}

func (m AppModel) sourceName() string {
	if m.shared.source == nil {
		return "none"
	}
	return m.shared.source.Name()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func staleCmd() tea.Cmd {
	return tea.Tick(config.StaleInterval, func(t time.Time) tea.Msg {
		return StaleMsg(t)
	})
}
