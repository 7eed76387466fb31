package tracker

import (
	"log/slog"
	"sync"
	"time"

	"ar-viewfinder.klederson.com/internal/geo"
)

// SampleSink receives samples from location and heading sources.
type SampleSink interface {
	OnLocationSample(p geo.GeoPoint)
	OnHeadingSample(degrees float64)
}

// Reading is a consistent snapshot of the tracker state.
type Reading struct {
	POI geo.PointOfInterest

	Location   geo.GeoPoint
	HasFix     bool
	FixStale   bool
	Heading    float64 // Live azimuth in degrees [0, 360)
	HasHeading bool

	Bearing  float64    // Theoretical bearing to the POI in degrees [0, 360)
	Window   geo.Window // Tolerance window around Bearing
	InView   bool
	Range    float64
	Unit     geo.Unit
	RangeStr string // Range formatted for display, e.g. "1,25 km"
}

// Tracker turns location and heading samples into viewfinder readings.
// It is safe for concurrent use.
type Tracker struct {
	poi      geo.PointOfInterest
	accuracy float64
	format   *RangeFormatter
	now      func() time.Time

	mu          sync.RWMutex
	unit        geo.Unit
	location    geo.GeoPoint
	hasFix      bool
	fixTime     time.Time
	fixStale    bool
	heading     float64
	hasHeading  bool
	headingTime time.Time
	bearing     float64
	window      geo.Window
}

// New creates a tracker for poi. accuracy is the half-width of the tolerance
// window in degrees and must be inside (0, 180).
func New(poi geo.PointOfInterest, accuracy float64, unit geo.Unit, locale string) (*Tracker, error) {
	if err := geo.ValidateAccuracy(accuracy); err != nil {
		return nil, err
	}
	return &Tracker{
		poi:      poi,
		accuracy: accuracy,
		format:   NewRangeFormatter(locale),
		now:      time.Now,
		unit:     unit,
	}, nil
}

// OnLocationSample records a new device fix and recomputes the bearing to the POI.
func (t *Tracker) OnLocationSample(p geo.GeoPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.location = p
	t.hasFix = true
	t.fixStale = false
	t.fixTime = t.now()
	t.bearing = geo.Bearing(p, t.poi.Location)
	t.window = t.windowFor(t.bearing)

	slog.Debug("location sample",
		"lat", p.Latitude, "lon", p.Longitude,
		"bearing", t.bearing, "window", t.window.String())
}

// OnHeadingSample records a new compass heading in degrees.
func (t *Tracker) OnHeadingSample(degrees float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.heading = geo.NormalizeDegrees(degrees)
	t.hasHeading = true
	t.headingTime = t.now()
}

// windowFor cannot fail: accuracy was validated in New.
func (t *Tracker) windowFor(bearing float64) geo.Window {
	w, _ := geo.ToleranceWindow(bearing, t.accuracy)
	return w
}

// SetUnit changes the unit used for range readings.
func (t *Tracker) SetUnit(u geo.Unit) {
	t.mu.Lock()
	t.unit = u
	t.mu.Unlock()
}

// Unit returns the current range unit.
func (t *Tracker) Unit() geo.Unit {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.unit
}

// Accuracy returns the tolerance half-width in degrees.
func (t *Tracker) Accuracy() float64 {
	return t.accuracy
}

// POI returns the tracked point of interest.
func (t *Tracker) POI() geo.PointOfInterest {
	return t.poi
}

// Expire marks the fix stale and forgets the heading when they are older than
// the given timeouts. Returns true if anything changed.
func (t *Tracker) Expire(fixTimeout, headingTimeout time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	changed := false

	if t.hasFix && !t.fixStale && now.Sub(t.fixTime) > fixTimeout {
		t.fixStale = true
		changed = true
		slog.Info("location fix stale", "age", now.Sub(t.fixTime).Round(time.Second))
	}
	if t.hasHeading && now.Sub(t.headingTime) > headingTimeout {
		t.hasHeading = false
		changed = true
		slog.Info("heading lost", "age", now.Sub(t.headingTime).Round(time.Second))
	}
	return changed
}

// Reading returns a snapshot of the current state.
func (t *Tracker) Reading() Reading {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r := Reading{
		POI:        t.poi,
		Location:   t.location,
		HasFix:     t.hasFix,
		FixStale:   t.fixStale,
		Heading:    t.heading,
		HasHeading: t.hasHeading,
		Bearing:    t.bearing,
		Window:     t.window,
		Unit:       t.unit,
	}

	if t.hasFix {
		r.Range = geo.Distance(t.poi.Location, t.location, t.unit)
		r.RangeStr = t.format.Format(r.Range, t.unit)
	}
	r.InView = t.hasFix && !t.fixStale && t.hasHeading && t.window.Contains(t.heading)

	return r
}
