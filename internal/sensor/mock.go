package sensor

import (
	"context"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"ar-viewfinder.klederson.com/internal/config"
	"ar-viewfinder.klederson.com/internal/geo"
)

// MockSource simulates a user walking around the POI while panning the
// device left and right, for demo mode.
type MockSource struct {
	poi      geo.GeoPoint
	sender   Sender
	running  atomic.Bool
	cancel   context.CancelFunc
	interval time.Duration

	radius    float64 // Walk radius in degrees of latitude
	walkSpeed float64 // Radians of the walk circle per second
	panSpan   float64 // Half-width of the panning sweep in degrees
	panSpeed  float64 // Panning angular frequency in radians per second
	phase     float64
}

// NewMockSource creates a mock source circling poi.
func NewMockSource(poi geo.GeoPoint) *MockSource {
	return &MockSource{
		poi:       poi,
		interval:  config.MockInterval,
		radius:    0.004 + rand.Float64()*0.006, // ~0.4 to 1.1 km
		walkSpeed: 0.01 + rand.Float64()*0.01,
		panSpan:   30 + rand.Float64()*30,
		panSpeed:  0.3 + rand.Float64()*0.3,
		phase:     rand.Float64() * 2 * math.Pi,
	}
}

func (s *MockSource) Name() string { return config.SourceDemo }

// Start begins the mock source.
func (s *MockSource) Start(snd Sender) error {
	s.sender = snd
	s.running.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *MockSource) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	t := 0.0
	step := s.interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !s.running.Load() {
				return
			}
			t += step
			s.emit(t, now)
		}
	}
}

// emit sends one location (every second) and one heading sample for time t.
func (s *MockSource) emit(t float64, now time.Time) {
	pos := s.positionAt(t)
	if math.Mod(t, 1.0) < s.interval.Seconds() {
		s.sender.Send(LocationSampleMsg{Point: pos, Source: s.Name(), Time: now})
	}

	heading := s.headingAt(t, pos) + (rand.Float64()-0.5)*1.5
	s.sender.Send(HeadingSampleMsg{Degrees: geo.NormalizeDegrees(heading), Source: s.Name(), Time: now})
}

// positionAt returns the walker position on its circle around the POI.
func (s *MockSource) positionAt(t float64) geo.GeoPoint {
	a := s.phase + t*s.walkSpeed
	lonScale := math.Cos(s.poi.Latitude * math.Pi / 180)
	if lonScale < 0.01 {
		lonScale = 0.01
	}
	return geo.NewGeoPoint(
		s.poi.Latitude+s.radius*math.Cos(a),
		s.poi.Longitude+s.radius*math.Sin(a)/lonScale,
	)
}

// headingAt pans around the true bearing so the POI drifts in and out of view.
func (s *MockSource) headingAt(t float64, pos geo.GeoPoint) float64 {
	return geo.Bearing(pos, s.poi) + s.panSpan*math.Sin(t*s.panSpeed)
}

// Stop halts the mock source.
func (s *MockSource) Stop() {
	s.running.Store(false)
	if s.cancel != nil {
		s.cancel()
	}
}
