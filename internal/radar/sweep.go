package radar

import (
	"math"
	"time"

	"ar-viewfinder.klederson.com/internal/config"
)

// Sweep manages the rotating sweep line state.
type Sweep struct {
	Angle     float64 // Current screen angle in radians [0, 2π)
	StartTime time.Time
}

// NewSweep creates a new sweep starting straight up.
func NewSweep() *Sweep {
	return &Sweep{
		Angle:     0,
		StartTime: time.Now(),
	}
}

// Update advances the sweep angle based on elapsed time.
func (s *Sweep) Update() {
	s.UpdateAt(time.Now())
}

// UpdateAt advances the sweep angle to its position at now.
func (s *Sweep) UpdateAt(now time.Time) {
	elapsed := now.Sub(s.StartTime).Seconds()
	rps := float64(config.SweepSpeedRPM) / 60.0 // rotations per second
	s.Angle = math.Mod(elapsed*rps*2*math.Pi, 2*math.Pi)
}

// Degrees returns the current sweep angle in degrees.
func (s *Sweep) Degrees() float64 {
	return s.Angle * 180 / math.Pi
}

// Intensity returns the glow intensity [0, 1] for a given cell angle.
// The sweep has a trailing glow of SweepTrailDeg degrees.
func (s *Sweep) Intensity(cellAngle float64) float64 {
	// how far behind the sweep this angle is
	diff := NormalizeAngle(s.Angle - cellAngle)

	trailRad := DegToRad(config.SweepTrailDeg)
	if diff > trailRad {
		return 0
	}

	// Linear falloff: 1.0 at sweep head → 0.0 at trail end
	return 1.0 - diff/trailRad
}
