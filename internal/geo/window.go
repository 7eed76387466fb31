package geo

import "fmt"

// DefaultAccuracy is the half-width in degrees of the tolerance window.
const DefaultAccuracy = 5.0

// Window is an angular range [Min, Max] in degrees, both in [0, 360).
// Min > Max means the window wraps through north.
type Window struct {
	Min float64
	Max float64
}

// ToleranceWindow returns the window of half-width accuracy centered on bearing.
// Each bound is wrapped at most once, so accuracy must lie in (0, 180).
func ToleranceWindow(bearing, accuracy float64) (Window, error) {
	if err := ValidateAccuracy(accuracy); err != nil {
		return Window{}, err
	}

	minAngle := bearing - accuracy
	maxAngle := bearing + accuracy

	if minAngle < 0 {
		minAngle += 360
		// a tiny negative bound rounds to 360
		if minAngle >= 360 {
			minAngle = 0
		}
	}
	if maxAngle >= 360 {
		maxAngle -= 360
	}

	return Window{Min: minAngle, Max: maxAngle}, nil
}

// Wraps reports whether the window crosses 0°.
func (w Window) Wraps() bool {
	return w.Min > w.Max
}

// Contains reports whether azimuth is strictly inside the window.
func (w Window) Contains(azimuth float64) bool {
	return InWindow(w.Min, w.Max, azimuth)
}

// Width returns the angular size of the window in degrees.
func (w Window) Width() float64 {
	if w.Wraps() {
		return 360 - w.Min + w.Max
	}
	return w.Max - w.Min
}

func (w Window) String() string {
	return fmt.Sprintf("[%.1f, %.1f]", w.Min, w.Max)
}

// InWindow reports whether azimuth lies strictly between minAngle and maxAngle.
//
// A window with minAngle > maxAngle wraps through north and is checked as the
// two halves [0, maxAngle) and (minAngle, 360). The 0° seam is not a real edge,
// so an azimuth of exactly 0 is inside a wrapped window.
func InWindow(minAngle, maxAngle, azimuth float64) bool {
	if minAngle > maxAngle {
		return (azimuth >= 0 && azimuth < maxAngle) ||
			(azimuth > minAngle && azimuth < 360)
	}
	return azimuth > minAngle && azimuth < maxAngle
}
