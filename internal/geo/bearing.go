package geo

import (
	"fmt"
	"math"
)

// Bearing returns the direction from one point to another in degrees [0, 360),
// 0=north, increasing clockwise.
//
// It is a flat tangent-plane approximation that treats latitude and longitude
// deltas as planar axes, which is good enough at city scale. The quadrant is
// picked from the signs of the deltas rather than with Atan2.
//
// Degenerate inputs do not panic. When the latitudes are equal the raw phi
// angle is returned: 90 if the longitudes differ, 0 if the points coincide.
// When only the longitudes are equal the result is 0 whichever way the target
// lies.
func Bearing(from, to GeoPoint) float64 {
	dX := to.Latitude - from.Latitude
	dY := to.Longitude - from.Longitude

	phi := radToDeg(math.Atan(math.Abs(dY / dX)))
	if math.IsNaN(phi) {
		return 0
	}

	switch {
	case dX > 0 && dY > 0: // I
		return phi
	case dX < 0 && dY > 0: // II
		return 180 - phi
	case dX < 0 && dY < 0: // III
		return 180 + phi
	case dX > 0 && dY < 0: // IV
		// a phi below half an ulp of 360 would round up to 360
		return NormalizeDegrees(360 - phi)
	}

	return phi
}

// StrictBearing is Bearing but rejects the equal-latitude case instead of
// returning the fallback angle.
func StrictBearing(from, to GeoPoint) (float64, error) {
	if from.Latitude == to.Latitude {
		return 0, fmt.Errorf("bearing from %s to %s: %w", from, to, ErrInvalidInput)
	}
	return Bearing(from, to), nil
}

// NormalizeDegrees wraps an angle to [0, 360).
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// RelativeBearing returns the signed angle in (-180, 180] to turn from heading
// to bearing. Positive means turn clockwise.
func RelativeBearing(heading, bearing float64) float64 {
	d := NormalizeDegrees(bearing - heading)
	if d > 180 {
		d -= 360
	}
	return d
}

// CompassPoint returns the 8-point compass name for a bearing in degrees.
func CompassPoint(bearing float64) string {
	dirs := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int(math.Round(NormalizeDegrees(bearing)/45)) % 8
	return dirs[idx]
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
