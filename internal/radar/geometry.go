package radar

import (
	"math"

	"ar-viewfinder.klederson.com/internal/config"
)

// CellDistance computes the distance from a cell to the radar center,
// accounting for terminal aspect ratio.
func CellDistance(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle computes the screen angle from center to a cell.
// Returns radians in [0, 2π), where 0=up, increasing clockwise.
func CellAngle(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	angle := math.Atan2(dx, -dy) // 0=up, clockwise
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// RingChar returns the appropriate character for a ring at the given angle.
func RingChar(angle float64) rune {
	sector := int(math.Round(NormalizeAngle(angle)/(math.Pi/4))) % 8

	switch sector {
	case 0, 4: // up, down
		return '-'
	case 1, 5:
		return '/'
	case 2, 6: // right, left
		return '|'
	case 3, 7:
		return '\\'
	default:
		return '.'
	}
}

// NormalizeAngle wraps an angle to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the shortest angular distance between two angles.
// Result is in [0, π].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// RangeToRadius converts a distance to radar units, pinning anything beyond
// maxRange to the edge.
func RangeToRadius(dist, maxRange, radarRadius float64) float64 {
	if dist > maxRange {
		return radarRadius
	}
	return (dist / maxRange) * radarRadius
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
