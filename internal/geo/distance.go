package geo

import (
	"fmt"
	"math"
	"strings"
)

// Unit selects the output unit of Distance.
type Unit int

const (
	KM Unit = iota
	NM
)

func (u Unit) String() string {
	if u == NM {
		return "nm"
	}
	return "km"
}

// ParseUnit accepts "km" or "nm" in any case.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "km", "k":
		return KM, nil
	case "nm", "n":
		return NM, nil
	}
	return KM, fmt.Errorf("unknown distance unit %q", s)
}

const (
	statuteMilesPerDegree = 60 * 1.1515
	kmPerStatuteMile      = 1.609344
	nmPerStatuteMile      = 0.8684
)

// Distance returns the great-circle distance between two points using the
// spherical law of cosines.
func Distance(p1, p2 GeoPoint, unit Unit) float64 {
	theta := p1.Longitude - p2.Longitude
	lat1 := degToRad(p1.Latitude)
	lat2 := degToRad(p2.Latitude)

	cosD := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(degToRad(theta))
	// rounding can push identical points just past 1
	cosD = math.Max(-1, math.Min(1, cosD))

	dist := radToDeg(math.Acos(cosD)) * statuteMilesPerDegree

	if unit == NM {
		return dist * nmPerStatuteMile
	}
	return dist * kmPerStatuteMile
}

// ConvertDistance converts a distance between units using the same constants
// as Distance.
func ConvertDistance(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	if to == NM {
		return v / kmPerStatuteMile * nmPerStatuteMile
	}
	return v / nmPerStatuteMile * kmPerStatuteMile
}
