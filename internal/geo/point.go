package geo

import "fmt"

// GeoPoint is a geographic coordinate in decimal degrees.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// NewGeoPoint creates a point from latitude and longitude in degrees.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Latitude: lat, Longitude: lon}
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}

// Valid reports whether the point lies inside the usual lat/lon ranges.
func (p GeoPoint) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// PointOfInterest is the single fixed target the viewfinder looks for.
type PointOfInterest struct {
	FullName  string
	ShortName string
	Location  GeoPoint
}

// NewPointOfInterest creates a POI. An empty short name falls back to the full name.
func NewPointOfInterest(fullName, shortName string, lat, lon float64) PointOfInterest {
	if shortName == "" {
		shortName = fullName
	}
	return PointOfInterest{
		FullName:  fullName,
		ShortName: shortName,
		Location:  NewGeoPoint(lat, lon),
	}
}
