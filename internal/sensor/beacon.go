package sensor

import (
	"encoding/binary"
	"errors"

	"ar-viewfinder.klederson.com/internal/geo"
)

// BeaconCompanyID is the manufacturer ID used by the companion beacon.
// 0xFFFF is reserved by the Bluetooth SIG for testing.
const BeaconCompanyID uint16 = 0xFFFF

const (
	beaconKindLocation byte = 0x01
	beaconKindHeading  byte = 0x02
)

var ErrBeaconPayload = errors.New("invalid beacon payload")

// Beacon is a decoded companion advertisement. Exactly one of HasPosition
// and HasHeading is set.
type Beacon struct {
	HasPosition bool
	Position    geo.GeoPoint
	HasHeading  bool
	Heading     float64
}

// DecodeBeacon parses manufacturer data from the companion beacon.
//
//	0x01 | lat int32 LE (deg*1e7) | lon int32 LE (deg*1e7)
//	0x02 | heading uint16 LE (centidegrees, < 36000)
func DecodeBeacon(data []byte) (Beacon, error) {
	if len(data) == 0 {
		return Beacon{}, ErrBeaconPayload
	}

	switch data[0] {
	case beaconKindLocation:
		if len(data) != 9 {
			return Beacon{}, ErrBeaconPayload
		}
		lat := float64(int32(binary.LittleEndian.Uint32(data[1:5]))) / 1e7
		lon := float64(int32(binary.LittleEndian.Uint32(data[5:9]))) / 1e7
		p := geo.NewGeoPoint(lat, lon)
		if !p.Valid() {
			return Beacon{}, ErrBeaconPayload
		}
		return Beacon{HasPosition: true, Position: p}, nil

	case beaconKindHeading:
		if len(data) != 3 {
			return Beacon{}, ErrBeaconPayload
		}
		cd := binary.LittleEndian.Uint16(data[1:3])
		if cd >= 36000 {
			return Beacon{}, ErrBeaconPayload
		}
		return Beacon{HasHeading: true, Heading: float64(cd) / 100}, nil
	}

	return Beacon{}, ErrBeaconPayload
}

// EncodeLocationBeacon builds a location payload.
func EncodeLocationBeacon(p geo.GeoPoint) []byte {
	b := make([]byte, 9)
	b[0] = beaconKindLocation
	binary.LittleEndian.PutUint32(b[1:5], uint32(int32(p.Latitude*1e7)))
	binary.LittleEndian.PutUint32(b[5:9], uint32(int32(p.Longitude*1e7)))
	return b
}

// EncodeHeadingBeacon builds a heading payload.
func EncodeHeadingBeacon(deg float64) []byte {
	b := make([]byte, 3)
	b[0] = beaconKindHeading
	cd := uint16(geo.NormalizeDegrees(deg)*100) % 36000
	binary.LittleEndian.PutUint16(b[1:3], cd)
	return b
}
