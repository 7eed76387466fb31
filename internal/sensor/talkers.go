package sensor

// LookupTalker returns a human-readable name for an NMEA 0183 talker ID.
func LookupTalker(id string) string {
	if name, ok := talkerNames[id]; ok {
		return name
	}
	return ""
}

var talkerNames = map[string]string{
	"GP": "GPS",
	"GL": "GLONASS",
	"GA": "Galileo",
	"GB": "BeiDou",
	"BD": "BeiDou",
	"GI": "NavIC",
	"GQ": "QZSS",
	"GN": "GNSS",
	"HC": "Compass",
	"HE": "Gyro",
	"HN": "Gyro",
	"II": "Instruments",
	"IN": "Navigation",
	"AG": "Autopilot",
	"AP": "Autopilot",
	"EC": "ECDIS",
	"YX": "Transducer",
}
