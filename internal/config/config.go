package config

import "time"

const (
	// Default point of interest
	DefaultPOIName      = "Ahmet Yesevi Üniversitesi Ankara Yerleşkesi"
	DefaultPOIShortName = "AYÜ Ankara Yerleşkesi"
	DefaultPOILat       = 39.924684
	DefaultPOILon       = 32.830855

	// Geometry
	DefaultAccuracy = 5.0  // Tolerance window half-width in degrees
	DefaultUnit     = "km" // Range unit: km or nm
	DefaultLocale   = "de" // Locale of the range label
	DefaultMaxRange = 5.0  // Radar edge distance in the selected unit

	// Radar display
	AspectRatio   = 0.5  // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount     = 4    // Number of concentric rings
	SweepSpeedRPM = 20   // Sweep rotations per minute
	SweepTrailDeg = 45.0 // Sweep trail angle in degrees
	TargetFPS     = 30   // Target frames per second
	FieldOfView   = 60.0 // Horizontal field of view of the viewfinder strip in degrees

	// Samples
	FixTimeout     = 30 * time.Second // Location fix considered stale after this long
	HeadingTimeout = 5 * time.Second  // Heading considered stale after this long
	StaleInterval  = 2 * time.Second  // How often to check for stale samples
	HistorySize    = 120              // Range samples kept for the sparkline

	// Sources
	SourceDemo      = "demo"
	SourceNMEA      = "nmea"
	SourceGPSD      = "gpsd"
	SourceBLE       = "ble"
	DefaultNMEAPath = "/dev/ttyUSB0"
	MockInterval    = 200 * time.Millisecond

	// App
	AppName    = "AR-VIEWFINDER"
	AppVersion = "1.0"
)
