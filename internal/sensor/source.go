package sensor

import (
	"fmt"
	"time"

	"ar-viewfinder.klederson.com/internal/config"
	"ar-viewfinder.klederson.com/internal/geo"
)

// gpsdRestart is the pause before gpspipe is restarted.
const gpsdRestart = 3 * time.Second

// NewSource builds the source selected in cfg. poi seeds the demo walk.
func NewSource(cfg config.SourceConfig, poi geo.GeoPoint) (Source, error) {
	switch cfg.Kind {
	case config.SourceDemo:
		return NewMockSource(poi), nil
	case config.SourceNMEA:
		return NewNMEAFileSource(cfg.NMEAPath), nil
	case config.SourceGPSD:
		return NewGPSDSource(gpsdRestart), nil
	case config.SourceBLE:
		return NewBLESource(cfg.BLEAddress), nil
	}
	return nil, fmt.Errorf("unknown source %q", cfg.Kind)
}
