package config

import (
	"fmt"
	"strings"

	"ar-viewfinder.klederson.com/internal/geo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the viewfinder.
type Config struct {
	POI     POIConfig     `mapstructure:"poi"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Source  SourceConfig  `mapstructure:"source"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type POIConfig struct {
	Name      string  `mapstructure:"name"`
	ShortName string  `mapstructure:"short_name"`
	Lat       float64 `mapstructure:"lat"`
	Lon       float64 `mapstructure:"lon"`
}

// PointOfInterest builds the geometry POI from the config values.
func (p POIConfig) PointOfInterest() geo.PointOfInterest {
	return geo.NewPointOfInterest(p.Name, p.ShortName, p.Lat, p.Lon)
}

type ViewerConfig struct {
	Accuracy float64 `mapstructure:"accuracy"`
	Unit     string  `mapstructure:"unit"`
	Locale   string  `mapstructure:"locale"`
	MaxRange float64 `mapstructure:"max_range"`
}

type SourceConfig struct {
	Kind       string `mapstructure:"kind"`
	NMEAPath   string `mapstructure:"nmea_path"`
	BLEAddress string `mapstructure:"ble_address"`
}

type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"poi-name":       "poi.name",
	"poi-short-name": "poi.short_name",
	"poi-lat":        "poi.lat",
	"poi-lon":        "poi.lon",
	"accuracy":       "viewer.accuracy",
	"unit":           "viewer.unit",
	"locale":         "viewer.locale",
	"max-range":      "viewer.max_range",
	"source":         "source.kind",
	"nmea-path":      "source.nmea_path",
	"ble-address":    "source.ble_address",
	"log-file":       "logging.file",
	"log-level":      "logging.level",
	"log-format":     "logging.format",
}

// Load reads configuration from defaults, an optional YAML file, environment
// variables and command line flags, in increasing order of precedence.
// An empty path searches for viewfinder.yaml in the usual places.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("poi.name", DefaultPOIName)
	v.SetDefault("poi.short_name", DefaultPOIShortName)
	v.SetDefault("poi.lat", DefaultPOILat)
	v.SetDefault("poi.lon", DefaultPOILon)
	v.SetDefault("viewer.accuracy", DefaultAccuracy)
	v.SetDefault("viewer.unit", DefaultUnit)
	v.SetDefault("viewer.locale", DefaultLocale)
	v.SetDefault("viewer.max_range", DefaultMaxRange)
	v.SetDefault("source.kind", SourceDemo)
	v.SetDefault("source.nmea_path", DefaultNMEAPath)
	v.SetDefault("source.ble_address", "")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("viewfinder")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ar-viewfinder")
		_ = v.ReadInConfig() // OK if missing
	}

	// VIEWFINDER_VIEWER_ACCURACY → viewer.accuracy
	v.SetEnvPrefix("VIEWFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	if c.POI.Name == "" {
		errs = append(errs, "poi.name is required")
	}
	if c.POI.Lat < -90 || c.POI.Lat > 90 {
		errs = append(errs, fmt.Sprintf("poi.lat must be -90..90, got %v", c.POI.Lat))
	}
	if c.POI.Lon < -180 || c.POI.Lon > 180 {
		errs = append(errs, fmt.Sprintf("poi.lon must be -180..180, got %v", c.POI.Lon))
	}
	if err := geo.ValidateAccuracy(c.Viewer.Accuracy); err != nil {
		errs = append(errs, fmt.Sprintf("viewer.accuracy must be inside (0, 180), got %v", c.Viewer.Accuracy))
	}
	if _, err := geo.ParseUnit(c.Viewer.Unit); err != nil {
		errs = append(errs, fmt.Sprintf("viewer.unit must be km or nm, got %q", c.Viewer.Unit))
	}
	if c.Viewer.MaxRange <= 0 {
		errs = append(errs, "viewer.max_range must be positive")
	}
	switch c.Source.Kind {
	case SourceDemo, SourceNMEA, SourceGPSD, SourceBLE:
	default:
		errs = append(errs, fmt.Sprintf("source.kind must be one of demo, nmea, gpsd, ble, got %q", c.Source.Kind))
	}
	if c.Source.Kind == SourceNMEA && c.Source.NMEAPath == "" {
		errs = append(errs, "source.nmea_path is required for the nmea source")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Unit returns the parsed range unit. Validate guarantees it parses.
func (c *Config) Unit() geo.Unit {
	u, _ := geo.ParseUnit(c.Viewer.Unit)
	return u
}
