package config

import (
	"os"
	"path/filepath"
	"testing"

	"ar-viewfinder.klederson.com/internal/geo"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPOIName, cfg.POI.Name)
	assert.Equal(t, DefaultPOILat, cfg.POI.Lat)
	assert.Equal(t, DefaultPOILon, cfg.POI.Lon)
	assert.Equal(t, DefaultAccuracy, cfg.Viewer.Accuracy)
	assert.Equal(t, geo.KM, cfg.Unit())
	assert.Equal(t, SourceDemo, cfg.Source.Kind)

	poi := cfg.POI.PointOfInterest()
	assert.Equal(t, DefaultPOIShortName, poi.ShortName)
	assert.Equal(t, geo.NewGeoPoint(DefaultPOILat, DefaultPOILon), poi.Location)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewfinder.yaml")
	yaml := `
poi:
  name: Kizilay
  lat: 39.9208
  lon: 32.8541
viewer:
  accuracy: 10
  unit: nm
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("VIEWFINDER_VIEWER_LOCALE", "en")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("accuracy", DefaultAccuracy, "")
	flags.String("source", SourceDemo, "")
	require.NoError(t, flags.Parse([]string{"--accuracy", "12.5"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "Kizilay", cfg.POI.Name)
	assert.Equal(t, DefaultPOIShortName, cfg.POI.PointOfInterest().ShortName)
	assert.Equal(t, 39.9208, cfg.POI.Lat)
	assert.Equal(t, 12.5, cfg.Viewer.Accuracy)
	assert.Equal(t, geo.NM, cfg.Unit())
	assert.Equal(t, "en", cfg.Viewer.Locale)
	assert.Equal(t, SourceDemo, cfg.Source.Kind)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		POI:    POIConfig{Name: "x", Lat: 1, Lon: 2},
		Viewer: ViewerConfig{Accuracy: 5, Unit: "km", MaxRange: 1},
		Source: SourceConfig{Kind: SourceDemo},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"accuracy zero", func(c *Config) { c.Viewer.Accuracy = 0 }, "viewer.accuracy"},
		{"accuracy 180", func(c *Config) { c.Viewer.Accuracy = 180 }, "viewer.accuracy"},
		{"lat", func(c *Config) { c.POI.Lat = 91 }, "poi.lat"},
		{"lon", func(c *Config) { c.POI.Lon = -181 }, "poi.lon"},
		{"unit", func(c *Config) { c.Viewer.Unit = "mi" }, "viewer.unit"},
		{"range", func(c *Config) { c.Viewer.MaxRange = 0 }, "viewer.max_range"},
		{"source", func(c *Config) { c.Source.Kind = "wifi" }, "source.kind"},
		{"nmea path", func(c *Config) { c.Source.Kind = SourceNMEA }, "source.nmea_path"},
		{"name", func(c *Config) { c.POI.Name = "" }, "poi.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
