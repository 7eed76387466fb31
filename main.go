package main

import (
	"fmt"
	"log/slog"
	"os"

	"ar-viewfinder.klederson.com/internal/app"
	"ar-viewfinder.klederson.com/internal/config"
	"ar-viewfinder.klederson.com/internal/logging"
	"ar-viewfinder.klederson.com/internal/sensor"
	"ar-viewfinder.klederson.com/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDemo   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ar-viewfinder",
		Short: "AR Viewfinder - Terminal viewfinder that points you at a point of interest",
		Long: `AR Viewfinder combines a location fix and a compass heading to tell whether
you are facing a fixed point of interest. When the heading falls inside the
tolerance window around the bearing to the POI, the marker and range appear.

Samples come from an NMEA device or file, gpsd (gpspipe), or a BLE beacon.
Use --demo flag for demonstration mode without any sensor hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}

	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Config file (default ./viewfinder.yaml)")
	f.BoolVar(&flagDemo, "demo", false, "Run in demo mode with simulated samples (no hardware required)")
	f.String("source", config.SourceDemo, "Sample source: demo, nmea, gpsd or ble")
	f.String("nmea-path", config.DefaultNMEAPath, "NMEA device, FIFO or recorded log (replayed at fix pace)")
	f.String("ble-address", "", "Only accept beacons from this BLE address")
	f.Float64("accuracy", config.DefaultAccuracy, "Tolerance window half-width in degrees")
	f.String("unit", config.DefaultUnit, "Range unit: km or nm")
	f.String("locale", config.DefaultLocale, "Locale of the range label")
	f.String("poi-name", config.DefaultPOIName, "Full name of the point of interest")
	f.String("poi-short-name", config.DefaultPOIShortName, "Short name shown under the marker")
	f.Float64("poi-lat", config.DefaultPOILat, "POI latitude in degrees")
	f.Float64("poi-lon", config.DefaultPOILon, "POI longitude in degrees")
	f.Float64("max-range", config.DefaultMaxRange, "Radar edge distance in the selected unit")
	f.String("log-file", "", "Write logs to this file (discarded when empty)")
	f.String("log-level", "info", "Log level: debug, info, warn or error")
	f.String("log-format", "text", "Log format: text or json")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return err
	}
	if flagDemo {
		cfg.Source.Kind = config.SourceDemo
	}

	closer, err := logging.Setup(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer closer.Close()

	poi := cfg.POI.PointOfInterest()
	trk, err := tracker.New(poi, cfg.Viewer.Accuracy, cfg.Unit(), cfg.Viewer.Locale)
	if err != nil {
		return err
	}

	src, err := sensor.NewSource(cfg.Source, poi.Location)
	if err != nil {
		return err
	}

	slog.Info("starting viewfinder",
		"poi", poi.FullName, "location", poi.Location.String(),
		"accuracy", cfg.Viewer.Accuracy, "unit", cfg.Unit().String(),
		"source", src.Name())

	model := app.New(trk, src, cfg.Viewer.MaxRange)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start the source with reference to the tea program
	if err := model.StartSource(p); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		switch cfg.Source.Kind {
		case config.SourceBLE:
			fmt.Fprintln(os.Stderr, "BLE scanning requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./ar-viewfinder --source ble")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./ar-viewfinder")
		case config.SourceGPSD:
			fmt.Fprintln(os.Stderr, "gpsd mode needs gpspipe on PATH and a running gpsd.")
		case config.SourceNMEA:
			fmt.Fprintf(os.Stderr, "Check that %s exists and is readable.\n", cfg.Source.NMEAPath)
		}
		fmt.Fprintln(os.Stderr, "  ./ar-viewfinder --demo    (demo mode, no hardware needed)")
		return err
	}

	_, err = p.Run()
	return err
}
