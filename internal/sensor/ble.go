package sensor

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"ar-viewfinder.klederson.com/internal/config"
	"tinygo.org/x/bluetooth"
)

// BLESource listens for companion beacon advertisements that carry the
// phone's location and heading.
type BLESource struct {
	adapter *bluetooth.Adapter
	address string // only accept this device when set
	sender  Sender
	running atomic.Bool
}

// NewBLESource creates a BLE source on the default adapter. An empty address
// accepts any device that sends the beacon payload.
func NewBLESource(address string) *BLESource {
	return &BLESource{
		adapter: bluetooth.DefaultAdapter,
		address: strings.ToUpper(address),
	}
}

func (s *BLESource) Name() string { return config.SourceBLE }

// Start begins BLE scanning in a goroutine.
func (s *BLESource) Start(snd Sender) error {
	s.sender = snd

	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	s.running.Store(true)
	go func() {
		err := s.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !s.running.Load() {
				return
			}
			addr := strings.ToUpper(result.Address.String())
			if s.address != "" && addr != s.address {
				return
			}
			for _, m := range result.ManufacturerData() {
				if m.CompanyID != BeaconCompanyID {
					continue
				}
				s.handlePayload(addr, m.Data)
			}
		})
		if err != nil && s.running.Load() {
			snd.Send(SourceErrorMsg{Source: s.Name(), Err: err})
		}
	}()

	slog.Info("ble source started", "address", s.address)
	return nil
}

func (s *BLESource) handlePayload(addr string, data []byte) {
	b, err := DecodeBeacon(data)
	if err != nil {
		slog.Debug("beacon payload skipped", "address", addr, "err", err)
		return
	}
	sendBeacon(s.sender, s.Name(), b, time.Now())
}

func sendBeacon(snd Sender, source string, b Beacon, now time.Time) {
	if b.HasPosition {
		snd.Send(LocationSampleMsg{Point: b.Position, Source: source, Time: now})
	}
	if b.HasHeading {
		snd.Send(HeadingSampleMsg{Degrees: b.Heading, Source: source, Time: now})
	}
}

// Stop halts the BLE scan.
func (s *BLESource) Stop() {
	s.running.Store(false)
	_ = s.adapter.StopScan()
}
