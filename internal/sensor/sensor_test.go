package sensor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"ar-viewfinder.klederson.com/internal/config"
	"ar-viewfinder.klederson.com/internal/geo"
	nmea "github.com/adrianmo/go-nmea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

func withChecksum(body string) string {
	return fmt.Sprintf("$%s*%s", body, nmea.Checksum(body))
}

func TestParseRMC(t *testing.T) {
	s, err := ParseNMEA("$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A")
	require.NoError(t, err)

	assert.Equal(t, "GP", s.Talker)
	assert.Equal(t, "RMC", s.Type)
	require.True(t, s.HasPosition)
	assert.False(t, s.HasHeading)
	assert.InDelta(t, 48.1173, s.Position.Latitude, 1e-9)
	assert.InDelta(t, 11.0+31.0/60, s.Position.Longitude, 1e-9)
}

func TestParseGGA(t *testing.T) {
	s, err := ParseNMEA("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47")
	require.NoError(t, err)
	require.True(t, s.HasPosition)
	assert.InDelta(t, 48.1173, s.Position.Latitude, 1e-9)

	s, err = ParseNMEA(withChecksum("GNGGA,101010,3955.4810,S,03249.8513,W,2,10,1.0,900.0,M,,M,,"))
	require.NoError(t, err)
	assert.InDelta(t, -(39 + 55.481/60), s.Position.Latitude, 1e-9)
	assert.InDelta(t, -(32 + 49.8513/60), s.Position.Longitude, 1e-9)

	_, err = ParseNMEA(withChecksum("GPGGA,123519,4807.038,N,01131.000,E,0,00,,,M,,M,,"))
	assert.ErrorIs(t, err, ErrNoFix)
}

func TestParseHeadings(t *testing.T) {
	s, err := ParseNMEA(withChecksum("HEHDT,274.07,T"))
	require.NoError(t, err)
	require.True(t, s.HasHeading)
	assert.InDelta(t, 274.07, s.Heading, 1e-9)

	s, err = ParseNMEA(withChecksum("HCHDM,12.5,M"))
	require.NoError(t, err)
	assert.InDelta(t, 12.5, s.Heading, 1e-9)

	// 358 + 1.5E deviation + 3.0E variation wraps past north
	s, err = ParseNMEA(withChecksum("HCHDG,358.0,1.5,E,3.0,E"))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, s.Heading, 1e-9)

	s, err = ParseNMEA(withChecksum("HCHDG,10.0,,,5.0,W"))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, s.Heading, 1e-9)
}

func TestParseErrors(t *testing.T) {
	_, err := ParseNMEA("$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6B")
	assert.ErrorIs(t, err, ErrChecksum)

	_, err = ParseNMEA(withChecksum("GPRMC,123519,V,,,,,,,230394,,"))
	assert.ErrorIs(t, err, ErrNoFix)

	_, err = ParseNMEA(withChecksum("GPGSV,3,1,11,03,03,111,00"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = ParseNMEA("garbage")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ParseNMEA(withChecksum("GPRMC,123519,A,9107.038,N,01131.000,E,,,,,"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ParseNMEA("$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ParseNMEA(withChecksum("HEHDT,,T"))
	assert.ErrorIs(t, err, ErrNoFix)

	_, err = ParseNMEA(withChecksum("GPRMC,123519,A,4807.038,X,01131.000,E,,,,,"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestScanNMEA(t *testing.T) {
	input := strings.Join([]string{
		"$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A",
		"",
		"not nmea",
		withChecksum("HCHDT,90.0,T"),
		withChecksum("GPGSV,3,1,11"),
	}, "\r\n")

	rec := &recorder{}
	require.NoError(t, scanNMEA(context.Background(), strings.NewReader(input), "nmea", rec, false))

	msgs := rec.snapshot()
	require.Len(t, msgs, 2)

	loc, ok := msgs[0].(LocationSampleMsg)
	require.True(t, ok)
	assert.Equal(t, "nmea/GPS", loc.Source)
	assert.InDelta(t, 48.1173, loc.Point.Latitude, 1e-9)

	hdg, ok := msgs[1].(HeadingSampleMsg)
	require.True(t, ok)
	assert.Equal(t, "nmea/Compass", hdg.Source)
	assert.InDelta(t, 90.0, hdg.Degrees, 1e-9)
}

func TestNMEAFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.nmea")
	data := "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\n" +
		withChecksum("HCHDT,45.0,T") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	rec := &recorder{}
	src := NewNMEAFileSource(path)
	require.NoError(t, src.Start(rec))
	defer src.Stop()

	require.Eventually(t, func() bool {
		msgs := rec.snapshot()
		return len(msgs) == 3
	}, 2*time.Second, 10*time.Millisecond)

	msgs := rec.snapshot()
	assert.IsType(t, LocationSampleMsg{}, msgs[0])
	assert.IsType(t, HeadingSampleMsg{}, msgs[1])
	assert.Equal(t, SourceDoneMsg{Source: config.SourceNMEA}, msgs[2])
}

func TestScanNMEAPacesRecording(t *testing.T) {
	input := strings.Join([]string{
		withChecksum("GPRMC,123519.00,A,4807.038,N,01131.000,E,,,230394,,"),
		withChecksum("HCHDT,90.0,T"),
		withChecksum("GPRMC,123519.30,A,4807.040,N,01131.000,E,,,230394,,"),
	}, "\n")

	rec := &recorder{}
	start := time.Now()
	require.NoError(t, scanNMEA(context.Background(), strings.NewReader(input), "nmea", rec, true))
	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond)
	assert.Len(t, rec.snapshot(), 3)

	rec = &recorder{}
	start = time.Now()
	require.NoError(t, scanNMEA(context.Background(), strings.NewReader(input), "nmea", rec, false))
	assert.Less(t, time.Since(start), 250*time.Millisecond)
	assert.Len(t, rec.snapshot(), 3)
}

func TestScanNMEAPaceCancel(t *testing.T) {
	input := withChecksum("GPRMC,120000,A,4807.038,N,01131.000,E,,,230394,,") + "\n" +
		withChecksum("GPRMC,120004,A,4807.038,N,01131.000,E,,,230394,,")

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	done := make(chan error, 1)
	go func() { done <- scanNMEA(ctx, strings.NewReader(input), "nmea", rec, true) }()

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("replay did not stop on cancel")
	}
	assert.Len(t, rec.snapshot(), 1)
}

func TestReplayGap(t *testing.T) {
	assert.Equal(t, 200*time.Millisecond, replayGap(time.Second, 1200*time.Millisecond))
	assert.Equal(t, maxReplayGap, replayGap(0, time.Minute))
	assert.Equal(t, time.Second, replayGap(24*time.Hour-time.Second, 0))
}

func TestParseTimestamp(t *testing.T) {
	s, err := ParseNMEA("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47")
	require.NoError(t, err)
	require.True(t, s.HasTime)
	assert.Equal(t, 12*time.Hour+35*time.Minute+19*time.Second, s.Stamp)

	s, err = ParseNMEA(withChecksum("HEHDT,274.07,T"))
	require.NoError(t, err)
	assert.False(t, s.HasTime)
}

func TestNMEAFileSourceMissing(t *testing.T) {
	src := NewNMEAFileSource(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, src.Start(&recorder{}))
}

func TestBeaconRoundTrip(t *testing.T) {
	p := geo.NewGeoPoint(39.924684, -32.830855)
	b, err := DecodeBeacon(EncodeLocationBeacon(p))
	require.NoError(t, err)
	require.True(t, b.HasPosition)
	assert.InDelta(t, p.Latitude, b.Position.Latitude, 2e-7)
	assert.InDelta(t, p.Longitude, b.Position.Longitude, 2e-7)

	b, err = DecodeBeacon(EncodeHeadingBeacon(271.25))
	require.NoError(t, err)
	require.True(t, b.HasHeading)
	assert.InDelta(t, 271.25, b.Heading, 1e-9)
}

func TestDecodeBeaconRejects(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{0x03, 0x00},
		{0x01, 0x00, 0x00},
		{0x02, 0xA0, 0x8C}, // 36000
		{0x01, 0xFF, 0xFF, 0xFF, 0x7F, 0x00, 0x00, 0x00, 0x00}, // lat > 90
	} {
		_, err := DecodeBeacon(data)
		assert.ErrorIs(t, err, ErrBeaconPayload, "% X", data)
	}
}

func TestSendBeacon(t *testing.T) {
	rec := &recorder{}
	now := time.Now()
	sendBeacon(rec, "ble", Beacon{HasHeading: true, Heading: 12}, now)

	assert.Equal(t, []tea.Msg{HeadingSampleMsg{Degrees: 12, Source: "ble", Time: now}}, rec.snapshot())
}

func TestMockSourceEmit(t *testing.T) {
	poi := geo.NewGeoPoint(39.924684, 32.830855)
	src := NewMockSource(poi)
	rec := &recorder{}
	src.sender = rec

	src.emit(1.0, time.Now())
	msgs := rec.snapshot()
	require.Len(t, msgs, 2)

	loc := msgs[0].(LocationSampleMsg)
	dist := geo.Distance(poi, loc.Point, geo.KM)
	assert.Greater(t, dist, 0.3)
	assert.Less(t, dist, 1.5)

	hdg := msgs[1].(HeadingSampleMsg)
	assert.GreaterOrEqual(t, hdg.Degrees, 0.0)
	assert.Less(t, hdg.Degrees, 360.0)

	rel := geo.RelativeBearing(hdg.Degrees, geo.Bearing(loc.Point, poi))
	assert.LessOrEqual(t, rel*rel, (src.panSpan+1)*(src.panSpan+1))
}

func TestMockSourceStop(t *testing.T) {
	src := NewMockSource(geo.NewGeoPoint(39.924684, 32.830855))
	src.interval = 5 * time.Millisecond
	rec := &recorder{}

	require.NoError(t, src.Start(rec))
	assert.True(t, src.running.Load())
	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, time.Second, 5*time.Millisecond)

	src.Stop()
	assert.False(t, src.running.Load())
}

func TestLookupTalker(t *testing.T) {
	assert.Equal(t, "GPS", LookupTalker("GP"))
	assert.Equal(t, "", LookupTalker("ZZ"))
}

func TestNewSource(t *testing.T) {
	poi := geo.NewGeoPoint(1, 2)
	for kind, want := range map[string]string{
		config.SourceDemo: "*sensor.MockSource",
		config.SourceNMEA: "*sensor.NMEAFileSource",
		config.SourceGPSD: "*sensor.GPSDSource",
	} {
		src, err := NewSource(config.SourceConfig{Kind: kind, NMEAPath: "/dev/null"}, poi)
		require.NoError(t, err)
		assert.Equal(t, want, fmt.Sprintf("%T", src))
		assert.Equal(t, kind, src.Name())
	}

	_, err := NewSource(config.SourceConfig{Kind: "wifi"}, poi)
	assert.Error(t, err)
}
