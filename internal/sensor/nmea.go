package sensor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ar-viewfinder.klederson.com/internal/geo"
	nmea "github.com/adrianmo/go-nmea"
)

var (
	ErrMalformed   = errors.New("malformed sentence")
	ErrChecksum    = errors.New("checksum mismatch")
	ErrUnsupported = errors.New("unsupported sentence")
	ErrNoFix       = errors.New("no fix")
)

// Sentence is the useful content of one NMEA 0183 sentence.
type Sentence struct {
	Talker string // e.g. "GP", "HC"
	Type   string // e.g. "RMC", "HDT"

	HasPosition bool
	Position    geo.GeoPoint

	HasHeading bool
	Heading    float64 // Degrees [0, 360)

	HasTime bool
	Stamp   time.Duration // UTC time of day of a position fix
}

// ParseNMEA parses a single checksummed sentence such as
// "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A".
// Only RMC and GGA (position) and HDT, HDM and HDG (heading) are used.
func ParseNMEA(line string) (Sentence, error) {
	line = strings.TrimSpace(line)
	body, sum, ok := splitSentence(line)
	if !ok {
		return Sentence{}, ErrMalformed
	}
	if got := nmea.Checksum(body); !strings.EqualFold(got, sum) {
		return Sentence{}, fmt.Errorf("got %s want %s: %w", got, sum, ErrChecksum)
	}

	fields := strings.Split(body, ",")
	if len(fields[0]) != 5 {
		return Sentence{}, ErrMalformed
	}
	s := Sentence{
		Talker: fields[0][:2],
		Type:   fields[0][2:],
	}
	if err := noFix(s.Type, fields); err != nil {
		return Sentence{}, fmt.Errorf("%s%s: %w", s.Talker, s.Type, err)
	}

	parsed, err := nmea.Parse(line)
	if err != nil {
		return Sentence{}, fmt.Errorf("%s%s: %v: %w", s.Talker, s.Type, err, ErrMalformed)
	}

	switch m := parsed.(type) {
	case nmea.RMC:
		if m.Validity != nmea.ValidRMC {
			err = ErrNoFix
			break
		}
		err = s.setPosition(m.Latitude, m.Longitude)
		s.setTime(m.Time)
	case nmea.GGA:
		if m.FixQuality == nmea.Invalid {
			err = ErrNoFix
			break
		}
		err = s.setPosition(m.Latitude, m.Longitude)
		s.setTime(m.Time)
	case nmea.HDT:
		s.setHeading(m.Heading, 0)
	case nmea.HDM:
		s.setHeading(m.Heading, 0)
	case nmea.HDG:
		// true heading = sensor heading + deviation + variation, east positive
		s.setHeading(m.Heading, signed(m.Deviation, m.DeviationDirection)+signed(m.Variation, m.VariationDirection))
	default:
		err = ErrUnsupported
	}
	if err != nil {
		return Sentence{}, fmt.Errorf("%s%s: %w", s.Talker, s.Type, err)
	}
	return s, nil
}

// splitSentence returns the text between the start delimiter and '*', and the
// checksum after it.
func splitSentence(line string) (body, sum string, ok bool) {
	if len(line) < 7 || (line[0] != '$' && line[0] != '!') {
		return "", "", false
	}
	idx := strings.LastIndexByte(line, '*')
	if idx < 0 || len(line)-idx-1 != 2 {
		return "", "", false
	}
	return line[1:idx], line[idx+1:], true
}

// noFix reports sentences that carry no usable data. Receivers send them with
// empty fields, which the typed parsers reject as malformed.
func noFix(kind string, f []string) error {
	switch kind {
	case nmea.TypeRMC:
		if len(f) > 2 && f[2] != nmea.ValidRMC {
			return ErrNoFix
		}
	case nmea.TypeGGA:
		if len(f) > 6 && (f[6] == "" || f[6] == nmea.Invalid) {
			return ErrNoFix
		}
	case nmea.TypeHDT, nmea.TypeHDM, nmea.TypeHDG:
		if len(f) > 1 && f[1] == "" {
			return ErrNoFix
		}
	default:
		return ErrUnsupported
	}
	return nil
}

func (s *Sentence) setHeading(deg, correction float64) {
	s.Heading = geo.NormalizeDegrees(deg + correction)
	s.HasHeading = true
}

func (s *Sentence) setPosition(lat, lon float64) error {
	p := geo.NewGeoPoint(lat, lon)
	if !p.Valid() {
		return ErrMalformed
	}
	s.Position = p
	s.HasPosition = true
	return nil
}

func (s *Sentence) setTime(t nmea.Time) {
	if !t.Valid {
		return
	}
	s.Stamp = time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second +
		time.Duration(t.Millisecond)*time.Millisecond
	s.HasTime = true
}

func signed(v float64, dir string) float64 {
	if dir == nmea.West {
		return -v
	}
	return v
}
