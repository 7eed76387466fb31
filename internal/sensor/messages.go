package sensor

import (
	"fmt"
	"time"

	"ar-viewfinder.klederson.com/internal/geo"
	tea "github.com/charmbracelet/bubbletea"
)

// LocationSampleMsg is sent via Sender.Send when a source reports a fix.
type LocationSampleMsg struct {
	Point  geo.GeoPoint
	Source string
	Time   time.Time
}

// HeadingSampleMsg is sent via Sender.Send when a source reports a heading.
type HeadingSampleMsg struct {
	Degrees float64 // 0=north, clockwise
	Source  string
	Time    time.Time
}

// SourceErrorMsg reports a source failure after startup.
type SourceErrorMsg struct {
	Source string
	Err    error
}

func (e SourceErrorMsg) Error() string {
	return fmt.Sprintf("%s source error: %v", e.Source, e.Err)
}

// SourceDoneMsg is sent when a finite source (a recorded file) runs out.
type SourceDoneMsg struct {
	Source string
}

// Sender delivers messages into the UI loop. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Source produces location and heading samples in the background.
type Source interface {
	Name() string
	Start(s Sender) error
	Stop()
}
