package sensor

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sync/atomic"
	"time"

	"ar-viewfinder.klederson.com/internal/config"
)

// GPSDSource streams raw NMEA from a local gpsd through gpspipe.
type GPSDSource struct {
	sender   Sender
	running  atomic.Bool
	cancel   context.CancelFunc
	interval time.Duration
}

// NewGPSDSource creates a gpsd source. interval is the pause before
// restarting gpspipe after it exits.
func NewGPSDSource(interval time.Duration) *GPSDSource {
	return &GPSDSource{
		interval: interval,
	}
}

func (s *GPSDSource) Name() string { return config.SourceGPSD }

// Start runs gpspipe in a goroutine, restarting it when it exits.
func (s *GPSDSource) Start(snd Sender) error {
	if !GPSDAvailable() {
		return fmt.Errorf("gpspipe not found in PATH (install gpsd-clients)")
	}

	s.sender = snd
	s.running.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *GPSDSource) loop(ctx context.Context) {
	for {
		if !s.running.Load() {
			return
		}
		if err := s.pipe(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("gpspipe exited", "err", err)
			s.sender.Send(SourceErrorMsg{Source: s.Name(), Err: err})
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}

func (s *GPSDSource) pipe(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "gpspipe", "-r")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	scanErr := scanNMEA(ctx, stdout, s.Name(), s.sender, false)
	waitErr := cmd.Wait()
	if scanErr != nil {
		return scanErr
	}
	return waitErr
}

// Stop halts gpspipe.
func (s *GPSDSource) Stop() {
	s.running.Store(false)
	if s.cancel != nil {
		s.cancel()
	}
}

// GPSDAvailable checks if gpspipe is available on the system.
func GPSDAvailable() bool {
	_, err := exec.LookPath("gpspipe")
	return err == nil
}
