package sensor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"ar-viewfinder.klederson.com/internal/config"
)

// maxReplayGap caps the pause between fixes when replaying a recording.
const maxReplayGap = 5 * time.Second

// NMEAFileSource reads NMEA 0183 sentences from a FIFO, a serial device that
// is already configured (e.g. with stty), or a recorded log. Recordings in
// regular files are replayed at the pace of their RMC/GGA timestamps.
type NMEAFileSource struct {
	path   string
	sender Sender
	cancel context.CancelFunc
	file   *os.File
}

// NewNMEAFileSource creates a source reading from path.
func NewNMEAFileSource(path string) *NMEAFileSource {
	return &NMEAFileSource{path: path}
}

func (s *NMEAFileSource) Name() string { return config.SourceNMEA }

// Start opens the path and reads it in a goroutine.
func (s *NMEAFileSource) Start(snd Sender) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open nmea source: %w", err)
	}

	pace := false
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		pace = true
	}

	s.sender = snd
	s.file = f

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go func() {
		defer f.Close()
		err := scanNMEA(ctx, f, s.Name(), snd, pace)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			snd.Send(SourceErrorMsg{Source: s.Name(), Err: err})
			return
		}
		snd.Send(SourceDoneMsg{Source: s.Name()})
	}()

	slog.Info("nmea source started", "path", s.path, "replay", pace)
	return nil
}

// Stop halts the source. Closing the file unblocks a pending read.
func (s *NMEAFileSource) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.file != nil {
		_ = s.file.Close()
	}
}

// scanNMEA reads sentences line by line until EOF or ctx is done and forwards
// positions and headings to snd. Unusable lines are skipped. With pace set,
// each timestamped fix waits for the time elapsed since the previous one.
func scanNMEA(ctx context.Context, r io.Reader, source string, snd Sender, pace bool) error {
	var last time.Duration
	haveLast := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		sentence, err := ParseNMEA(line)
		if err != nil {
			slog.Debug("nmea sentence skipped", "source", source, "line", line, "err", err)
			continue
		}

		if pace && sentence.HasTime {
			if haveLast {
				if !sleepCtx(ctx, replayGap(last, sentence.Stamp)) {
					return nil
				}
			}
			last, haveLast = sentence.Stamp, true
		}

		now := time.Now()
		if sentence.HasPosition {
			snd.Send(LocationSampleMsg{Point: sentence.Position, Source: talkerSource(source, sentence.Talker), Time: now})
		}
		if sentence.HasHeading {
			snd.Send(HeadingSampleMsg{Degrees: sentence.Heading, Source: talkerSource(source, sentence.Talker), Time: now})
		}
	}
	return scanner.Err()
}

// replayGap returns the wait between two fix times of day, handling the
// midnight rollover and capping long gaps.
func replayGap(prev, next time.Duration) time.Duration {
	d := next - prev
	if d < 0 {
		d += 24 * time.Hour
	}
	return min(d, maxReplayGap)
}

// sleepCtx waits for d and reports false if ctx was cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func talkerSource(source, talker string) string {
	if name := LookupTalker(talker); name != "" {
		return source + "/" + name
	}
	return source
}
