// Package clock provides the song-time sources a session is ticked with.
package clock

import (
	"sync"
	"time"

	"github.com/faiface/beep"
)

// Clock reports the current song position.
type Clock interface {
	Now() time.Duration
}

// Wall derives song time from the wall clock, starting after a delay and
// advancing at the playback rate.
type Wall struct {
	start time.Time
	rate  float64
	now   func() time.Time
}

func NewWall(delay time.Duration, rate float64) *Wall {
	return &Wall{start: time.Now().Add(delay), rate: rate, now: time.Now}
}

func (w *Wall) Now() time.Duration {
	return time.Duration(float64(w.now().Sub(w.start)) * w.rate)
}

// Stream reads the song position from a playing beep stream. The locker
// guards the stream against the goroutine playing it, speaker.Lock and
// speaker.Unlock when it is played through the speaker.
type Stream struct {
	streamer   beep.StreamSeeker
	sampleRate beep.SampleRate
	locker     sync.Locker
}

func NewStream(streamer beep.StreamSeeker, sampleRate beep.SampleRate, locker sync.Locker) *Stream {
	return &Stream{streamer: streamer, sampleRate: sampleRate, locker: locker}
}

func (s *Stream) Now() time.Duration {
	s.locker.Lock()
	p := s.streamer.Position()
	s.locker.Unlock()
	return s.sampleRate.D(p)
}
