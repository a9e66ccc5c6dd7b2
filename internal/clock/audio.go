package clock

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
)

// OpenAudio decodes an .mp3 or .ogg file.
func OpenAudio(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio file %s", path)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %s: %w", path, err)
	}
	return streamer, format, nil
}

type speakerLocker struct{}

func (speakerLocker) Lock()   { speaker.Lock() }
func (speakerLocker) Unlock() { speaker.Unlock() }

// Play starts streamer on the speaker at the given playback rate after
// delay and returns a clock reading its position.
func Play(streamer beep.StreamSeeker, format beep.Format, rate float64, delay time.Duration) (*Stream, error) {
	sr := beep.SampleRate(math.Round(float64(format.SampleRate) * rate))
	if err := speaker.Init(sr, format.SampleRate.N(time.Second/60)); err != nil {
		return nil, fmt.Errorf("unable to init speaker: %w", err)
	}
	go func() {
		time.Sleep(delay)
		speaker.Play(streamer)
	}()
	return NewStream(streamer, format.SampleRate, speakerLocker{}), nil
}
