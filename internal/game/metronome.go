package game

import (
	"time"
)

// Metronome builds a practice chart: count notes, one per beat starting at
// offset, walking the columns up and back down as a staircase.
func Metronome(keys uint8, bpm float64, count int, offset time.Duration) *Chart {
	beat := time.Duration(float64(time.Minute) / bpm)
	notes := make([]*Note, count)
	period := 2*int(keys) - 2
	for i := range notes {
		col := 0
		if period > 0 {
			col = i % period
			if col >= int(keys) {
				col = period - col
			}
		}
		notes[i] = &Note{
			Column: uint8(col),
			Time:   offset + time.Duration(i)*beat,
		}
	}
	return NewChart(keys, notes)
}
