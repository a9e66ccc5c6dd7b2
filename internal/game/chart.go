package game

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"sort"
)

// Chart is the note list handed over by the chart loader. Notes must be
// sorted by time.
type Chart struct {
	Notes []*Note
	Keys  uint8

	startNoteIndex int
}

func NewChart(keys uint8, notes []*Note) *Chart {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})
	return &Chart{Notes: notes, Keys: keys}
}

// HitObjects is the count the score accumulator is built with.
func (c *Chart) HitObjects() int {
	return len(c.Notes)
}

// Active returns the notes that have not been resolved yet, in time order.
func (c *Chart) Active() []*Note {
	for c.startNoteIndex < len(c.Notes) && c.Notes[c.startNoteIndex].Resolved {
		c.startNoteIndex++
	}
	return c.Notes[c.startNoteIndex:]
}

// Hash identifies the chart's note layout for replay lookups.
func (c *Chart) Hash() string {
	h := sha256.New()
	buf := make([]byte, 9)
	h.Write([]byte{c.Keys})
	for _, n := range c.Notes {
		buf[0] = n.Column
		binary.LittleEndian.PutUint64(buf[1:], uint64(n.Time))
		h.Write(buf)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Reset clears all per-play state so the chart can be played again.
func (c *Chart) Reset() {
	for _, n := range c.Notes {
		n.HitTime = 0
		n.Resolved = false
		n.Result = Miss
	}
	c.startNoteIndex = 0
}
