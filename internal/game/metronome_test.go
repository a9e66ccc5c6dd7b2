package game

import (
	"testing"
	"time"
)

func TestMetronome(t *testing.T) {
	c := Metronome(4, 120, 8, time.Second)
	if c.HitObjects() != 8 || c.Keys != 4 {
		t.Fatalf("%d notes, %dK", c.HitObjects(), c.Keys)
	}
	columns := []uint8{0, 1, 2, 3, 2, 1, 0, 1}
	for i, n := range c.Notes {
		if n.Column != columns[i] {
			t.Errorf("note %d in column %d, expected %d", i, n.Column, columns[i])
		}
		if expected := time.Second + time.Duration(i)*500*time.Millisecond; n.Time != expected {
			t.Errorf("note %d at %v, expected %v", i, n.Time, expected)
		}
	}
}

func TestMetronomeSingleKey(t *testing.T) {
	for _, n := range Metronome(1, 60, 4, 0).Notes {
		if n.Column != 0 {
			t.Errorf("1K note in column %d", n.Column)
		}
	}
}

func TestChartActiveAndReset(t *testing.T) {
	c := Metronome(4, 120, 4, 0)
	hash := c.Hash()
	c.Notes[0].Resolved = true
	c.Notes[1].Resolved = true
	if len(c.Active()) != 2 {
		t.Errorf("%d active notes, expected 2", len(c.Active()))
	}
	c.Reset()
	if len(c.Active()) != 4 {
		t.Errorf("%d active notes after reset", len(c.Active()))
	}
	if c.Hash() != hash {
		t.Error("hash changed with play state")
	}
	if Metronome(4, 121, 4, 0).Hash() == hash {
		t.Error("different layouts hash equal")
	}
}
