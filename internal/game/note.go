package game

import (
	"time"
)

type Note struct {
	Column uint8         // The chart column
	Time   time.Duration // The time the note should be hit

	// This is state
	HitTime  time.Duration // When the note was hit, 0 if not yet
	Resolved bool
	Result   Judgement
}

// Offset is how early (negative) or late (positive) the note was hit.
func (n *Note) Offset() time.Duration {
	return n.HitTime - n.Time
}

// Input is a single column press, as recorded for replays.
type Input struct {
	Column  uint8
	HitTime time.Duration
}
