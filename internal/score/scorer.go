// Package score accumulates the running score of a play and persists the
// replay record of finished plays.
package score

import (
	"context"
	"time"

	"git.lost.host/meutraa/mania/internal/game"
	"github.com/google/uuid"
)

// Recorder is the persistence capability handed to a session. Store is the
// sqlite implementation.
type Recorder interface {
	// Save the state of this performance
	Save(ctx context.Context, r *Record) error

	// Load up previous records for the chart
	Load(ctx context.Context, chartHash string) ([]Record, error)
}

// Record is a finished play: the judgements in resolution order, the raw
// inputs and the final score.
type Record struct {
	ID         uuid.UUID
	ChartHash  string
	Mods       string
	Rate       float64
	HitObjects int
	Judgements []game.Judgement
	Inputs     []game.Input
	Score      float64
	CreatedAt  time.Time
}

// Rescore replays the record's judgements through a fresh accumulator.
func (r *Record) Rescore() (float64, error) {
	_, total, err := Replay(r.HitObjects, r.Judgements)
	return total, err
}
