package score

import (
	"errors"
	"fmt"
	"math"

	"git.lost.host/meutraa/mania/internal/game"
	"git.lost.host/meutraa/mania/internal/mathutil"
)

const (
	MaxScore = 1_000_000

	maxBonus = 100
)

var (
	ErrNoHitObjects     = errors.New("chart has no hit objects")
	ErrUnknownJudgement = errors.New("unknown judgement")
)

// Accumulator computes the per-judgement score deltas for one play
// attempt. The bonus meter carries over between judgements, so a fresh
// Accumulator must be made for every attempt.
type Accumulator struct {
	totalHitObjects int
	bonus           int

	total  float64
	counts map[game.Judgement]int
}

func NewAccumulator(totalHitObjects int) (*Accumulator, error) {
	if totalHitObjects <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoHitObjects, totalHitObjects)
	}
	return &Accumulator{
		totalHitObjects: totalHitObjects,
		bonus:           maxBonus,
		counts:          map[game.Judgement]int{},
	}, nil
}

// Add returns the score delta for j. The bonus meter is updated before the
// bonus term is computed.
func (a *Accumulator) Add(j game.Judgement) (float64, error) {
	if !j.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownJudgement, int(j))
	}
	perObject := MaxScore / 2 / float64(a.totalHitObjects)

	base := perObject * j.Value() / 320
	a.bonus = mathutil.Clamp(a.bonus+j.BonusDelta(), 0, maxBonus)
	bonus := perObject * j.BonusValue() * math.Sqrt(float64(a.bonus)) / 320

	delta := base + bonus
	a.total += delta
	a.counts[j]++
	return delta, nil
}

func (a *Accumulator) Bonus() int { return a.bonus }

// Total is the running sum of every delta returned so far.
func (a *Accumulator) Total() float64 { return a.total }

func (a *Accumulator) HitObjects() int { return a.totalHitObjects }

func (a *Accumulator) Count(j game.Judgement) int { return a.counts[j] }

// Judged is the number of judgements added so far.
func (a *Accumulator) Judged() int {
	n := 0
	for _, c := range a.counts {
		n += c
	}
	return n
}

// Accuracy is the ScoreV1 mania accuracy over the judgements so far, in
// [0, 1]. MAX counts the same as 300.
func (a *Accumulator) Accuracy() float64 {
	n := a.Judged()
	if n == 0 {
		return 1
	}
	points := 300*(a.counts[game.Max]+a.counts[game.Perfect]) +
		200*a.counts[game.Great] +
		100*a.counts[game.Good] +
		50*a.counts[game.Bad]
	return float64(points) / float64(300*n)
}

// Grade is the letter ranking for an accuracy.
func Grade(accuracy float64) string {
	switch {
	case accuracy >= 1:
		return "SS"
	case accuracy > 0.95:
		return "S"
	case accuracy > 0.9:
		return "A"
	case accuracy > 0.8:
		return "B"
	case accuracy > 0.7:
		return "C"
	}
	return "D"
}

// Replay recomputes the deltas of a recorded judgement sequence.
func Replay(totalHitObjects int, judgements []game.Judgement) ([]float64, float64, error) {
	a, err := NewAccumulator(totalHitObjects)
	if nil != err {
		return nil, 0, err
	}
	deltas := make([]float64, 0, len(judgements))
	for _, j := range judgements {
		d, err := a.Add(j)
		if nil != err {
			return nil, 0, err
		}
		deltas = append(deltas, d)
	}
	return deltas, a.Total(), nil
}
