// Package session runs one play attempt: each tick it judges the keys
// tapped since the last tick against the chart, expires missed notes and
// feeds every resolution to the score accumulator.
package session

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/mania/internal/game"
	"git.lost.host/meutraa/mania/internal/input"
	"git.lost.host/meutraa/mania/internal/judge"
	"git.lost.host/meutraa/mania/internal/mathutil"
	"git.lost.host/meutraa/mania/internal/mods"
	"git.lost.host/meutraa/mania/internal/score"
)

type Session struct {
	chart    *game.Chart
	bindings []string
	baseOD   float64
	mods     mods.ModSet

	keys    *input.KeyState
	source  input.Source
	windows judge.Windows
	acc     *score.Accumulator

	judgements []game.Judgement
	inputs     []game.Input
	offsets    []float64 // ms, hits only

	// OnJudgement is called for every resolved note, in resolution order.
	OnJudgement func(note *game.Note, j game.Judgement, delta float64)
}

// New starts a session. bindings[i] is the key identifier of column i.
func New(chart *game.Chart, bindings []string, baseOD float64, m mods.ModSet) (*Session, error) {
	if len(bindings) != int(chart.Keys) {
		return nil, fmt.Errorf("%d key bindings for a %dK chart", len(bindings), chart.Keys)
	}
	if err := m.Validate(); nil != err {
		return nil, err
	}
	windows, err := judge.New(baseOD, m)
	if nil != err {
		return nil, err
	}
	acc, err := score.NewAccumulator(chart.HitObjects())
	if nil != err {
		return nil, err
	}
	return &Session{
		chart:    chart,
		bindings: bindings,
		baseOD:   baseOD,
		mods:     m,
		keys:     input.NewKeyState(),
		windows:  windows,
		acc:      acc,
	}, nil
}

// Attach subscribes the session's key state to src.
func (s *Session) Attach(src input.Source) {
	s.source = src
	s.keys.Attach(src)
}

func (s *Session) Keys() *input.KeyState { return s.keys }

func (s *Session) Windows() judge.Windows { return s.windows }

func (s *Session) column(key string) (uint8, bool) {
	for i, b := range s.bindings {
		if b == key {
			return uint8(i), true
		}
	}
	return 0, false
}

// Tick judges the input of one frame at song time now and clears the
// per-tick key sets.
func (s *Session) Tick(now time.Duration) error {
	defer s.keys.Clear()

	// Notes that can no longer be hit resolve before this frame's taps.
	for _, note := range s.chart.Active() {
		if note.Time+s.windows.MissWindow >= now {
			break
		}
		if !note.Resolved {
			if err := s.resolve(note, game.Miss); nil != err {
				return err
			}
		}
	}

	for col, key := range s.bindings {
		if !s.keys.IsTapped(key) {
			continue
		}
		in := game.Input{Column: uint8(col), HitTime: now}
		s.inputs = append(s.inputs, in)

		note, offset := s.target(in)
		if note == nil {
			continue
		}
		j, ok := s.windows.Judge(offset)
		if !ok {
			continue
		}
		note.HitTime = now
		if j != game.Miss {
			s.offsets = append(s.offsets, float64(offset)/float64(time.Millisecond))
		}
		if err := s.resolve(note, j); nil != err {
			return err
		}
	}
	return nil
}

// target is the earliest unresolved note in the input's column. Notes
// whose late window has passed are expired before taps are judged, so a
// tap never skips a note it could still hit.
func (s *Session) target(in game.Input) (*game.Note, time.Duration) {
	for _, note := range s.chart.Active() {
		if note.Resolved || note.Column != in.Column {
			continue
		}
		return note, in.HitTime - note.Time
	}
	return nil, 0
}

func (s *Session) resolve(note *game.Note, j game.Judgement) error {
	delta, err := s.acc.Add(j)
	if nil != err {
		return err
	}
	note.Resolved = true
	note.Result = j
	s.judgements = append(s.judgements, j)
	if s.OnJudgement != nil {
		s.OnJudgement(note, j, delta)
	}
	return nil
}

// Done reports whether every note has been resolved.
func (s *Session) Done() bool {
	return len(s.chart.Active()) == 0 && len(s.judgements) == s.chart.HitObjects()
}

func (s *Session) Score() float64 { return s.acc.Total() }

func (s *Session) Accumulator() *score.Accumulator { return s.acc }

func (s *Session) Judgements() []game.Judgement {
	return append([]game.Judgement(nil), s.judgements...)
}

// Stats returns the mean and standard deviation of the hit offsets in
// milliseconds, rounded for display.
func (s *Session) Stats() (mean, stdev float64) {
	return mathutil.Round(mathutil.Mean(s.offsets), 2), mathutil.Round(mathutil.StdDev(s.offsets), 2)
}

// Record returns the replay record of the play so far.
func (s *Session) Record() *score.Record {
	return &score.Record{
		ChartHash:  s.chart.Hash(),
		Mods:       s.mods.String(),
		Rate:       s.mods.Rate(),
		HitObjects: s.chart.HitObjects(),
		Judgements: s.Judgements(),
		Inputs:     append([]game.Input(nil), s.inputs...),
		Score:      s.acc.Total(),
	}
}

// Close stops input from reaching the session. It is safe to call more
// than once.
func (s *Session) Close() {
	s.keys.Detach()
}

// Retry closes this session and starts a fresh attempt on the same chart,
// attached to the same input source.
func (s *Session) Retry() (*Session, error) {
	s.Close()
	s.chart.Reset()
	next, err := New(s.chart, s.bindings, s.baseOD, s.mods)
	if nil != err {
		return nil, err
	}
	next.OnJudgement = s.OnJudgement
	if s.source != nil {
		next.Attach(s.source)
	}
	return next, nil
}
