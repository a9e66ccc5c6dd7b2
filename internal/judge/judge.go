// Package judge sizes the hit windows from the effective overall
// difficulty and grades hit offsets against them.
package judge

import (
	"time"

	"git.lost.host/meutraa/mania/internal/game"
	"git.lost.host/meutraa/mania/internal/mods"
)

// Windows holds the half-widths of each grade's window, best first. A hit
// whose absolute offset is within a window gets that grade. Offsets up to
// MissWindow still consume the note as a Miss.
type Windows struct {
	OD         float64
	Grades     [5]time.Duration // MAX, 300, 200, 100, 50
	MissWindow time.Duration
}

var graded = [5]game.Judgement{game.Max, game.Perfect, game.Great, game.Good, game.Bad}

func ms(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}

// ForOD builds the osu!mania windows for an already effective OD.
func ForOD(od float64) Windows {
	return Windows{
		OD: od,
		Grades: [5]time.Duration{
			ms(16),
			ms(64 - 3*od),
			ms(97 - 3*od),
			ms(127 - 3*od),
			ms(151 - 3*od),
		},
		MissWindow: ms(188 - 3*od),
	}
}

// New applies the mods to the chart's base OD before sizing the windows.
func New(baseOD float64, m mods.ModSet) (Windows, error) {
	od, err := mods.EffectiveValue(baseOD, mods.OD, m)
	if nil != err {
		return Windows{}, err
	}
	return ForOD(od), nil
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// Judge grades a hit offset. ok is false when the offset is outside the
// miss window and the input should not consume a note.
func (w Windows) Judge(offset time.Duration) (j game.Judgement, ok bool) {
	d := abs(offset)
	for i, window := range w.Grades {
		if d <= window {
			return graded[i], true
		}
	}
	if d <= w.MissWindow {
		return game.Miss, true
	}
	return game.Miss, false
}

// Window returns the half-width for a grade, MissWindow for game.Miss.
func (w Windows) Window(j game.Judgement) time.Duration {
	for i, g := range graded {
		if g == j {
			return w.Grades[i]
		}
	}
	return w.MissWindow
}
