// Package mods rescales the difficulty parameters a judgement decision
// depends on according to the active mods.
package mods

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"git.lost.host/meutraa/mania/internal/mathutil"
)

type Kind int

const (
	OD Kind = iota // Overall Difficulty
	HP             // HP Drain
)

func (k Kind) String() string {
	switch k {
	case OD:
		return "OD"
	case HP:
		return "HP"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

const (
	MinValue = 0.0
	MaxValue = 10.0

	hardRockMultiplier = 1.4
	easyMultiplier     = 0.5
)

var (
	ErrUnknownKind  = errors.New("unknown difficulty kind")
	ErrUnknownMod   = errors.New("unknown mod")
	ErrIncompatible = errors.New("incompatible mods")
)

// ModSet is fixed for a whole play session.
type ModSet struct {
	HardRock   bool
	Easy       bool
	DoubleTime bool
	Nightcore  bool
	HalfTime   bool
	Daycore    bool

	// Difficulty adjust overrides, nil when unset.
	OverallDifficulty *float64
	DrainRate         *float64
}

var acronyms = []struct {
	name string
	set  func(m *ModSet)
	has  func(m ModSet) bool
}{
	{"EZ", func(m *ModSet) { m.Easy = true }, func(m ModSet) bool { return m.Easy }},
	{"HR", func(m *ModSet) { m.HardRock = true }, func(m ModSet) bool { return m.HardRock }},
	{"HT", func(m *ModSet) { m.HalfTime = true }, func(m ModSet) bool { return m.HalfTime }},
	{"DC", func(m *ModSet) { m.Daycore = true }, func(m ModSet) bool { return m.Daycore }},
	{"DT", func(m *ModSet) { m.DoubleTime = true }, func(m ModSet) bool { return m.DoubleTime }},
	{"NC", func(m *ModSet) { m.Nightcore = true }, func(m ModSet) bool { return m.Nightcore }},
}

// Parse reads mod acronyms such as "HRDT", "hr,dt" or "EZ HT". An empty
// string or "NM" is no mods.
func Parse(s string) (ModSet, error) {
	var m ModSet
	s = strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' || r == '+' {
			return -1
		}
		return r
	}, s))
	if s == "NM" {
		return m, nil
	}
	if len(s)%2 != 0 {
		return m, fmt.Errorf("%w: %q", ErrUnknownMod, s)
	}
next:
	for i := 0; i < len(s); i += 2 {
		code := s[i : i+2]
		for _, a := range acronyms {
			if a.name == code {
				a.set(&m)
				continue next
			}
		}
		return m, fmt.Errorf("%w: %q", ErrUnknownMod, code)
	}
	return m, m.Validate()
}

func (m ModSet) Validate() error {
	if m.HardRock && m.Easy {
		return fmt.Errorf("%w: HR and EZ", ErrIncompatible)
	}
	if (m.DoubleTime || m.Nightcore) && (m.HalfTime || m.Daycore) {
		return fmt.Errorf("%w: speed up and slow down", ErrIncompatible)
	}
	return nil
}

// Rate is the playback rate the mods imply.
func (m ModSet) Rate() float64 {
	switch {
	case m.DoubleTime || m.Nightcore:
		return 1.5
	case m.HalfTime || m.Daycore:
		return 0.75
	}
	return 1
}

func (m ModSet) String() string {
	var b strings.Builder
	for _, a := range acronyms {
		if a.has(m) {
			b.WriteString(a.name)
		}
	}
	if m.OverallDifficulty != nil || m.DrainRate != nil {
		b.WriteString("DA")
	}
	if b.Len() == 0 {
		return "NM"
	}
	return b.String()
}

// EffectiveValue applies the mods to a base OD or HP value. Difficulty
// adjust replaces the base, HR multiplies it by 1.4 capped at 10 and EZ
// halves it. Rate mods leave both values unchanged. The result is always
// within [0, 10].
func EffectiveValue(base float64, kind Kind, m ModSet) (float64, error) {
	switch kind {
	case OD:
		if m.OverallDifficulty != nil {
			base = *m.OverallDifficulty
		}
	case HP:
		if m.DrainRate != nil {
			base = *m.DrainRate
		}
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}

	v := base
	if m.HardRock {
		v = min(v*hardRockMultiplier, MaxValue)
	}
	if m.Easy {
		v = v * easyMultiplier
	}
	return mathutil.Clamp(v, MinValue, MaxValue), nil
}
