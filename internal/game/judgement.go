package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Judgement is the timing grade given to a resolved note. The integer
// code is the grade's raw score weight.
type Judgement int

const (
	Miss    Judgement = 0
	Bad     Judgement = 50
	Good    Judgement = 100
	Great   Judgement = 200
	Perfect Judgement = 300
	Max     Judgement = 320
)

// Judgements lists every grade, best first.
var Judgements = [...]Judgement{Max, Perfect, Great, Good, Bad, Miss}

type coefficients struct {
	name       string
	bonusValue float64
	bonusDelta int
}

var table = map[Judgement]coefficients{
	Max:     {"MAX", 32, 2},
	Perfect: {"300", 32, 1},
	Great:   {"200", 16, -8},
	Good:    {"100", 8, -24},
	Bad:     {"50", 4, -44},
	Miss:    {"Miss", 0, -100},
}

func (j Judgement) Valid() bool {
	_, ok := table[j]
	return ok
}

// Value is the weight used by the base score term.
func (j Judgement) Value() float64 { return float64(j) }

func (j Judgement) BonusValue() float64 { return table[j].bonusValue }

func (j Judgement) BonusDelta() int { return table[j].bonusDelta }

func (j Judgement) String() string {
	if c, ok := table[j]; ok {
		return c.name
	}
	return "Judgement(" + strconv.Itoa(int(j)) + ")"
}

// ParseJudgement accepts either the integer code ("320", "0") or the
// display name ("MAX", "miss").
func ParseJudgement(s string) (Judgement, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); nil == err {
		if j := Judgement(n); j.Valid() {
			return j, nil
		}
		return 0, fmt.Errorf("unknown judgement code %d", n)
	}
	for j, c := range table {
		if strings.EqualFold(c.name, s) {
			return j, nil
		}
	}
	return 0, fmt.Errorf("unknown judgement %q", s)
}
