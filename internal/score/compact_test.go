package score

import (
	"reflect"
	"testing"
	"time"

	"git.lost.host/meutraa/mania/internal/game"
)

type compactTest struct {
	inputs  []game.Input
	compact []InputsCompact
}

var compactTests = []compactTest{
	{[]game.Input{}, []InputsCompact{}},
	{
		[]game.Input{{Column: 0, HitTime: 100}, {Column: 3, HitTime: 200}},
		[]InputsCompact{
			{Column: 0, Times: []time.Duration{100}},
			{Column: 1, Times: []time.Duration{}},
			{Column: 2, Times: []time.Duration{}},
			{Column: 3, Times: []time.Duration{200}},
		},
	},
	{
		[]game.Input{{Column: 1, HitTime: 1}, {Column: 0, HitTime: 2}, {Column: 1, HitTime: 3}},
		[]InputsCompact{
			{Column: 0, Times: []time.Duration{2}},
			{Column: 1, Times: []time.Duration{1, 3}},
		},
	},
}

func TestCompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out := compactInputs(test.inputs)
		if !reflect.DeepEqual(out, test.compact) {
			t.Log("out     ", out)
			t.Log("expected", test.compact)
			t.Fail()
		}
	}
}

func TestUncompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out := uncompactInputs(test.compact)
		if !reflect.DeepEqual(out, test.inputs) {
			t.Log("in      ", test.compact)
			t.Log("out     ", out)
			t.Log("expected", test.inputs)
			t.Fail()
		}
	}
}
