package session

import (
	"reflect"
	"testing"
	"time"

	"git.lost.host/meutraa/mania/internal/game"
	"git.lost.host/meutraa/mania/internal/input"
	"git.lost.host/meutraa/mania/internal/mods"
	"git.lost.host/meutraa/mania/internal/score"
)

var bindings = []string{"d", "f", "j", "k"}

func newChart(times map[uint8][]time.Duration) *game.Chart {
	notes := []*game.Note{}
	for col, ts := range times {
		for _, t := range ts {
			notes = append(notes, &game.Note{Column: col, Time: t * time.Millisecond})
		}
	}
	return game.NewChart(4, notes)
}

func press(events *input.Events, keys ...string) {
	for _, k := range keys {
		events.Push(input.Event{Key: k, Pressed: true})
	}
	events.Drain()
}

func release(events *input.Events, keys ...string) {
	for _, k := range keys {
		events.Push(input.Event{Key: k})
	}
	events.Drain()
}

func TestPlay(t *testing.T) {
	chart := newChart(map[uint8][]time.Duration{0: {1000}, 1: {1500}, 2: {2000}, 3: {2500}})
	s, err := New(chart, bindings, 8, mods.ModSet{})
	if err != nil {
		t.Fatal(err)
	}
	events := input.NewEvents(16)
	s.Attach(events)

	var seen []game.Judgement
	s.OnJudgement = func(note *game.Note, j game.Judgement, delta float64) {
		seen = append(seen, j)
	}

	press(events, "d")
	s.Tick(1000 * time.Millisecond)
	release(events, "d")
	s.Tick(1100 * time.Millisecond)

	press(events, "f")
	s.Tick(1530 * time.Millisecond)
	release(events, "f")

	s.Tick(2200 * time.Millisecond)

	press(events, "k")
	s.Tick(2400 * time.Millisecond)

	press(events, "d")
	s.Tick(3000 * time.Millisecond)

	expected := []game.Judgement{game.Max, game.Perfect, game.Miss, game.Good}
	if !reflect.DeepEqual(s.Judgements(), expected) {
		t.Fatalf("judgements %v, expected %v", s.Judgements(), expected)
	}
	if !reflect.DeepEqual(seen, expected) {
		t.Errorf("callback saw %v", seen)
	}
	if !s.Done() {
		t.Error("session should be done")
	}

	_, total, _ := score.Replay(4, expected)
	if s.Score() != total {
		t.Errorf("score %v, replayed %v", s.Score(), total)
	}

	mean, stdev := s.Stats()
	if mean != -23.33 || stdev != 55.58 {
		t.Errorf("stats %v %v", mean, stdev)
	}

	r := s.Record()
	if len(r.Inputs) != 4 || r.Mods != "NM" || r.HitObjects != 4 || r.Score != total {
		t.Errorf("record %+v", r)
	}
	if r.ChartHash != chart.Hash() {
		t.Error("record chart hash mismatch")
	}
}

func TestHeldKeyHitsOnce(t *testing.T) {
	chart := newChart(map[uint8][]time.Duration{0: {1000, 1100}})
	s, _ := New(chart, bindings, 8, mods.ModSet{})
	events := input.NewEvents(16)
	s.Attach(events)

	press(events, "d")
	s.Tick(1000 * time.Millisecond)
	// autorepeat while held
	press(events, "d", "d")
	s.Tick(1100 * time.Millisecond)
	s.Tick(1300 * time.Millisecond)

	expected := []game.Judgement{game.Max, game.Miss}
	if !reflect.DeepEqual(s.Judgements(), expected) {
		t.Errorf("judgements %v, expected %v", s.Judgements(), expected)
	}
	if !s.Keys().IsHeld("d") || s.Keys().IsTapped("d") {
		t.Error("tick did not clear the tap but keep the hold")
	}
}

func TestTapHitsEarliestNoteInColumn(t *testing.T) {
	chart := newChart(map[uint8][]time.Duration{0: {1000, 1100}})
	s, _ := New(chart, bindings, 8, mods.ModSet{})
	events := input.NewEvents(16)
	s.Attach(events)

	// 60ms late for the first note, 40ms early for the second
	press(events, "d")
	s.Tick(1060 * time.Millisecond)
	if chart.Notes[1].Resolved || !chart.Notes[0].Resolved {
		t.Fatal("tap consumed the later note")
	}
	release(events, "d")
	s.Tick(1300 * time.Millisecond)

	expected := []game.Judgement{game.Great, game.Miss}
	if !reflect.DeepEqual(s.Judgements(), expected) {
		t.Errorf("judgements %v, expected %v", s.Judgements(), expected)
	}
}

func TestEarlyPressOutsideWindow(t *testing.T) {
	chart := newChart(map[uint8][]time.Duration{2: {2000}})
	s, _ := New(chart, bindings, 8, mods.ModSet{})
	events := input.NewEvents(16)
	s.Attach(events)

	press(events, "j")
	s.Tick(1500 * time.Millisecond)
	if len(s.Judgements()) != 0 {
		t.Errorf("press 500ms early consumed a note: %v", s.Judgements())
	}
	release(events, "j")
	press(events, "j")
	s.Tick(1880 * time.Millisecond)
	// 120ms early with OD 8 is a 50
	if !reflect.DeepEqual(s.Judgements(), []game.Judgement{game.Bad}) {
		t.Errorf("judgements %v", s.Judgements())
	}
}

func TestHardRockTightensWindows(t *testing.T) {
	chart := newChart(map[uint8][]time.Duration{0: {1000}})
	m, _ := mods.Parse("HR")
	s, _ := New(chart, bindings, 5, m)
	nm, _ := New(newChart(map[uint8][]time.Duration{0: {1000}}), bindings, 5, mods.ModSet{})
	if s.Windows().Grades[1] >= nm.Windows().Grades[1] {
		t.Errorf("HR 300 window %v not tighter than %v", s.Windows().Grades[1], nm.Windows().Grades[1])
	}
}

func TestRetryStartsFresh(t *testing.T) {
	chart := newChart(map[uint8][]time.Duration{0: {1000}, 1: {2000}})
	s, _ := New(chart, bindings, 8, mods.ModSet{})
	events := input.NewEvents(16)
	s.Attach(events)

	s.Tick(5000 * time.Millisecond)
	if s.Accumulator().Bonus() != 0 {
		t.Fatalf("bonus after two misses = %d", s.Accumulator().Bonus())
	}

	next, err := s.Retry()
	if err != nil {
		t.Fatal(err)
	}
	if next.Accumulator().Bonus() != 100 || next.Score() != 0 || len(next.Judgements()) != 0 {
		t.Error("retry reused state")
	}

	press(events, "d")
	if s.Keys().IsHeld("d") {
		t.Error("closed session still receives input")
	}
	if !next.Keys().IsTapped("d") {
		t.Error("retried session is not attached")
	}
	next.Tick(1000 * time.Millisecond)
	if !reflect.DeepEqual(next.Judgements(), []game.Judgement{game.Max}) {
		t.Errorf("judgements %v", next.Judgements())
	}

	next.Close()
	next.Close()
}

func TestBindingsMustMatchKeys(t *testing.T) {
	chart := newChart(map[uint8][]time.Duration{0: {1000}})
	if _, err := New(chart, []string{"d"}, 8, mods.ModSet{}); err == nil {
		t.Error("expected an error for 1 binding on a 4K chart")
	}
	if _, err := New(game.NewChart(4, nil), bindings, 8, mods.ModSet{}); err == nil {
		t.Error("expected an error for an empty chart")
	}
}
