//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"git.lost.host/meutraa/mania/internal/clock"
	"git.lost.host/meutraa/mania/internal/config"
	"git.lost.host/meutraa/mania/internal/game"
	"git.lost.host/meutraa/mania/internal/input"
	"git.lost.host/meutraa/mania/internal/mods"
	"git.lost.host/meutraa/mania/internal/render"
	"git.lost.host/meutraa/mania/internal/score"
	"git.lost.host/meutraa/mania/internal/session"
	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

// terminal is everything an interactive command needs: the evdev event
// queue, the song clock, the Esc listener and the renderer.
type terminal struct {
	keys    []string
	events  *input.Events
	clock   clock.Clock
	escape  <-chan keyboard.KeyEvent
	r       render.Renderer
	closers []func()
}

func openTerminal(m mods.ModSet) (*terminal, error) {
	bindings := config.DefaultBindings
	if *config.BindingsFile != "" {
		var err error
		if bindings, err = config.LoadBindings(*config.BindingsFile); nil != err {
			return nil, err
		}
	}
	keys, err := bindings.Keys(*config.KeyCount)
	if nil != err {
		return nil, err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("an interactive terminal is required")
	}

	t := &terminal{keys: keys, events: input.NewEvents(128)}

	log.Printf("Opening %v\n", *config.Device)
	device, err := input.ReadDevice(*config.Device, t.events)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard device: %w", err)
	}
	t.closers = append(t.closers, func() { device.Close() })

	if t.escape, err = keyboard.GetKeys(16); nil != err {
		t.Close()
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	t.closers = append(t.closers, func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	})

	t.clock = clock.NewWall(*config.Delay, m.Rate())
	if *config.Audio != "" {
		log.Printf("Opening %v\n", *config.Audio)
		streamer, format, err := clock.OpenAudio(*config.Audio)
		if nil != err {
			t.Close()
			return nil, err
		}
		t.closers = append(t.closers, func() { streamer.Close() })
		if t.clock, err = clock.Play(streamer, format, m.Rate(), *config.Delay); nil != err {
			t.Close()
			return nil, err
		}
	}

	t.r = &render.DefaultRenderer{}
	if err := t.r.Init(); nil != err {
		t.Close()
		return nil, err
	}
	t.closers = append(t.closers, func() { t.r.Deinit() })
	return t, nil
}

// Close releases in reverse order of acquisition.
func (t *terminal) Close() {
	for i := len(t.closers) - 1; i >= 0; i-- {
		t.closers[i]()
	}
	t.closers = nil
}

func (t *terminal) escaped() bool {
	select {
	case key := <-t.escape:
		return key.Key == keyboard.KeyEsc
	default:
		return false
	}
}

func (t *terminal) column(columns, i int) int {
	spacing := 6
	col := columns/2 - spacing*(len(t.keys)-1)/2 + i*spacing
	if col < 1 {
		col = 1
	}
	return col
}

func (t *terminal) framePeriod() time.Duration {
	return time.Duration(float64(time.Second) / *config.RefreshRate)
}

func runKeytest(m mods.ModSet) error {
	t, err := openTerminal(m)
	if nil != err {
		return err
	}
	defer t.Close()

	state := input.NewKeyState()
	state.Attach(t.events)
	defer state.Detach()

	rows, columns := t.r.Size()
	taps := 0

	t.r.RenderLoop(t.framePeriod(), func(frame uint64) bool {
		if t.escaped() {
			return false
		}
		t.events.Drain()
		now := t.clock.Now()

		for i, k := range t.keys {
			col := t.column(columns, i)
			sym := "·"
			if state.IsHeld(k) {
				sym = "█"
			}
			t.r.Fill(rows-4, col, sym)
			if state.IsTapped(k) {
				taps++
				t.r.AddDecoration(rows-6, col, "▼", 30)
			}
			if state.IsReleased(k) {
				t.r.AddDecoration(rows-2, col, "▲", 30)
			}
			t.r.Fill(rows-1, col, k)
		}
		t.r.Fill(2, 2, fmt.Sprintf("  Song time:  %10v", now.Round(time.Millisecond)))
		t.r.Fill(3, 2, fmt.Sprintf("       Held:  %-40s", strings.Join(state.Held(), " ")))
		t.r.Fill(4, 2, fmt.Sprintf("       Taps:  %6v", taps))
		t.r.Fill(5, 2, fmt.Sprintf("      Frame:  %6v", frame))

		// The frame has read the sets
		state.Clear()
		return true
	})
	return nil
}

func runPlay(m mods.ModSet) error {
	chart := game.Metronome(*config.KeyCount, *config.PlayBPM, *config.PlayNotes, 0)

	t, err := openTerminal(m)
	if nil != err {
		return err
	}
	defer t.Close()

	s, err := session.New(chart, t.keys, *config.PlayOD, m)
	if nil != err {
		return err
	}
	s.Attach(t.events)
	defer s.Close()

	rows, columns := t.r.Size()
	var tickErr error
	s.OnJudgement = func(note *game.Note, j game.Judgement, delta float64) {
		col := t.column(columns, int(note.Column))
		t.r.AddDecoration(rows-6, col-1, fmt.Sprintf("%-4v", j), 60)
	}

	t.r.RenderLoop(t.framePeriod(), func(frame uint64) bool {
		if t.escaped() {
			return false
		}
		t.events.Drain()
		now := t.clock.Now()
		if tickErr = s.Tick(now); nil != tickErr {
			return false
		}

		for i, k := range t.keys {
			col := t.column(columns, i)
			sym := "·"
			if s.Keys().IsHeld(k) {
				sym = "█"
			}
			t.r.Fill(rows-4, col, sym)
			t.r.Fill(rows-1, col, k)
		}
		// Only the next note is shown, the chart itself is not drawn.
		next := "    "
		if active := chart.Active(); len(active) > 0 {
			next = fmt.Sprintf("%4v", (active[0].Time - now).Round(10*time.Millisecond))
		}
		acc := s.Accumulator()
		mean, stdev := s.Stats()
		t.r.Fill(2, 2, fmt.Sprintf("      Score:  %10.0f", s.Score()))
		t.r.Fill(3, 2, fmt.Sprintf("   Accuracy:  %9.2f%%", acc.Accuracy()*100))
		t.r.Fill(4, 2, fmt.Sprintf("      Bonus:  %10v", acc.Bonus()))
		t.r.Fill(5, 2, fmt.Sprintf("  Mean/SD:  %6.2f/%6.2f", mean, stdev))
		t.r.Fill(6, 2, fmt.Sprintf("  Next note:  %10v", next))
		return !s.Done()
	})
	if nil != tickErr {
		return tickErr
	}
	if !s.Done() {
		return nil
	}

	store, err := score.Open(*config.Database)
	if nil != err {
		return err
	}
	defer store.Close()
	record := s.Record()
	if err := store.Save(context.Background(), record); nil != err {
		return err
	}
	log.Printf("saved %v: %.0f (%s) under %s\n", record.ID, record.Score, score.Grade(s.Accumulator().Accuracy()), record.ChartHash)
	return nil
}
