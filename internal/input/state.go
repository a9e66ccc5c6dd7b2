// Package input turns asynchronous key press and release signals into the
// per-tick held, tapped and released sets read by the judgement logic.
package input

import (
	"sort"
)

// KeyState is owned by a single play session. It is not safe for
// concurrent use; events and ticks are expected on one goroutine.
type KeyState struct {
	held     map[string]bool
	tapped   map[string]bool
	released map[string]bool

	unsubscribe func()
	detached    bool
}

func NewKeyState() *KeyState {
	return &KeyState{
		held:     map[string]bool{},
		tapped:   map[string]bool{},
		released: map[string]bool{},
	}
}

// Press marks key as held and, if it was not already held, as tapped this
// tick. Repeat presses of a held key change nothing.
func (s *KeyState) Press(key string) {
	if s.held[key] {
		return
	}
	s.held[key] = true
	s.tapped[key] = true
	delete(s.released, key)
}

func (s *KeyState) Release(key string) {
	delete(s.held, key)
	delete(s.tapped, key)
	s.released[key] = true
}

// Clear empties tapped and released. Call it once per tick, after the
// tick's judgement logic has read the sets.
func (s *KeyState) Clear() {
	for k := range s.tapped {
		delete(s.tapped, k)
	}
	for k := range s.released {
		delete(s.released, k)
	}
}

func (s *KeyState) IsHeld(key string) bool     { return s.held[key] }
func (s *KeyState) IsTapped(key string) bool   { return s.tapped[key] }
func (s *KeyState) IsReleased(key string) bool { return s.released[key] }

func (s *KeyState) Held() []string     { return keys(s.held) }
func (s *KeyState) Tapped() []string   { return keys(s.tapped) }
func (s *KeyState) Released() []string { return keys(s.released) }

// Handle applies a single event. Events arriving after Detach are dropped.
func (s *KeyState) Handle(ev Event) {
	if s.detached {
		return
	}
	if ev.Pressed {
		s.Press(ev.Key)
	} else {
		s.Release(ev.Key)
	}
}

// Attach subscribes the state to src, replacing any previous source.
func (s *KeyState) Attach(src Source) {
	s.Detach()
	s.detached = false
	s.unsubscribe = src.Subscribe(s.Handle)
}

// Detach unsubscribes from the attached source. It may be called any
// number of times.
func (s *KeyState) Detach() {
	s.detached = true
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func keys(m map[string]bool) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
