// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lock

import (
	"errors"
	"fmt"
)

// State is a global configuration: the current location of every automaton
// and whether each lock is held.  Held is indexed by lock, slot 0 is unused.
type State struct {
	Locs []int
	Held []bool
}

// NewState returns the initial configuration of automata: every automaton at
// its initial location and every lock free.
func NewState(automata []*Automaton) *State {
	s := &State{
		Locs: make([]int, len(automata)),
		Held: make([]bool, MaxLock(automata)+1)}
	for i, a := range automata {
		s.Locs[i] = a.initial
	}
	return s
}

// Enabled returns whether act may be taken in s: an acquire needs the lock
// free, a release needs it held.
func (s *State) Enabled(act Action) bool {
	switch act.Kind {
	case Acquire:
		return !s.Held[act.Lock]
	case Release:
		return s.Held[act.Lock]
	default:
		return true
	}
}

// Apply takes step st.  It does not check that st is enabled.
func (s *State) Apply(st Step) {
	s.Locs[st.Automaton] = st.Target
	switch st.Action.Kind {
	case Acquire:
		s.Held[st.Action.Lock] = true
	case Release:
		s.Held[st.Action.Lock] = false
	}
}

// Undo reverts Apply(st).
func (s *State) Undo(st Step) {
	s.Locs[st.Automaton] = st.Source
	switch st.Action.Kind {
	case Acquire:
		s.Held[st.Action.Lock] = false
	case Release:
		s.Held[st.Action.Lock] = true
	}
}

// NumHeld returns the number of held locks.
func (s *State) NumHeld() int {
	n := 0
	for _, h := range s.Held {
		if h {
			n++
		}
	}
	return n
}

// Deadlocked returns whether every automaton i is at trying[i] and no lock
// is held.
func (s *State) Deadlocked(trying []int) bool {
	for i, v := range s.Locs {
		if v != trying[i] {
			return false
		}
	}
	return s.NumHeld() == 0
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	return &State{
		Locs: append([]int(nil), s.Locs...),
		Held: append([]bool(nil), s.Held...)}
}

// ErrIllegalStep is returned by Replay for a step which cannot be taken.
var ErrIllegalStep = errors.New("illegal step")

// Replay plays path from the initial configuration of automata and returns
// the resulting configuration.  Every step must name an edge leaving the
// current location of its automaton, carry that edge's action, and be
// enabled.
func Replay(automata []*Automaton, path Path) (*State, error) {
	s := NewState(automata)
	for i, st := range path {
		if err := legal(automata, s, st); err != nil {
			return s, fmt.Errorf("step %d (%s): %w: %s", i, st, ErrIllegalStep, err)
		}
		s.Apply(st)
	}
	return s, nil
}

func legal(automata []*Automaton, s *State, st Step) error {
	if st.Automaton < 0 || st.Automaton >= len(automata) {
		return fmt.Errorf("no automaton %d", st.Automaton)
	}
	a := automata[st.Automaton]
	if st.Source != s.Locs[st.Automaton] {
		return fmt.Errorf("%s is at %d, not %d", a.Name(), s.Locs[st.Automaton], st.Source)
	}
	if st.Target < 0 || st.Target >= a.n || !a.g.IsEdge(st.Source, st.Target) {
		return fmt.Errorf("(%d, %d) is not an edge of %s", st.Source, st.Target, a.Name())
	}
	if act := a.Action(st.Source, st.Target); act != st.Action {
		return fmt.Errorf("edge action is %s", act)
	}
	if !s.Enabled(st.Action) {
		return fmt.Errorf("%s not enabled", st.Action)
	}
	return nil
}
