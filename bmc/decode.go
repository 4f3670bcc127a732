// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bmc

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-air/lockbmc/lock"
)

// ErrInconsistentModel is returned by Decode when no edge explains a step of
// the model.  It indicates a model which was not produced for the formula
// encoding the same automata and bound, or a formula built in Monotone mode.
var ErrInconsistentModel = errors.New("inconsistent model")

// Decode reconstructs the path of bound steps described by a model of the
// formula Encode(automata, bound, Full).
//
// For each step, the action is given by the first lock whose held variable
// changes, and is a no-op if none does.  The step is then the first edge
// with that action, ordered by automaton, source and target, whose source
// and target match the location variables at t and t+1.  Edges between
// distinct locations are preferred over self loops.
func Decode(m Model, automata []*lock.Automaton, bound int) (lock.Path, error) {
	maxLock := lock.MaxLock(automata)
	path := make(lock.Path, bound)
	for t := 0; t < bound; t++ {
		act := actionAt(m, maxLock, t)
		st, ok := stepAt(m, automata, act, t)
		if !ok {
			return path[:t], fmt.Errorf("step %d (%s): %w", t, act, ErrInconsistentModel)
		}
		path[t] = st
	}
	return path, nil
}

func actionAt(m Model, maxLock, t int) lock.Action {
	for l := 1; l <= maxLock; l++ {
		prev, next := m.Value(HeldName(l, t)), m.Value(HeldName(l, t+1))
		if prev && !next {
			return lock.Rel(l)
		}
		if !prev && next {
			return lock.Acq(l)
		}
	}
	return lock.Action{}
}

func stepAt(m Model, automata []*lock.Automaton, act lock.Action, t int) (lock.Step, bool) {
	for a, aut := range automata {
		n := aut.NumNodes()
		for s := 0; s < n; s++ {
			for d := 0; d < n; d++ {
				if s == d || !aut.IsEdge(s, d) || aut.Action(s, d) != act {
					continue
				}
				if m.Value(AtName(a, s, t)) && m.Value(AtName(a, d, t+1)) {
					return lock.Step{Automaton: a, Source: s, Target: d, Action: act}, true
				}
			}
		}
	}
	for a, aut := range automata {
		for s := 0; s < aut.NumNodes(); s++ {
			if !aut.IsEdge(s, s) || aut.Action(s, s) != act {
				continue
			}
			if m.Value(AtName(a, s, t)) && m.Value(AtName(a, s, t+1)) {
				return lock.Step{Automaton: a, Source: s, Target: s, Action: act}, true
			}
		}
	}
	return lock.Step{}, false
}

// Render writes, for each time 0..bound, the locks held and the location(s)
// of every automaton according to m.
func Render(w io.Writer, m Model, automata []*lock.Automaton, bound int) {
	maxLock := lock.MaxLock(automata)
	fmt.Fprintf(w, "Information deduced from the model of the formula:\n\n")
	for t := 0; t <= bound; t++ {
		fmt.Fprintf(w, "At step %d:\n", t)
		var held []string
		for l := 1; l <= maxLock; l++ {
			if m.Value(HeldName(l, t)) {
				held = append(held, strconv.Itoa(l))
			}
		}
		fmt.Fprintf(w, "Locks taken: %s\n", strings.Join(held, " "))
		for a, aut := range automata {
			var locs []string
			for v := 0; v < aut.NumNodes(); v++ {
				if m.Value(AtName(a, v, t)) {
					locs = append(locs, aut.NodeName(v))
				}
			}
			fmt.Fprintf(w, "Automaton %s(%d) is in state: %s\n", aut.Name(), a, strings.Join(locs, " "))
		}
	}
}
