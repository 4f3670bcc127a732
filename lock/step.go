// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lock

import (
	"fmt"
	"io"
)

// Step is a single move of an interleaving: automaton Automaton follows the
// edge (Source, Target) performing Action.
type Step struct {
	Automaton int
	Source    int
	Target    int
	Action    Action
}

func (s Step) String() string {
	return fmt.Sprintf("%d: %d -> %d (%s)", s.Automaton, s.Source, s.Target, s.Action)
}

// Path is a sequence of steps starting from the initial configuration.
type Path []Step

// Format returns the line describing step i of a path over automata.
func Format(automata []*Automaton, i int, st Step) string {
	a := automata[st.Automaton]
	return fmt.Sprintf("Step %d: %s : %s -> %s (%s)", i+1, a.Name(),
		a.NodeName(st.Source), a.NodeName(st.Target), st.Action)
}

// PrintPath writes path to w, one line per step.
func PrintPath(w io.Writer, automata []*Automaton, path Path) {
	for i, st := range path {
		fmt.Fprintln(w, Format(automata, i, st))
	}
}
