// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lock

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Graph is the labeled directed graph an Automaton is built on.  Nodes are
// numbered 0..NumNodes()-1.
type Graph interface {
	Name() string
	NumNodes() int
	NumEdges() int
	IsEdge(s, t int) bool
	NodeName(v int) string
	NodeParam(v int, key string) (string, bool)
	EdgeParam(s, t int, key string) (string, bool)
}

const (
	// InitialParam marks the initial location when present on a node.
	InitialParam = "shape"
	// ActionParam holds the acq(N)/rel(N) label of an edge.
	ActionParam = "xlabel"
	// TryingMarker identifies the trying location by name.
	TryingMarker = "Trying"
)

// ErrNoTrying is returned when an automaton has no trying location.
var ErrNoTrying = errors.New("no trying location")

// Automaton is a lock automaton.  It borrows its Graph and never modifies it.
type Automaton struct {
	g       Graph
	n       int
	initial int
	trying  int
	acts    []Action // n*n, indexed by source*n+target
	maxLock int
}

// New creates an Automaton from g.  The initial location is the last node
// carrying the "shape" parameter (node 0 if there is none, -1 if g has no
// nodes).  Edge actions are read from the "xlabel" parameter; see
// ParseAction.
func New(g Graph) *Automaton {
	n := g.NumNodes()
	a := &Automaton{
		g:      g,
		n:      n,
		trying: -1,
		acts:   make([]Action, n*n)}
	if n == 0 {
		a.initial = -1
	}
	for v := 0; v < n; v++ {
		if _, ok := g.NodeParam(v, InitialParam); ok {
			a.initial = v
		}
		if a.trying == -1 && strings.Contains(g.NodeName(v), TryingMarker) {
			a.trying = v
		}
	}
	for s := 0; s < n; s++ {
		for t := 0; t < n; t++ {
			if !g.IsEdge(s, t) {
				continue
			}
			label, _ := g.EdgeParam(s, t, ActionParam)
			act := ParseAction(label)
			a.acts[s*n+t] = act
			if act.Lock > a.maxLock {
				a.maxLock = act.Lock
			}
		}
	}
	return a
}

// Release drops the action table of a.  The underlying graph is left alone.
// Any later query on edge actions panics.
func (a *Automaton) Release() {
	a.acts = nil
}

func (a *Automaton) check(v int) {
	if v < 0 || v >= a.n {
		panic(fmt.Sprintf("lock: location %d out of range [0,%d) in %s", v, a.n, a.Name()))
	}
}

// Name returns the name of the underlying graph.
func (a *Automaton) Name() string {
	return a.g.Name()
}

// Graph returns the underlying graph.
func (a *Automaton) Graph() Graph {
	return a.g
}

// NumNodes returns the number of locations.
func (a *Automaton) NumNodes() int {
	return a.n
}

// NumEdges returns the number of edges.
func (a *Automaton) NumEdges() int {
	return a.g.NumEdges()
}

// IsEdge returns whether (s, t) is an edge.
func (a *Automaton) IsEdge(s, t int) bool {
	a.check(s)
	a.check(t)
	return a.g.IsEdge(s, t)
}

// Action returns the action of edge (s, t).
//
// Action panics if (s, t) is not an edge.
func (a *Automaton) Action(s, t int) Action {
	if !a.IsEdge(s, t) {
		panic(fmt.Sprintf("lock: (%d, %d) is not an edge of %s", s, t, a.Name()))
	}
	return a.acts[s*a.n+t]
}

// NodeName returns the name of location v.
func (a *Automaton) NodeName(v int) string {
	a.check(v)
	return a.g.NodeName(v)
}

// IsInitial returns whether v is the initial location.
func (a *Automaton) IsInitial(v int) bool {
	return a.initial == v
}

// Initial returns the initial location, -1 for an automaton without
// locations.
func (a *Automaton) Initial() int {
	return a.initial
}

// Trying returns the first location whose name contains "Trying", or -1.
func (a *Automaton) Trying() int {
	return a.trying
}

// MaxLock returns the largest lock used on an edge of a, 0 if none is.
func (a *Automaton) MaxLock() int {
	return a.maxLock
}

// Print writes a description of a: its locations, initial location, edges
// with their actions and largest lock.
func (a *Automaton) Print(w io.Writer) {
	fmt.Fprintf(w, "Automaton %s, %d nodes, %d edges\n", a.Name(), a.n, a.NumEdges())
	for v := 0; v < a.n; v++ {
		fmt.Fprintf(w, "%d: %s\n", v, a.g.NodeName(v))
	}
	if a.initial >= 0 {
		fmt.Fprintf(w, "\nInitial node:\n%d (%s)\n", a.initial, a.g.NodeName(a.initial))
	} else {
		fmt.Fprintf(w, "\nNo initial node\n")
	}
	fmt.Fprintf(w, "\nEdges and actions:\n")
	for s := 0; s < a.n; s++ {
		for t := 0; t < a.n; t++ {
			if a.g.IsEdge(s, t) {
				fmt.Fprintf(w, "(%d -> %d) : %s\n", s, t, a.acts[s*a.n+t])
			}
		}
	}
	fmt.Fprintf(w, "Max lock used: %d\n", a.maxLock)
}

// MaxLock returns the largest lock used by any of automata.
func MaxLock(automata []*Automaton) int {
	m := 0
	for _, a := range automata {
		if a.maxLock > m {
			m = a.maxLock
		}
	}
	return m
}

// TryingLocations returns the trying location of each automaton.
func TryingLocations(automata []*Automaton) ([]int, error) {
	res := make([]int, len(automata))
	for i, a := range automata {
		if a.trying == -1 {
			return nil, fmt.Errorf("automaton %s (%d): %w", a.Name(), i, ErrNoTrying)
		}
		res[i] = a.trying
	}
	return res, nil
}
