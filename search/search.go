// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package search decides bounded deadlock reachability of lock automata by
// exhaustive depth-first exploration of their interleavings.
//
// The search is exponential in the bound.  It serves as the reference
// against which the SAT encoding of package bmc is validated.
package search

import (
	"errors"

	"github.com/go-air/lockbmc/lock"
)

// ErrNegativeBound is returned for a bound < 0.
var ErrNegativeBound = errors.New("negative bound")

// Result is the outcome of a search.
type Result struct {
	// Found is true if a deadlock is reachable in exactly the bound.
	Found bool
	// Path leads to the deadlock when Found.
	Path lock.Path
	// Visited counts the configurations explored.
	Visited int
}

// Deadlock searches for a path of exactly bound steps from the initial
// configuration of automata to a configuration where every automaton is at
// its trying location and no lock is held.
//
// Moves are tried automaton by automaton, and for each automaton by
// increasing target location.  The first deadlocking path found is
// returned.
func Deadlock(automata []*lock.Automaton, bound int) (Result, error) {
	if bound < 0 {
		return Result{}, ErrNegativeBound
	}
	trying, err := lock.TryingLocations(automata)
	if err != nil {
		return Result{}, err
	}
	s := &searcher{
		automata: automata,
		trying:   trying,
		dist:     make([][]int, len(automata)),
		state:    lock.NewState(automata),
		path:     make(lock.Path, 0, bound),
		bound:    bound}
	for i, a := range automata {
		s.dist[i] = distances(a, trying[i])
	}
	var res Result
	res.Found = s.dfs()
	res.Visited = s.visited
	if res.Found {
		res.Path = append(lock.Path(nil), s.path...)
	}
	return res, nil
}

type searcher struct {
	automata []*lock.Automaton
	trying   []int
	dist     [][]int // dist[i][v]: fewest edges from v to trying[i], -1 if none
	state    *lock.State
	path     lock.Path
	bound    int
	visited  int
}

func (s *searcher) dfs() bool {
	s.visited++
	depth := len(s.path)
	if depth == s.bound {
		return s.state.Deadlocked(s.trying)
	}
	if !s.feasible(s.bound - depth) {
		return false
	}
	for i, a := range s.automata {
		src := s.state.Locs[i]
		for t := 0; t < a.NumNodes(); t++ {
			if !a.IsEdge(src, t) {
				continue
			}
			act := a.Action(src, t)
			if !s.state.Enabled(act) {
				continue
			}
			st := lock.Step{Automaton: i, Source: src, Target: t, Action: act}
			s.state.Apply(st)
			s.path = append(s.path, st)
			if s.dfs() {
				return true
			}
			s.path = s.path[:depth]
			s.state.Undo(st)
		}
	}
	return false
}

// feasible reports whether a deadlock may still be reached in rem steps.
// Each step moves a single automaton along a single edge and releases at
// most one lock.
func (s *searcher) feasible(rem int) bool {
	need := 0
	for i, v := range s.state.Locs {
		d := s.dist[i][v]
		if d < 0 {
			return false
		}
		need += d
	}
	return need <= rem && s.state.NumHeld() <= rem
}

// distances returns, for each location of a, the length of a shortest
// path to target, ignoring locks, or -1 if target is unreachable.
func distances(a *lock.Automaton, target int) []int {
	n := a.NumNodes()
	dist := make([]int, n)
	for i := range dist {
		dist[i] = -1
	}
	dist[target] = 0
	queue := []int{target}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for u := 0; u < n; u++ {
			if dist[u] == -1 && a.IsEdge(u, v) {
				dist[u] = dist[v] + 1
				queue = append(queue, u)
			}
		}
	}
	return dist
}
