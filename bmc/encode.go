// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bmc

import (
	"errors"
	"fmt"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/go-air/lockbmc/lock"
)

// ErrNegativeBound is returned for a bound < 0.
var ErrNegativeBound = errors.New("negative bound")

// Mode selects how lock variables are constrained between time steps.
type Mode int

const (
	// Full encodes the initial configuration and the complete transition
	// relation: exactly one edge is taken per step, the automaton taking it
	// moves from its source to its target, the lock it acts on changes
	// accordingly, and everything else is unchanged.  Full formulas are
	// satisfiable exactly when package search finds a deadlock.
	Full Mode = iota

	// Monotone only states that a held lock stays held at the next step.
	// There is no initial configuration and no transition relation, so
	// Monotone formulas over-approximate reachability.  It is kept for
	// compatibility with formulas produced by earlier tools.
	Monotone
)

func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case Monotone:
		return "monotone"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "full" or "monotone".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "full", "":
		return Full, nil
	case "monotone":
		return Monotone, nil
	}
	return Full, fmt.Errorf("unknown encoding %q", s)
}

// Formula is an encoded bounded deadlock problem.  Root is the literal of C
// which is true exactly on models of the problem.
type Formula struct {
	C     *logic.C
	Root  z.Lit
	Bound int
	Mode  Mode

	lits  map[string]z.Lit
	names []string
}

// Lit returns the literal of the variable called name.
func (f *Formula) Lit(name string) (z.Lit, bool) {
	m, ok := f.lits[name]
	return m, ok
}

// Names returns the names of all variables in allocation order.
func (f *Formula) Names() []string {
	return f.names
}

// Encode builds the formula stating that a deadlock of automata is reached
// in exactly bound steps: every automaton is at its trying location and no
// lock is held at time bound.
//
// Encode returns lock.ErrNoTrying, before allocating any variable, if an
// automaton has no trying location.
func Encode(automata []*lock.Automaton, bound int, mode Mode) (*Formula, error) {
	if bound < 0 {
		return nil, ErrNegativeBound
	}
	trying, err := lock.TryingLocations(automata)
	if err != nil {
		return nil, err
	}
	e := &encoder{
		c:        logic.NewC(),
		automata: automata,
		trying:   trying,
		bound:    bound,
		maxLock:  lock.MaxLock(automata),
		f: &Formula{
			Bound: bound,
			Mode:  mode,
			lits:  make(map[string]z.Lit)}}
	e.alloc()
	var root z.Lit
	switch mode {
	case Monotone:
		root = e.c.Ands(e.states(), e.monotone(), e.deadlock())
	default:
		root = e.c.Ands(e.states(), e.initial(), e.transitions(), e.deadlock())
	}
	e.f.C = e.c
	e.f.Root = root
	return e.f, nil
}

type encoder struct {
	c        *logic.C
	f        *Formula
	automata []*lock.Automaton
	trying   []int
	bound    int
	maxLock  int
}

func (e *encoder) lit(name string) z.Lit {
	if m, ok := e.f.lits[name]; ok {
		return m
	}
	m := e.c.Lit()
	e.f.lits[name] = m
	e.f.names = append(e.f.names, name)
	return m
}

func (e *encoder) at(a, v, t int) z.Lit {
	return e.lit(AtName(a, v, t))
}

func (e *encoder) held(l, t int) z.Lit {
	return e.lit(HeldName(l, t))
}

func (e *encoder) move(a, s, d, t int) z.Lit {
	return e.lit(MoveName(a, s, d, t))
}

// alloc creates the location and lock variables, in a fixed order, before
// any constraint.
func (e *encoder) alloc() {
	for a, aut := range e.automata {
		for t := 0; t <= e.bound; t++ {
			for v := 0; v < aut.NumNodes(); v++ {
				e.at(a, v, t)
			}
		}
	}
	for l := 1; l <= e.maxLock; l++ {
		for t := 0; t <= e.bound; t++ {
			e.held(l, t)
		}
	}
}

// states: every automaton is at exactly one location at every time.
func (e *encoder) states() z.Lit {
	c := e.c
	var cs []z.Lit
	for a, aut := range e.automata {
		n := aut.NumNodes()
		vs := make([]z.Lit, n)
		for t := 0; t <= e.bound; t++ {
			for v := range vs {
				vs[v] = e.at(a, v, t)
			}
			cs = append(cs, c.Ors(vs...))
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					cs = append(cs, c.And(vs[i], vs[j]).Not())
				}
			}
		}
	}
	return c.Ands(cs...)
}

// monotone: a held lock stays held.
func (e *encoder) monotone() z.Lit {
	c := e.c
	var cs []z.Lit
	for t := 0; t < e.bound; t++ {
		for l := 1; l <= e.maxLock; l++ {
			cs = append(cs, c.Implies(e.held(l, t), e.held(l, t+1)))
		}
	}
	return c.Ands(cs...)
}

// initial: every automaton is at its initial location and every lock is free.
func (e *encoder) initial() z.Lit {
	c := e.c
	var cs []z.Lit
	for a, aut := range e.automata {
		cs = append(cs, e.at(a, aut.Initial(), 0))
	}
	for l := 1; l <= e.maxLock; l++ {
		cs = append(cs, e.held(l, 0).Not())
	}
	return c.Ands(cs...)
}

func (e *encoder) transitions() z.Lit {
	cs := make([]z.Lit, e.bound)
	for t := range cs {
		cs[t] = e.step(t)
	}
	return e.c.Ands(cs...)
}

// step relates time t to time t+1.
func (e *encoder) step(t int) z.Lit {
	c := e.c
	var (
		cs       []z.Lit
		moves    []z.Lit
		moved    = make([][]z.Lit, len(e.automata))
		touching = make([][]z.Lit, e.maxLock+1)
	)
	for a, aut := range e.automata {
		n := aut.NumNodes()
		for s := 0; s < n; s++ {
			for d := 0; d < n; d++ {
				if !aut.IsEdge(s, d) {
					continue
				}
				m := e.move(a, s, d, t)
				moves = append(moves, m)
				moved[a] = append(moved[a], m)
				post := c.And(e.at(a, s, t), e.at(a, d, t+1))
				act := aut.Action(s, d)
				switch act.Kind {
				case lock.Acquire:
					post = c.Ands(post, e.held(act.Lock, t).Not(), e.held(act.Lock, t+1))
					touching[act.Lock] = append(touching[act.Lock], m)
				case lock.Release:
					post = c.Ands(post, e.held(act.Lock, t), e.held(act.Lock, t+1).Not())
					touching[act.Lock] = append(touching[act.Lock], m)
				}
				cs = append(cs, c.Implies(m, post))
			}
		}
	}
	switch len(moves) {
	case 0:
		return c.F
	case 1:
		cs = append(cs, moves[0])
	default:
		card := c.CardSort(moves)
		cs = append(cs, c.And(card.Geq(1), card.Leq(1)))
	}
	// an automaton which does not move stays where it is
	for a, aut := range e.automata {
		stay := make([]z.Lit, aut.NumNodes())
		for v := range stay {
			stay[v] = c.Xor(e.at(a, v, t), e.at(a, v, t+1)).Not()
		}
		cs = append(cs, c.Implies(c.Ors(moved[a]...).Not(), c.Ands(stay...)))
	}
	// a lock changes only when the move taken acts on it
	for l := 1; l <= e.maxLock; l++ {
		changed := c.Xor(e.held(l, t), e.held(l, t+1))
		cs = append(cs, c.Implies(changed, c.Ors(touching[l]...)))
	}
	return c.Ands(cs...)
}

// deadlock: at time bound every automaton is at its trying location and no
// lock is held.
func (e *encoder) deadlock() z.Lit {
	c := e.c
	var cs []z.Lit
	for a := range e.automata {
		cs = append(cs, e.at(a, e.trying[a], e.bound))
	}
	for l := 1; l <= e.maxLock; l++ {
		cs = append(cs, e.held(l, e.bound).Not())
	}
	return c.Ands(cs...)
}
