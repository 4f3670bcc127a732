// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/go-air/lockbmc/dot"
	"github.com/go-air/lockbmc/lock"
)

// make the rng seedable
var rng = rand.New(rand.NewSource(33))
var mu sync.Mutex

func Seed(s int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewSource(s))
}

var initial = map[string]string{lock.InitialParam: "box"}

func label(a lock.Action) map[string]string {
	return map[string]string{lock.ActionParam: a.String()}
}

// Mutex creates a process cycling through Idle, Trying and Inside: it
// enters Inside by acquiring lock l and releases l on leaving.
func Mutex(name string, l int) *dot.Graph {
	g := dot.NewGraph(name)
	g.AddNode("Idle", initial)
	g.AddEdge("Idle", "Trying", label(lock.Action{}))
	g.AddEdge("Trying", "Inside", label(lock.Acq(l)))
	g.AddEdge("Inside", "Idle", label(lock.Rel(l)))
	return g
}

// Cycle creates n processes in a cyclic lock wait.  Process i (from 1) moves
// from Idle to Trying, acquires lock i, then lock i+1 (lock 1 for the last
// process), and releases both before returning to Idle.
//
// Every process holding its first lock while waiting for the second is the
// classic circular wait.  All processes parked at Trying with no lock held
// is reachable in exactly n steps.
func Cycle(n int) []*dot.Graph {
	res := make([]*dot.Graph, n)
	for i := 1; i <= n; i++ {
		j := i%n + 1
		g := dot.NewGraph(fmt.Sprintf("P%d", i))
		g.AddNode("Idle", initial)
		g.AddEdge("Idle", "Trying", label(lock.Action{}))
		g.AddEdge("Trying", "Left", label(lock.Acq(i)))
		g.AddEdge("Left", "Both", label(lock.Acq(j)))
		g.AddEdge("Both", "Leaving", label(lock.Rel(j)))
		g.AddEdge("Leaving", "Idle", label(lock.Rel(i)))
		res[i-1] = g
	}
	return res
}

// Ring creates n processes which must each pass a critical section guarded
// by two locks before parking.  Process i (from 1) acquires lock i, then
// lock i+1 (lock 1 for the last process), releases them in reverse order and
// moves to Trying, which has no outgoing edge.
//
// Every process holding its first lock is a circular wait from which Trying
// cannot be reached, so the only deadlocking paths of 4n steps run the
// critical sections without that overlap.
func Ring(n int) []*dot.Graph {
	res := make([]*dot.Graph, n)
	for i := 1; i <= n; i++ {
		j := i%n + 1
		g := dot.NewGraph(fmt.Sprintf("P%d", i))
		g.AddNode("Idle", initial)
		g.AddEdge("Idle", "Own", label(lock.Acq(i)))
		g.AddEdge("Own", "Both", label(lock.Acq(j)))
		g.AddEdge("Both", "Half", label(lock.Rel(j)))
		g.AddEdge("Half", "Trying", label(lock.Rel(i)))
		res[i-1] = g
	}
	return res
}

// Idle adds a no-op self loop on the trying location of g, if any.
func Idle(g *dot.Graph) *dot.Graph {
	if v := lock.New(g).Trying(); v >= 0 {
		n := g.NodeName(v)
		g.AddEdge(n, n, label(lock.Action{}))
	}
	return g
}

type pair struct {
	s, t int
}

// RandAutomaton creates a random automaton called name with the given number
// of locations, at least 2, and at most the given number of distinct edges,
// self loops included.  Location 0 is "Idle", the initial location, and
// location 1 is "Trying".  Each edge is a no-op, or acquires or releases a
// lock chosen from 1..locks.
func RandAutomaton(name string, nodes, edges, locks int) *dot.Graph {
	mu.Lock() // for package rng
	defer mu.Unlock()
	return randAutomaton(name, nodes, edges, locks)
}

func randAutomaton(name string, nodes, edges, locks int) *dot.Graph {
	if nodes < 2 {
		nodes = 2
	}
	g := dot.NewGraph(name)
	names := make([]string, nodes)
	for i := range names {
		switch i {
		case 0:
			names[i] = "Idle"
		case 1:
			names[i] = "Trying"
		default:
			names[i] = fmt.Sprintf("S%d", i)
		}
	}
	g.AddNode(names[0], initial)
	for _, n := range names[1:] {
		g.AddNode(n, nil)
	}
	ps := make([]pair, 0, nodes*nodes)
	for s := 0; s < nodes; s++ {
		for t := 0; t < nodes; t++ {
			ps = append(ps, pair{s, t})
		}
	}
	if edges > len(ps) {
		edges = len(ps)
	}
	for i := 0; i < edges; i++ {
		// sample without replacement
		el := len(ps)
		j := rng.Intn(el)
		p := ps[j]
		el--
		ps[j], ps[el] = ps[el], ps[j]
		ps = ps[:el]

		var act lock.Action
		if locks > 0 {
			l := rng.Intn(locks) + 1
			switch rng.Intn(3) {
			case 1:
				act = lock.Acq(l)
			case 2:
				act = lock.Rel(l)
			}
		}
		g.AddEdge(names[p.s], names[p.t], label(act))
	}
	return g
}

// RandAutomata creates n random automata P1..Pn, see RandAutomaton.
func RandAutomata(n, nodes, edges, locks int) []*dot.Graph {
	mu.Lock()
	defer mu.Unlock()
	res := make([]*dot.Graph, n)
	for i := range res {
		res[i] = randAutomaton(fmt.Sprintf("P%d", i+1), nodes, edges, locks)
	}
	return res
}

// Automata lifts graphs into lock automata.
func Automata(gs ...*dot.Graph) []*lock.Automaton {
	res := make([]*lock.Automaton, len(gs))
	for i, g := range gs {
		res[i] = lock.New(g)
	}
	return res
}
