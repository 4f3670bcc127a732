// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/lockbmc/bmc"
	"github.com/go-air/lockbmc/dot"
	"github.com/go-air/lockbmc/lock"
)

func TestCycle(t *testing.T) {
	gs := Cycle(3)
	require.Len(t, gs, 3)
	for i, g := range gs {
		a := lock.New(g)
		assert.Equal(t, 5, a.NumNodes())
		assert.Equal(t, 5, a.NumEdges())
		assert.Equal(t, "Idle", a.NodeName(a.Initial()))
		assert.Equal(t, "Trying", a.NodeName(a.Trying()))
		l, _ := g.Node("Left")
		b, _ := g.Node("Both")
		assert.Equal(t, lock.Acq((i+1)%3+1), a.Action(l, b))
	}
	assert.Equal(t, 3, lock.MaxLock(Automata(gs...)))
}

func TestRing(t *testing.T) {
	gs := Ring(3)
	require.Len(t, gs, 3)
	for i, g := range gs {
		a := lock.New(g)
		assert.Equal(t, 5, a.NumNodes())
		assert.Equal(t, 4, a.NumEdges())
		tr := a.Trying()
		require.GreaterOrEqual(t, tr, 0)
		for v := 0; v < a.NumNodes(); v++ {
			assert.False(t, a.IsEdge(tr, v))
		}
		assert.Equal(t, lock.Acq(i+1), a.Action(0, 1))
		assert.Equal(t, lock.Acq((i+1)%3+1), a.Action(1, 2))
	}
}

func TestIdle(t *testing.T) {
	g := Idle(Mutex("P", 1))
	a := lock.New(g)
	assert.Equal(t, 4, a.NumEdges())
	assert.True(t, a.IsEdge(a.Trying(), a.Trying()))
	assert.Equal(t, lock.Action{}, a.Action(a.Trying(), a.Trying()))

	// no trying location, no loop
	h := dot.NewGraph("Q")
	h.AddEdge("a", "b", nil)
	assert.Equal(t, 1, Idle(h).NumEdges())
}

func TestRandAutomaton(t *testing.T) {
	Seed(5)
	gs := RandAutomata(3, 4, 7, 2)
	Seed(5)
	hs := RandAutomata(3, 4, 7, 2)
	for i := range gs {
		g, h := gs[i], hs[i]
		assert.Equal(t, g.Name(), h.Name())
		require.Equal(t, 4, g.NumNodes())
		// pairs are drawn without replacement
		assert.Equal(t, 7, g.NumEdges())
		a, b := lock.New(g), lock.New(h)
		assert.Equal(t, 0, a.Initial())
		assert.Equal(t, 1, a.Trying())
		assert.LessOrEqual(t, a.MaxLock(), 2)
		for s := 0; s < 4; s++ {
			for d := 0; d < 4; d++ {
				require.Equal(t, g.IsEdge(s, d), h.IsEdge(s, d))
				if g.IsEdge(s, d) {
					assert.Equal(t, a.Action(s, d), b.Action(s, d))
				}
			}
		}
	}
	g := RandAutomaton("X", 1, 100, 0)
	assert.Equal(t, 2, g.NumNodes())
	assert.Equal(t, 4, g.NumEdges())
	assert.Equal(t, 0, lock.New(g).MaxLock())
}

func TestConstSolver(t *testing.T) {
	as := Automata(Mutex("P1", 1), Mutex("P2", 1))
	f, err := bmc.Encode(as, 1, bmc.Full)
	require.NoError(t, err)
	ctx := context.Background()

	res, err := ConstSolver(0, bmc.Unsat).Solve(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, bmc.Unsat, res.Status)

	res, err = ConstSolver(time.Millisecond, bmc.Sat).Solve(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, bmc.Sat, res.Status)
	require.NotNil(t, res.Model)
	res.Model.Value(f.Names()[0])

	s := ConstSolver(0, bmc.Unknown)
	for i := 0; i < 8; i++ {
		res, err := s.Solve(ctx, f)
		require.NoError(t, err)
		assert.NotEqual(t, bmc.Unknown, res.Status)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ConstSolver(time.Hour, bmc.Sat).Solve(cctx, f)
	assert.ErrorIs(t, err, context.Canceled)
}
