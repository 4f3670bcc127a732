// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bmc_test

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-air/gini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/lockbmc/bmc"
	"github.com/go-air/lockbmc/dot"
	"github.com/go-air/lockbmc/gen"
	"github.com/go-air/lockbmc/lock"
	"github.com/go-air/lockbmc/search"
)

func solve(t *testing.T, as []*lock.Automaton, k int, mode bmc.Mode) (*bmc.Formula, bmc.Result) {
	t.Helper()
	f, err := bmc.Encode(as, k, mode)
	require.NoError(t, err)
	res, err := bmc.NewGini().Solve(context.Background(), f)
	require.NoError(t, err)
	require.NotEqual(t, bmc.Unknown, res.Status)
	return f, res
}

// decode checks that the model of res describes a legal deadlocking path.
func decode(t *testing.T, as []*lock.Automaton, k int, res bmc.Result) lock.Path {
	t.Helper()
	path, err := bmc.Decode(res.Model, as, k)
	require.NoError(t, err)
	require.Len(t, path, k)
	s, err := lock.Replay(as, path)
	require.NoError(t, err)
	trying, _ := lock.TryingLocations(as)
	require.True(t, s.Deadlocked(trying), "%v", path)
	return path
}

func TestMutex(t *testing.T) {
	as := gen.Automata(gen.Mutex("P1", 1), gen.Mutex("P2", 1))
	_, res := solve(t, as, 1, bmc.Full)
	assert.Equal(t, bmc.Unsat, res.Status)
	assert.Nil(t, res.Model)

	_, res = solve(t, as, 2, bmc.Full)
	require.Equal(t, bmc.Sat, res.Status)
	path := decode(t, as, 2, res)
	assert.Equal(t, lock.Action{}, path[0].Action)
	assert.NotEqual(t, path[0].Automaton, path[1].Automaton)

	_, res = solve(t, as, 5, bmc.Full)
	require.Equal(t, bmc.Sat, res.Status)
	decode(t, as, 5, res)
}

func TestMonotone(t *testing.T) {
	as := gen.Automata(gen.Mutex("P1", 1), gen.Mutex("P2", 1))
	f, res := solve(t, as, 1, bmc.Monotone)
	assert.Equal(t, bmc.Sat, res.Status)
	assert.Equal(t, bmc.Monotone, f.Mode)
	for _, n := range f.Names() {
		assert.False(t, strings.Contains(n, "edge"), "monotone allocated %q", n)
	}
	// a monotone model need not start from the initial configuration
	assert.True(t, res.Model.Value(bmc.AtName(0, 1, 1)))
	assert.True(t, res.Model.Value(bmc.AtName(1, 1, 1)))
	assert.False(t, res.Model.Value(bmc.HeldName(1, 1)))
}

func TestCycle(t *testing.T) {
	for n := 1; n <= 3; n++ {
		as := gen.Automata(gen.Cycle(n)...)
		_, res := solve(t, as, n, bmc.Full)
		require.Equal(t, bmc.Sat, res.Status, "n=%d", n)
		decode(t, as, n, res)
		_, res = solve(t, as, n+1, bmc.Full)
		assert.Equal(t, bmc.Unsat, res.Status, "n=%d", n)

		gs := gen.Cycle(n)
		for _, g := range gs {
			gen.Idle(g)
		}
		as = gen.Automata(gs...)
		_, res = solve(t, as, n+1, bmc.Full)
		require.Equal(t, bmc.Sat, res.Status, "idle n=%d", n)
		decode(t, as, n+1, res)
	}
}

func TestRing(t *testing.T) {
	as := gen.Automata(gen.Ring(3)...)
	_, res := solve(t, as, 12, bmc.Full)
	require.Equal(t, bmc.Sat, res.Status)
	path := decode(t, as, 12, res)
	acq := 0
	for _, st := range path {
		if st.Action.Kind == lock.Acquire {
			acq++
		}
	}
	assert.Equal(t, 6, acq)

	_, res = solve(t, as, 11, bmc.Full)
	assert.Equal(t, bmc.Unsat, res.Status)
}

func TestAgreesWithSearch(t *testing.T) {
	gen.Seed(1)
	for i := 0; i < 30; i++ {
		as := gen.Automata(gen.RandAutomata(2+i%2, 4, 7, 2)...)
		for k := 0; k <= 5; k++ {
			sr, err := search.Deadlock(as, k)
			require.NoError(t, err)
			_, res := solve(t, as, k, bmc.Full)
			require.Equal(t, sr.Found, res.Status == bmc.Sat, "iteration %d bound %d", i, k)
			if res.Status == bmc.Sat {
				decode(t, as, k, res)
			}
		}
	}
}

func TestBoundZero(t *testing.T) {
	g := dot.NewGraph("T")
	g.AddNode("Trying", map[string]string{lock.InitialParam: "box"})
	as := gen.Automata(g)
	f, res := solve(t, as, 0, bmc.Full)
	assert.Equal(t, bmc.Sat, res.Status)
	assert.Equal(t, []string{bmc.AtName(0, 0, 0)}, f.Names())
	path, err := bmc.Decode(res.Model, as, 0)
	require.NoError(t, err)
	assert.Empty(t, path)

	_, res = solve(t, gen.Automata(gen.Mutex("P", 1)), 0, bmc.Full)
	assert.Equal(t, bmc.Unsat, res.Status)
}

func TestNoMoves(t *testing.T) {
	g := dot.NewGraph("T")
	g.AddNode("Trying", map[string]string{lock.InitialParam: "box"})
	_, res := solve(t, gen.Automata(g), 1, bmc.Full)
	assert.Equal(t, bmc.Unsat, res.Status)
}

func TestEncodeErrors(t *testing.T) {
	as := gen.Automata(gen.Mutex("P", 1))
	_, err := bmc.Encode(as, -1, bmc.Full)
	assert.ErrorIs(t, err, bmc.ErrNegativeBound)

	g := dot.NewGraph("Q")
	g.AddEdge("Idle", "Busy", nil)
	_, err = bmc.Encode(append(as, lock.New(g)), 2, bmc.Full)
	assert.True(t, errors.Is(err, lock.ErrNoTrying))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "step 3: (aut: 1, node: 2)", bmc.AtName(1, 2, 3))
	assert.Equal(t, "step 0 : lock 4", bmc.HeldName(4, 0))
	assert.Equal(t, "step 2: (aut: 0, edge: 1->3)", bmc.MoveName(0, 1, 3, 2))

	as := gen.Automata(gen.Mutex("P1", 1), gen.Mutex("P2", 2))
	f, err := bmc.Encode(as, 2, bmc.Full)
	require.NoError(t, err)
	names := f.Names()
	// locations first, then locks, then moves
	assert.Equal(t, bmc.AtName(0, 0, 0), names[0])
	assert.Equal(t, bmc.HeldName(1, 0), names[2*3*3])
	assert.Equal(t, bmc.MoveName(0, 0, 1, 0), names[2*3*3+2*3])
	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], n)
		seen[n] = true
		_, ok := f.Lit(n)
		assert.True(t, ok)
	}
	_, ok := f.Lit("nope")
	assert.False(t, ok)
	// same input, same variables
	g, err := bmc.Encode(as, 2, bmc.Full)
	require.NoError(t, err)
	assert.Equal(t, names, g.Names())
}

func TestParseMode(t *testing.T) {
	for s, want := range map[string]bmc.Mode{"": bmc.Full, "full": bmc.Full, "monotone": bmc.Monotone} {
		m, err := bmc.ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, m)
	}
	_, err := bmc.ParseMode("partial")
	assert.Error(t, err)
	assert.Equal(t, "monotone", bmc.Monotone.String())
}

func TestWriteDimacs(t *testing.T) {
	as := gen.Automata(gen.Mutex("P1", 1), gen.Mutex("P2", 1))
	for k, want := range map[int]int{1: -1, 2: 1} {
		f, err := bmc.Encode(as, k, bmc.Full)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, f.WriteDimacs(&buf))

		named := 0
		sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
		for sc.Scan() {
			var v int
			if _, err := fmt.Sscanf(sc.Text(), "c %d step", &v); err == nil {
				named++
				lit, _ := f.Lit(f.Names()[named-1])
				assert.Equal(t, int(lit.Var()), v)
			}
		}
		assert.Equal(t, len(f.Names()), named)
		assert.Contains(t, buf.String(), "p cnf ")

		g, err := gini.NewDimacs(&buf)
		require.NoError(t, err)
		assert.Equal(t, want, g.Solve(), "bound %d", k)
	}
}

func TestSolveContext(t *testing.T) {
	as := gen.Automata(gen.Mutex("P1", 1), gen.Mutex("P2", 1))
	f, err := bmc.Encode(as, 2, bmc.Full)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bmc.NewGini().Solve(ctx, f)
	assert.ErrorIs(t, err, context.Canceled)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var maxVar int
	s := &bmc.Gini{MaxVar: func(n int) { maxVar = n }}
	res, err := s.Solve(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, bmc.Sat, res.Status)
	assert.GreaterOrEqual(t, maxVar, len(f.Names()))
	assert.Panics(t, func() { res.Model.Value("nope") })
}

func TestRender(t *testing.T) {
	as := gen.Automata(gen.Mutex("P1", 1), gen.Mutex("P2", 1))
	_, res := solve(t, as, 2, bmc.Full)
	require.Equal(t, bmc.Sat, res.Status)
	var buf bytes.Buffer
	bmc.Render(&buf, res.Model, as, 2)
	out := buf.String()
	assert.Contains(t, out, "At step 0:\nLocks taken: \nAutomaton P1(0) is in state: Idle\nAutomaton P2(1) is in state: Idle\n")
	assert.Contains(t, out, "At step 2:\nLocks taken: \nAutomaton P1(0) is in state: Trying\nAutomaton P2(1) is in state: Trying\n")
}

func TestDecodeInconsistent(t *testing.T) {
	as := gen.Automata(gen.Mutex("P1", 1), gen.Mutex("P2", 1))
	// no automaton is anywhere
	_, err := bmc.Decode(falseModel{}, as, 1)
	assert.ErrorIs(t, err, bmc.ErrInconsistentModel)
}

type falseModel struct{}

func (falseModel) Value(string) bool { return false }

func Example() {
	as := gen.Automata(gen.Mutex("P1", 1), gen.Mutex("P2", 1))
	for k := 1; k <= 2; k++ {
		f, err := bmc.Encode(as, k, bmc.Full)
		if err != nil {
			fmt.Println(err)
			return
		}
		res, err := bmc.NewGini().Solve(context.Background(), f)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("bound %d: %s\n", k, res.Status)
		if res.Status != bmc.Sat {
			continue
		}
		path, err := bmc.Decode(res.Model, as, k)
		if err != nil {
			fmt.Println(err)
			return
		}
		for i, st := range path {
			fmt.Printf("step %d: %s %s\n", i+1, as[st.Automaton].NodeName(st.Target), st.Action)
		}
	}
	// Output:
	// bound 1: unsat
	// bound 2: sat
	// step 1: Trying noop
	// step 2: Trying noop
}
