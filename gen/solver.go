// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/go-air/lockbmc/bmc"
)

// ConstSolver creates a bmc.Solver which just returns res to Solve() within
// a random period of time chosen from [0..d).  If res is bmc.Unknown, then a
// random value from {Sat, Unsat} is chosen for each call.
//
// Models of Sat results assign a random value to every variable, so they
// rarely decode into a path.
//
// This is useful for testing applications using bmc.Solver.
func ConstSolver(d time.Duration, res bmc.Status) bmc.Solver {
	return ConstSolverr(d, res, rand.NewSource(33))
}

// ConstSolverr is ConstSolver with a given source of randomness.
func ConstSolverr(d time.Duration, res bmc.Status, src rand.Source) bmc.Solver {
	return &constS{dur: d, res: res, rand: rand.New(src)}
}

type constS struct {
	mu   sync.Mutex
	dur  time.Duration
	res  bmc.Status
	rand *rand.Rand
}

func (c *constS) Solve(ctx context.Context, f *bmc.Formula) (bmc.Result, error) {
	if err := ctx.Err(); err != nil {
		return bmc.Result{Status: bmc.Unknown}, err
	}
	c.mu.Lock()
	res := c.res
	if res == bmc.Unknown {
		res = bmc.Unsat
		if c.rand.Intn(2) == 1 {
			res = bmc.Sat
		}
	}
	var d time.Duration
	if c.dur > 0 {
		d = time.Duration(c.rand.Int63n(int64(c.dur)))
	}
	var vals map[string]bool
	if res == bmc.Sat {
		vals = make(map[string]bool, len(f.Names()))
		for _, n := range f.Names() {
			vals[n] = c.rand.Intn(2) == 1
		}
	}
	c.mu.Unlock()

	tm := time.NewTimer(d)
	defer tm.Stop()
	select {
	case <-ctx.Done():
		return bmc.Result{Status: bmc.Unknown}, ctx.Err()
	case <-tm.C:
	}
	if res != bmc.Sat {
		return bmc.Result{Status: res}, nil
	}
	return bmc.Result{Status: res, Model: randModel(vals)}, nil
}

type randModel map[string]bool

func (m randModel) Value(name string) bool {
	return m[name]
}
