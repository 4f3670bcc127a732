// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bmc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-air/gini"
)

// Status is the outcome of a solve, with gini's codes: 1 for sat, -1 for
// unsat and 0 when undetermined.
type Status int

const (
	Unknown Status = 0
	Sat     Status = 1
	Unsat   Status = -1
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Model gives the truth value of the variables of a satisfied Formula.
type Model interface {
	// Value returns the value of the variable called name.
	Value(name string) bool
}

// Result is the answer of a Solver.  Model is only set when Status is Sat.
type Result struct {
	Status Status
	Model  Model
}

// Solver decides the satisfiability of formulas.  Unsat is an answer, not an
// error: Solve returns an error only when it could not decide.
type Solver interface {
	Solve(ctx context.Context, f *Formula) (Result, error)
}

// ErrUndetermined is returned when the solver stops without an answer.
var ErrUndetermined = errors.New("solver stopped without an answer")

// Gini is a Solver backed by a fresh gini solver per formula.
type Gini struct {
	// MaxVar, if set, receives the number of variables of each solved
	// problem after Tseitin encoding.
	MaxVar func(n int)
}

// NewGini creates a gini backed Solver.
func NewGini() *Gini {
	return &Gini{}
}

// Solve encodes f.C to CNF from f.Root and solves it.  If ctx has a
// deadline, solving is abandoned when it passes.
func (s *Gini) Solve(ctx context.Context, f *Formula) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	g := f.load()
	if s.MaxVar != nil {
		s.MaxVar(int(g.MaxVar()))
	}

	var res int
	if dl, ok := ctx.Deadline(); ok {
		d := time.Until(dl)
		if d <= 0 {
			return Result{}, context.DeadlineExceeded
		}
		res = g.GoSolve().Try(d)
	} else {
		res = g.Solve()
	}
	switch res {
	case 1:
		return Result{Status: Sat, Model: &giniModel{g: g, f: f}}, nil
	case -1:
		return Result{Status: Unsat}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{Status: Unknown}, err
	}
	return Result{Status: Unknown}, ErrUndetermined
}

type giniModel struct {
	g *gini.Gini
	f *Formula
}

// Value panics if name is not a variable of the formula.
func (m *giniModel) Value(name string) bool {
	lit, ok := m.f.Lit(name)
	if !ok {
		panic(fmt.Sprintf("bmc: no variable %q", name))
	}
	if lit.Var() > m.g.MaxVar() {
		// never reached the solver, hence unconstrained
		return false
	}
	return m.g.Value(lit)
}
