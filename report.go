// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lockbmc

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/go-air/lockbmc/bmc"
	"github.com/go-air/lockbmc/lock"
)

// Report is the answer to one bounded deadlock query.
type Report struct {
	ID     uuid.UUID
	Bound  int
	Method Method
	// Found is true if a deadlock is reachable in exactly Bound steps.
	Found bool
	// Path witnesses Found.  It is nil under the monotone encoding, whose
	// models need not be paths.
	Path lock.Path
	// Visited counts the configurations explored by search.
	Visited int
	// Status is the sat answer, Unknown if sat was not run.
	Status bmc.Status
	// Model is the sat model when Status is Sat.
	Model bmc.Model
	// Variables counts the named variables of the formula.
	Variables int
	Duration  time.Duration
	// File is the exported solution, if any.
	File string
}

// Result is "deadlock" or "none".
func (r *Report) Result() string {
	if r.Found {
		return "deadlock"
	}
	return "none"
}

// Print writes a human readable account of r, including the path, to w.
func (r *Report) Print(w io.Writer, automata []*lock.Automaton) {
	fmt.Fprintf(w, "run %s: bound %d, method %s: %s (%s)\n", r.ID, r.Bound, r.Method, r.Result(), r.Duration.Round(time.Microsecond))
	if r.Method != MethodSAT {
		fmt.Fprintf(w, "visited %d configurations\n", r.Visited)
	}
	if r.Method != MethodSearch {
		fmt.Fprintf(w, "sat: %s with %d named variables\n", r.Status, r.Variables)
	}
	if r.Path != nil {
		lock.PrintPath(w, automata, r.Path)
	}
	if r.File != "" {
		fmt.Fprintf(w, "solution written to %s\n", r.File)
	}
}
