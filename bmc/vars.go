// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bmc

import "fmt"

// AtName is the name of the variable stating that automaton a is at
// location v at time t.
func AtName(a, v, t int) string {
	return fmt.Sprintf("step %d: (aut: %d, node: %d)", t, a, v)
}

// HeldName is the name of the variable stating that lock l is held at time t.
func HeldName(l, t int) string {
	return fmt.Sprintf("step %d : lock %d", t, l)
}

// MoveName is the name of the variable stating that automaton a follows the
// edge (s, d) between times t and t+1.
func MoveName(a, s, d, t int) string {
	return fmt.Sprintf("step %d: (aut: %d, edge: %d->%d)", t, a, s, d)
}
