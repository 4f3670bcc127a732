// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package bmc reduces bounded deadlock checking of lock automata to
// propositional satisfiability.
//
// Encode builds, in a gini logic.C circuit, a formula which is satisfiable
// if and only if a deadlock is reachable in exactly a given number of steps.
// Every variable of the formula has a deterministic name, see AtName,
// HeldName and MoveName, so that a model returned by a Solver can be
// queried by name.  Decode turns such a model back into a lock.Path.
package bmc
