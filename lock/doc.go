// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package lock provides lock automata: finite state processes whose edges
// acquire or release binary locks, together with the global configurations
// and execution paths of their asynchronous interleaving.
//
// An Automaton is a read-only view over a Graph.  Edge labels of the form
// acq(N) and rel(N) are parsed once, when the automaton is created, into
// Action values; everything downstream works on Actions only.
package lock
