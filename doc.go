// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package lockbmc checks lock automata for deadlocks reachable in a bounded
// number of interleaved steps.
//
// A Checker answers one query per (automata, bound) pair, either by
// exhaustive search (package search), by reduction to SAT (package bmc), or
// by both, in which case it verifies that the two agree.  Queries are
// independent; Sweep runs a range of bounds concurrently.
//
// Automata are read from Graphviz files (package dot): a node with a
// "shape" attribute is initial, the location whose name contains "Trying" is
// the trying location, and edges carry xlabel="acq(N)" or xlabel="rel(N)".
package lockbmc
