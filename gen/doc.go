// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen contains generators for lock automata: small classic
// scenarios and random automata.
//
// Package gen also supplies a constant solver, which returns a fixed result
// after a given delay.
package gen
