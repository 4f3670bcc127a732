// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lockbmc

import (
	"github.com/go-air/lockbmc/dot"
	"github.com/go-air/lockbmc/lock"
)

// Load reads the automata in the Graphviz files at paths, in order.
func Load(paths ...string) ([]*lock.Automaton, error) {
	res := make([]*lock.Automaton, 0, len(paths))
	for _, p := range paths {
		g, err := dot.ReadFile(p)
		if err != nil {
			return nil, err
		}
		res = append(res, lock.New(g))
	}
	return res, nil
}
