// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bmc

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-air/gini"
)

// load returns a fresh gini solver holding the CNF of f.
func (f *Formula) load() *gini.Gini {
	g := gini.New()
	f.C.ToCnfFrom(g, f.Root)
	g.Add(f.C.T)
	g.Add(0)
	g.Add(f.Root)
	g.Add(0)
	return g
}

// WriteDimacs writes the CNF of f, as given to a solver, in DIMACS format.
// A comment line "c <var> <name>" precedes the problem for every named
// variable.
func (f *Formula) WriteDimacs(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "c bounded deadlock, bound %d, %s encoding\n", f.Bound, f.Mode)
	for _, name := range f.names {
		fmt.Fprintf(bw, "c %d %s\n", f.lits[name].Var(), name)
	}
	if err := f.load().Write(bw); err != nil {
		return err
	}
	return bw.Flush()
}
