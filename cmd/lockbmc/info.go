// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"io"

	"github.com/go-air/lockbmc"
)

func runInfo(w io.Writer, path string) error {
	as, err := lockbmc.Load(path)
	if err != nil {
		return err
	}
	a := as[0]
	a.Print(w)
	fmt.Fprintf(w, "\nNumber of nodes: %d\n", a.NumNodes())
	fmt.Fprintf(w, "Number of edges: %d\n", a.NumEdges())
	if a.NumNodes() == 0 {
		return nil
	}
	fmt.Fprintf(w, "Node 0 is %s, initial: %t\n", a.NodeName(0), a.IsInitial(0))
	if a.NumNodes() > 1 {
		if a.IsEdge(0, 1) {
			fmt.Fprintf(w, "Edge 0 -> 1: %s\n", a.Action(0, 1))
		} else {
			fmt.Fprintf(w, "No edge 0 -> 1\n")
		}
	}
	if v := a.Trying(); v >= 0 {
		fmt.Fprintf(w, "Trying location: %s\n", a.NodeName(v))
	} else {
		fmt.Fprintf(w, "No trying location\n")
	}
	return nil
}
