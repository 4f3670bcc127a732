// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dot

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/go-air/lockbmc/lock"
)

// DefaultDir is the directory solutions are exported to by default.
const DefaultDir = "sol"

// PathColor is the color of path edges in exported solutions.
const PathColor = "red"

func nodeID(a *lock.Automaton, v int) string {
	return strconv.Quote(a.Name() + "__" + a.NodeName(v))
}

// Solution returns the DOT source of a graph holding every automaton, with
// node names prefixed by the automaton name, and the steps of path drawn as
// additional edges labeled by their index.  The initial location of each
// automaton is drawn as a rectangle.
func Solution(name string, automata []*lock.Automaton, path lock.Path) (string, error) {
	gv := gographviz.NewGraph()
	gname := "Sol"
	if name != "" {
		gname = ID(name)
	}
	if err := gv.SetName(gname); err != nil {
		return "", err
	}
	if err := gv.SetDir(true); err != nil {
		return "", err
	}
	for _, a := range automata {
		for v := 0; v < a.NumNodes(); v++ {
			var attrs map[string]string
			if a.IsInitial(v) {
				attrs = map[string]string{"shape": "rectangle"}
			}
			if err := gv.AddNode(gname, nodeID(a, v), attrs); err != nil {
				return "", err
			}
		}
		for s := 0; s < a.NumNodes(); s++ {
			for t := 0; t < a.NumNodes(); t++ {
				if !a.IsEdge(s, t) {
					continue
				}
				attrs := map[string]string{"xlabel": strconv.Quote(a.Action(s, t).String())}
				if err := gv.AddEdge(nodeID(a, s), nodeID(a, t), true, attrs); err != nil {
					return "", err
				}
			}
		}
	}
	for i, st := range path {
		a := automata[st.Automaton]
		attrs := map[string]string{
			"label":     strconv.Quote(strconv.Itoa(i)),
			"color":     PathColor,
			"fontcolor": PathColor}
		if err := gv.AddEdge(nodeID(a, st.Source), nodeID(a, st.Target), true, attrs); err != nil {
			return "", err
		}
	}
	return gv.String(), nil
}

// Export writes the solution graph of path to dir/name.dot, creating dir if
// needed, and returns the path of the written file.  An empty name gives
// result.dot.
func Export(dir, name string, automata []*lock.Automaton, path lock.Path) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	src, err := Solution(name, automata, path)
	if err != nil {
		return "", err
	}
	file := name
	if file == "" {
		file = "result"
	}
	p := filepath.Join(dir, file+".dot")
	if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
		return "", err
	}
	return p, nil
}
