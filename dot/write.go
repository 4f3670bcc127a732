// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
)

var keywords = map[string]bool{
	"node": true, "edge": true, "graph": true,
	"digraph": true, "subgraph": true, "strict": true}

// ID returns s as a DOT identifier, quoting it when needed.
func ID(s string) string {
	if s == "" || keywords[strings.ToLower(s)] {
		return strconv.Quote(s)
	}
	for i, r := range s {
		ok := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(i > 0 && r >= '0' && r <= '9')
		if !ok {
			return strconv.Quote(s)
		}
	}
	return s
}

func quoteAttrs(attrs map[string]string) map[string]string {
	m := make(map[string]string, len(attrs))
	for k, v := range attrs {
		m[k] = strconv.Quote(v)
	}
	return m
}

// Marshal returns the DOT source of g.
func Marshal(g *Graph) (string, error) {
	gv := gographviz.NewGraph()
	name := ID(g.name)
	if err := gv.SetName(name); err != nil {
		return "", err
	}
	if err := gv.SetDir(true); err != nil {
		return "", err
	}
	for v, n := range g.names {
		if err := gv.AddNode(name, ID(n), quoteAttrs(g.nodeAttrs[v])); err != nil {
			return "", fmt.Errorf("node %s: %w", n, err)
		}
	}
	for _, e := range g.edges() {
		src, dst := ID(g.names[e.s]), ID(g.names[e.t])
		if err := gv.AddEdge(src, dst, true, quoteAttrs(g.edgeAttrs[e])); err != nil {
			return "", fmt.Errorf("edge %s -> %s: %w", src, dst, err)
		}
	}
	return gv.String(), nil
}

// Write writes the DOT source of g to w.
func Write(w io.Writer, g *Graph) error {
	s, err := Marshal(g)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}
