// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dot reads and writes lock automata as Graphviz DOT graphs and
// exports solution paths for visualisation.
package dot

import (
	"fmt"
	"sort"
)

type edgeKey struct {
	s, t int
}

// Graph is an in-memory labeled directed graph.  Nodes are numbered in the
// order they are first added.  It implements lock.Graph.
type Graph struct {
	name      string
	names     []string
	index     map[string]int
	nodeAttrs []map[string]string
	edgeAttrs map[edgeKey]map[string]string
}

// NewGraph creates an empty graph called name.
func NewGraph(name string) *Graph {
	return &Graph{
		name:      name,
		index:     make(map[string]int),
		edgeAttrs: make(map[edgeKey]map[string]string)}
}

// AddNode adds a node called name, or merges attrs into the existing one, and
// returns its index.
func (g *Graph) AddNode(name string, attrs map[string]string) int {
	v, ok := g.index[name]
	if !ok {
		v = len(g.names)
		g.index[name] = v
		g.names = append(g.names, name)
		g.nodeAttrs = append(g.nodeAttrs, make(map[string]string, len(attrs)))
	}
	for k, val := range attrs {
		g.nodeAttrs[v][k] = val
	}
	return v
}

// AddEdge adds the edge src -> dst, adding missing nodes.  Adding an edge
// twice replaces its attributes.
func (g *Graph) AddEdge(src, dst string, attrs map[string]string) {
	s := g.AddNode(src, nil)
	t := g.AddNode(dst, nil)
	m := make(map[string]string, len(attrs))
	for k, v := range attrs {
		m[k] = v
	}
	g.edgeAttrs[edgeKey{s, t}] = m
}

// Node returns the index of the node called name.
func (g *Graph) Node(name string) (int, bool) {
	v, ok := g.index[name]
	return v, ok
}

func (g *Graph) Name() string {
	return g.name
}

func (g *Graph) NumNodes() int {
	return len(g.names)
}

func (g *Graph) NumEdges() int {
	return len(g.edgeAttrs)
}

func (g *Graph) IsEdge(s, t int) bool {
	_, ok := g.edgeAttrs[edgeKey{s, t}]
	return ok
}

func (g *Graph) NodeName(v int) string {
	return g.names[v]
}

func (g *Graph) NodeParam(v int, key string) (string, bool) {
	val, ok := g.nodeAttrs[v][key]
	return val, ok
}

func (g *Graph) EdgeParam(s, t int, key string) (string, bool) {
	attrs, ok := g.edgeAttrs[edgeKey{s, t}]
	if !ok {
		return "", false
	}
	val, ok := attrs[key]
	return val, ok
}

// edges returns the edges of g ordered by source then target.
func (g *Graph) edges() []edgeKey {
	es := make([]edgeKey, 0, len(g.edgeAttrs))
	for e := range g.edgeAttrs {
		es = append(es, e)
	}
	sort.Slice(es, func(i, j int) bool {
		if es[i].s != es[j].s {
			return es[i].s < es[j].s
		}
		return es[i].t < es[j].t
	})
	return es
}

func (g *Graph) String() string {
	return fmt.Sprintf("%s(%d nodes, %d edges)", g.name, g.NumNodes(), g.NumEdges())
}
