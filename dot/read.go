// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dot

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/awalterschulze/gographviz/ast"
)

// Parse reads a graph from DOT source.  Node and attribute values are
// unquoted.  Edges of an undirected graph are added in both directions.
//
// Nodes keep only the attributes given in their own statements: defaults
// set by "node [...]" are dropped, so a default shape does not mark every
// node as initial.
func Parse(data []byte) (*Graph, error) {
	tree, err := gographviz.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing dot: %w", err)
	}
	gv, err := gographviz.NewAnalysedGraph(tree)
	if err != nil {
		return nil, fmt.Errorf("parsing dot: %w", err)
	}
	own := make(map[string]map[string]string)
	nodeAttrs(tree.StmtList, own)
	g := NewGraph(unquote(gv.Name))
	for _, n := range gv.Nodes.Nodes {
		name := unquote(n.Name)
		g.AddNode(name, own[name])
	}
	for _, e := range gv.Edges.Edges {
		as := attrs(e.Attrs)
		src, dst := unquote(e.Src), unquote(e.Dst)
		g.AddEdge(src, dst, as)
		if !gv.Directed {
			g.AddEdge(dst, src, as)
		}
	}
	return g, nil
}

// nodeAttrs collects into dst the attributes of node statements, subgraphs
// included.
func nodeAttrs(stmts ast.StmtList, dst map[string]map[string]string) {
	for _, stmt := range stmts {
		switch st := stmt.(type) {
		case *ast.NodeStmt:
			name := unquote(st.NodeID.ID.String())
			m := dst[name]
			if m == nil {
				m = make(map[string]string)
				dst[name] = m
			}
			for _, al := range st.Attrs {
				for _, a := range al {
					m[a.Field.String()] = unquote(a.Value.String())
				}
			}
		case *ast.SubGraph:
			nodeAttrs(st.StmtList, dst)
		}
	}
}

// ReadFile reads a graph from the DOT file at path.  If the graph is
// anonymous, it is named after the file.
func ReadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if g.name == "" {
		g.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return g, nil
}

func attrs(as gographviz.Attrs) map[string]string {
	m := make(map[string]string, len(as))
	for k, v := range as {
		m[string(k)] = unquote(v)
	}
	return m
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}
