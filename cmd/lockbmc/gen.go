// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-air/lockbmc/dot"
	"github.com/go-air/lockbmc/gen"
)

func newGenCmd(g *globals) *cobra.Command {
	var (
		procs, nodes, edges, locks int
		seed                       int64
		out                        string
		cycle, idle                bool
	)
	cmd := &cobra.Command{
		Use:   "gen --procs N [flags]",
		Short: "write generated automata as Graphviz files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if procs < 1 {
				return g.fail(cmd, fmt.Errorf("--procs must be positive, got %d", procs))
			}
			var gs []*dot.Graph
			if cycle {
				gs = gen.Cycle(procs)
			} else {
				gen.Seed(seed)
				gs = gen.RandAutomata(procs, nodes, edges, locks)
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return g.fail(cmd, err)
			}
			for _, gr := range gs {
				if idle {
					gen.Idle(gr)
				}
				p := filepath.Join(out, gr.Name()+".dot")
				f, err := os.Create(p)
				if err != nil {
					return g.fail(cmd, err)
				}
				err = dot.Write(f, gr)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return g.fail(cmd, err)
				}
				g.log.Debug("wrote", "file", p)
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&procs, "procs", 2, "number of automata")
	fs.Int64Var(&seed, "seed", 33, "random seed")
	fs.StringVar(&out, "out", ".", "output directory")
	fs.BoolVar(&cycle, "cycle", false, "generate the cyclic lock wait scenario")
	fs.BoolVar(&idle, "idle", false, "add a no-op self loop at each trying location")
	fs.IntVar(&nodes, "nodes", 4, "locations per random automaton")
	fs.IntVar(&edges, "edges", 6, "edges per random automaton")
	fs.IntVar(&locks, "locks", 2, "locks of random automata")
	return cmd
}
