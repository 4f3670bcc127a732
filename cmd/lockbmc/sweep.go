// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/go-air/lockbmc"
)

func newSweepCmd(g *globals) *cobra.Command {
	q := &queryFlags{}
	var maxBound int
	cmd := &cobra.Command{
		Use:   "sweep --max K [flags] <graph-file>...",
		Short: "decide the queries of bounds 0..K",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, automata, err := g.prepare(cmd, q, args, func(cfg *lockbmc.Config) {
				if cmd.Flags().Changed("max") {
					cfg.MaxBound = maxBound
				}
			})
			if err != nil {
				return g.fail(cmd, err)
			}
			ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt)
			defer stop()
			rs, err := c.Sweep(ctx, automata, 0, c.Config().MaxBound)
			if err != nil {
				return g.fail(cmd, err)
			}
			w := cmd.OutOrStdout()
			st := newStyles(w)
			for _, r := range rs {
				res := st.render(st.none, r.Result())
				if r.Found {
					res = st.render(st.found, r.Result())
				}
				fmt.Fprintf(w, "k=%d\t%s\t%s\n", r.Bound, res, r.Duration)
			}
			if r := lockbmc.First(rs); r != nil {
				fmt.Fprintf(w, "\nshortest deadlock at bound %d:\n", r.Bound)
				st.report(w, r, automata)
			}
			return nil
		},
	}
	q.register(cmd)
	cmd.Flags().IntVar(&maxBound, "max", 0, "largest bound")
	return cmd
}
