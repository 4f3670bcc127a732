// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-air/lockbmc"
	"github.com/go-air/lockbmc/bmc"
	"github.com/go-air/lockbmc/lock"
)

// queryFlags are the flags shared by check and sweep.
type queryFlags struct {
	config   string
	method   string
	encoding string
	timeout  time.Duration
	workers  int
	export   bool
	out      string
	name     string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	d := lockbmc.DefaultConfig()
	fs := cmd.Flags()
	fs.StringVar(&q.config, "config", "", "YAML configuration file")
	fs.StringVar(&q.method, "method", string(d.Method), "search, sat or both")
	fs.StringVar(&q.encoding, "encoding", d.Encoding, "sat encoding: full or monotone")
	fs.DurationVar(&q.timeout, "timeout", d.Timeout, "timeout of each sat solve, 0 for none")
	fs.IntVar(&q.workers, "workers", d.Workers, "concurrent queries of a sweep")
	fs.BoolVar(&q.export, "export", false, "write solutions as Graphviz files")
	fs.StringVar(&q.out, "out", d.OutputDir, "directory of exported solutions")
	fs.StringVar(&q.name, "name", d.Name, "name of exported solutions")
}

// apply overrides cfg with the flags set on cmd.
func (q *queryFlags) apply(cmd *cobra.Command, cfg *lockbmc.Config) {
	fs := cmd.Flags()
	if fs.Changed("method") {
		cfg.Method = lockbmc.Method(q.method)
	}
	if fs.Changed("encoding") {
		cfg.Encoding = q.encoding
	}
	if fs.Changed("timeout") {
		cfg.Timeout = q.timeout
	}
	if fs.Changed("workers") {
		cfg.Workers = q.workers
	}
	if fs.Changed("export") {
		cfg.Export = q.export
	}
	if fs.Changed("out") {
		cfg.OutputDir = q.out
	}
	if fs.Changed("name") {
		cfg.Name = q.name
	}
}

// prepare builds the checker and loads the automata, from args or else
// from the configuration.
func (g *globals) prepare(cmd *cobra.Command, q *queryFlags, args []string, override func(*lockbmc.Config)) (*lockbmc.Checker, []*lock.Automaton, error) {
	cfg, err := g.config(cmd, q.config, func(c *lockbmc.Config) {
		q.apply(cmd, c)
		override(c)
	})
	if err != nil {
		return nil, nil, err
	}
	paths := args
	if len(paths) == 0 {
		paths = cfg.Automata
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no automata given")
	}
	automata, err := lockbmc.Load(paths...)
	if err != nil {
		return nil, nil, err
	}
	c, err := lockbmc.New(cfg,
		lockbmc.WithLogger(g.log),
		lockbmc.WithMetrics(lockbmc.NewMetrics(g.reg)))
	if err != nil {
		return nil, nil, err
	}
	return c, automata, nil
}

func newCheckCmd(g *globals) *cobra.Command {
	q := &queryFlags{}
	var (
		bound  int
		model  bool
		dimacs string
	)
	cmd := &cobra.Command{
		Use:   "check [flags] <graph-file>...",
		Short: "decide whether a deadlock is reachable in exactly k steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, automata, err := g.prepare(cmd, q, args, func(cfg *lockbmc.Config) {
				if cmd.Flags().Changed("bound") {
					cfg.Bound = bound
				}
			})
			if err != nil {
				return g.fail(cmd, err)
			}
			k := c.Config().Bound
			if dimacs != "" {
				if err := writeDimacs(dimacs, c.Config(), automata, k); err != nil {
					return g.fail(cmd, err)
				}
			}
			ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt)
			defer stop()
			r, err := c.Check(ctx, automata, k)
			if err != nil {
				return g.fail(cmd, err)
			}
			w := cmd.OutOrStdout()
			newStyles(w).report(w, r, automata)
			if model && r.Model != nil {
				bmc.Render(w, r.Model, automata, k)
			}
			return nil
		},
	}
	q.register(cmd)
	cmd.Flags().IntVarP(&bound, "bound", "k", 0, "number of steps")
	cmd.Flags().BoolVar(&model, "model", false, "print the sat model")
	cmd.Flags().StringVar(&dimacs, "dimacs", "", "write the formula in dimacs format to this file")
	return cmd
}

func writeDimacs(path string, cfg lockbmc.Config, automata []*lock.Automaton, k int) error {
	mode, err := bmc.ParseMode(cfg.Encoding)
	if err != nil {
		return err
	}
	f, err := bmc.Encode(automata, k, mode)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.WriteDimacs(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
