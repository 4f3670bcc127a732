// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command lockbmc checks lock automata, given as Graphviz files, for
// deadlocks reachable in a bounded number of steps.
//
//	lockbmc <graph-file>                   print the automaton and some facts
//	lockbmc check -k 3 a.dot b.dot         decide a query
//	lockbmc sweep --max 8 a.dot b.dot      decide bounds 0..8
//	lockbmc gen --procs 3 --out dir        write generated automata
//
// lockbmc exits 0 when the query completes, whether or not a deadlock is
// found, and 1 on any error.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/go-air/lockbmc"
)

type globals struct {
	logLevel string
	listen   string
	reg      *prometheus.Registry
	log      *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "lockbmc <graph-file>",
		Short:         "bounded deadlock checking of lock automata",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runInfo(cmd.OutOrStdout(), args[0]); err != nil {
				return g.fail(cmd, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn or error (default info)")
	root.PersistentFlags().StringVar(&g.listen, "listen", "", "address to serve /metrics and /debug/pprof (eg :6060)")
	root.AddCommand(newCheckCmd(g), newSweepCmd(g), newGenCmd(g))
	root.SetErr(os.Stderr)
	return root
}

func (g *globals) setup(cmd *cobra.Command) error {
	if err := g.setLogger(cmd); err != nil {
		return g.fail(cmd, err)
	}
	g.reg = prometheus.NewRegistry()
	if g.listen != "" {
		http.Handle("/metrics", promhttp.HandlerFor(g.reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(g.listen, nil); err != nil {
				g.log.Warn("listen", "addr", g.listen, "err", err)
			}
		}()
	}
	return nil
}

func (g *globals) setLogger(cmd *cobra.Command) error {
	lvl, err := parseLevel(g.logLevel)
	if err != nil {
		return err
	}
	g.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
	return nil
}

// fail logs err and returns it, for cobra to exit with 1.
func (g *globals) fail(cmd *cobra.Command, err error) error {
	if g.log != nil {
		g.log.Error(cmd.Name(), "err", err)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "lockbmc: %s\n", err)
	}
	return err
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// config loads the file at path, if any, over the defaults and lets the
// flags that were set on cmd override it.
func (g *globals) config(cmd *cobra.Command, path string, override func(*lockbmc.Config)) (lockbmc.Config, error) {
	cfg := lockbmc.DefaultConfig()
	if path != "" {
		c, err := lockbmc.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = c
		if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
			g.logLevel = cfg.LogLevel
			if err := g.setLogger(cmd); err != nil {
				return cfg, err
			}
		}
	}
	override(&cfg)
	return cfg, cfg.Validate()
}
