// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lockbmc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/go-air/lockbmc/bmc"
	"github.com/go-air/lockbmc/dot"
	"github.com/go-air/lockbmc/lock"
	"github.com/go-air/lockbmc/search"
)

// ErrDisagreement is returned when search and sat give contradicting
// answers to the same query.  Under MethodBoth the search answer is
// reported.
var ErrDisagreement = errors.New("search and sat disagree")

// Checker answers bounded deadlock queries.  A Checker may be used by
// several goroutines at once.
type Checker struct {
	cfg     Config
	mode    bmc.Mode
	log     *slog.Logger
	metrics *Metrics
	solver  bmc.Solver
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger, slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.log = l }
}

// WithMetrics sets the metrics, unregistered otherwise.
func WithMetrics(m *Metrics) Option {
	return func(c *Checker) { c.metrics = m }
}

// WithSolver sets the sat solver, a bmc.Gini otherwise.
func WithSolver(s bmc.Solver) Option {
	return func(c *Checker) { c.solver = s }
}

// New creates a Checker from a validated cfg.
func New(cfg Config, opts ...Option) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := bmc.ParseMode(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	c := &Checker{cfg: cfg, mode: mode}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	if c.solver == nil {
		c.solver = bmc.NewGini()
	}
	return c, nil
}

// Config returns the configuration of c.
func (c *Checker) Config() Config {
	return c.cfg
}

// Check decides whether automata can reach a deadlock in exactly bound
// steps, with the configured method.
//
// Paths are replayed before being reported, so a returned path is always
// legal.  Under MethodBoth, Check returns the report along with
// ErrDisagreement if the two procedures differ.
func (c *Checker) Check(ctx context.Context, automata []*lock.Automaton, bound int) (*Report, error) {
	r := &Report{ID: uuid.New(), Bound: bound, Method: c.cfg.Method}
	log := c.log.With("run_id", r.ID.String(), "bound", bound, "method", string(r.Method))
	start := time.Now()
	err := c.check(ctx, log, automata, r)
	r.Duration = time.Since(start)
	c.metrics.Duration.WithLabelValues(string(r.Method)).Observe(r.Duration.Seconds())
	if err != nil {
		c.metrics.Queries.WithLabelValues(string(r.Method), "error").Inc()
		log.Error("check failed", "err", err)
		return r, err
	}
	c.metrics.Queries.WithLabelValues(string(r.Method), r.Result()).Inc()
	if r.Found && r.Path != nil && c.cfg.Export {
		prefix := c.cfg.Name
		if prefix == "" {
			prefix = r.ID.String()[:8]
		}
		name := fmt.Sprintf("%s_%d", prefix, bound)
		r.File, err = dot.Export(c.cfg.OutputDir, name, automata, r.Path)
		if err != nil {
			return r, fmt.Errorf("export: %w", err)
		}
		log.Debug("exported", "file", r.File)
	}
	log.Info("checked", "found", r.Found, "duration", r.Duration)
	return r, nil
}

func (c *Checker) check(ctx context.Context, log *slog.Logger, automata []*lock.Automaton, r *Report) error {
	var found, sat bool
	if r.Method != MethodSAT {
		res, err := search.Deadlock(automata, r.Bound)
		if err != nil {
			return err
		}
		c.metrics.Visited.Observe(float64(res.Visited))
		log.Debug("searched", "found", res.Found, "visited", res.Visited)
		r.Visited = res.Visited
		found = res.Found
		if found {
			if _, err := lock.Replay(automata, res.Path); err != nil {
				return fmt.Errorf("search path: %w", err)
			}
			r.Path = res.Path
		}
	}
	if r.Method != MethodSearch {
		path, err := c.solve(ctx, log, automata, r)
		if err != nil {
			return err
		}
		sat = r.Status == bmc.Sat
		if r.Path == nil {
			r.Path = path
		}
	}
	switch r.Method {
	case MethodSearch:
		r.Found = found
	case MethodSAT:
		r.Found = sat
	default:
		r.Found = found
		if c.disagree(found, sat) {
			c.metrics.Disagreements.Inc()
			return fmt.Errorf("%w: search found=%t, sat %s at bound %d", ErrDisagreement, found, r.Status, r.Bound)
		}
	}
	return nil
}

// disagree reports whether the search and sat answers contradict each
// other.  The monotone encoding over-approximates, so there only a deadlock
// found by search and refuted by sat is a contradiction.
func (c *Checker) disagree(found, sat bool) bool {
	if c.mode == bmc.Monotone {
		return found && !sat
	}
	return found != sat
}

// solve runs the sat method, recording its status in r, and returns the
// decoded path if any.
func (c *Checker) solve(ctx context.Context, log *slog.Logger, automata []*lock.Automaton, r *Report) (lock.Path, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	f, err := bmc.Encode(automata, r.Bound, c.mode)
	if err != nil {
		return nil, err
	}
	r.Variables = len(f.Names())
	c.metrics.Variables.Set(float64(r.Variables))
	res, err := c.solver.Solve(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	r.Status = res.Status
	r.Model = res.Model
	log.Debug("solved", "status", res.Status.String(), "vars", r.Variables)
	if res.Status != bmc.Sat || c.mode == bmc.Monotone {
		return nil, nil
	}
	path, err := bmc.Decode(res.Model, automata, r.Bound)
	if err != nil {
		return nil, err
	}
	if _, err := lock.Replay(automata, path); err != nil {
		return nil, fmt.Errorf("decoded path: %w", err)
	}
	return path, nil
}
