// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lockbmc

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/go-air/lockbmc/lock"
)

// Sweep checks every bound in [from, to], running at most Config.Workers
// queries at once.  The i'th report is for bound from+i.  Sweep stops at the
// first error, returning it with the reports completed so far.
func (c *Checker) Sweep(ctx context.Context, automata []*lock.Automaton, from, to int) ([]*Report, error) {
	if from < 0 || to < from {
		return nil, fmt.Errorf("invalid bound range [%d, %d]", from, to)
	}
	reports := make([]*Report, to-from+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)
	for k := from; k <= to; k++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := c.Check(ctx, automata, k)
			reports[k-from] = r
			return err
		})
	}
	err := g.Wait()
	return reports, err
}

// First returns the first report of a sweep which found a deadlock, or nil.
func First(reports []*Report) *Report {
	for _, r := range reports {
		if r != nil && r.Found {
			return r
		}
	}
	return nil
}
