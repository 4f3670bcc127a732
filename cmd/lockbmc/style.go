// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/go-air/lockbmc"
	"github.com/go-air/lockbmc/lock"
)

var (
	colorFound = lipgloss.Color("#E74C3C")
	colorNone  = lipgloss.Color("#2CD7C7")
	colorMuted = lipgloss.Color("#2C4A54")
)

type styles struct {
	on    bool
	found lipgloss.Style
	none  lipgloss.Style
	step  lipgloss.Style
	muted lipgloss.Style
}

// newStyles styles output to w only if w is a terminal.
func newStyles(w io.Writer) *styles {
	s := &styles{
		found: lipgloss.NewStyle().Bold(true).Foreground(colorFound),
		none:  lipgloss.NewStyle().Bold(true).Foreground(colorNone),
		step:  lipgloss.NewStyle().Foreground(colorFound),
		muted: lipgloss.NewStyle().Foreground(colorMuted)}
	if f, ok := w.(*os.File); ok {
		s.on = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return s
}

func (s *styles) render(st lipgloss.Style, str string) string {
	if !s.on {
		return str
	}
	return st.Render(str)
}

func (s *styles) report(w io.Writer, r *lockbmc.Report, automata []*lock.Automaton) {
	if !s.on {
		r.Print(w, automata)
		return
	}
	res := s.render(s.none, r.Result())
	if r.Found {
		res = s.render(s.found, r.Result())
	}
	fmt.Fprintf(w, "bound %d, method %s: %s %s\n", r.Bound, r.Method, res,
		s.render(s.muted, fmt.Sprintf("(%s, run %s)", r.Duration, r.ID)))
	if r.Method != lockbmc.MethodSAT {
		fmt.Fprintln(w, s.render(s.muted, fmt.Sprintf("visited %d configurations", r.Visited)))
	}
	if r.Method != lockbmc.MethodSearch {
		fmt.Fprintln(w, s.render(s.muted, fmt.Sprintf("sat: %s with %d named variables", r.Status, r.Variables)))
	}
	for i, st := range r.Path {
		fmt.Fprintln(w, s.render(s.step, lock.Format(automata, i, st)))
	}
	if r.File != "" {
		fmt.Fprintf(w, "solution written to %s\n", r.File)
	}
}
