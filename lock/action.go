// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lock

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the kind of an Action.
type Kind uint8

const (
	NoOp Kind = iota
	Acquire
	Release
)

// Action is the action attached to an edge: a no-op, or the acquisition or
// release of a lock.  Locks are identified by strictly positive integers.
type Action struct {
	Kind Kind
	Lock int
}

// Acq returns the action acquiring lock l.
func Acq(l int) Action {
	return Action{Kind: Acquire, Lock: l}
}

// Rel returns the action releasing lock l.
func Rel(l int) Action {
	return Action{Kind: Release, Lock: l}
}

// Code returns the signed integer code of a: 0 for a no-op, l for acquiring l
// and -l for releasing l.
func (a Action) Code() int {
	switch a.Kind {
	case Acquire:
		return a.Lock
	case Release:
		return -a.Lock
	default:
		return 0
	}
}

// ActionOf is the inverse of Code.
func ActionOf(code int) Action {
	switch {
	case code > 0:
		return Acq(code)
	case code < 0:
		return Rel(-code)
	default:
		return Action{}
	}
}

func (a Action) String() string {
	switch a.Kind {
	case Acquire:
		return fmt.Sprintf("acq(%d)", a.Lock)
	case Release:
		return fmt.Sprintf("rel(%d)", a.Lock)
	default:
		return "noop"
	}
}

// ParseAction parses an edge label.  Labels acq(N) and rel(N), with N a
// strictly positive integer and optionally surrounded by double quotes, give
// the corresponding action; anything else is a no-op.
func ParseAction(label string) Action {
	s := strings.TrimSpace(label)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	for _, k := range []Kind{Acquire, Release} {
		prefix := "acq("
		if k == Release {
			prefix = "rel("
		}
		body, ok := strings.CutPrefix(s, prefix)
		if !ok {
			continue
		}
		body, ok = strings.CutSuffix(body, ")")
		if !ok {
			return Action{}
		}
		n, err := strconv.Atoi(body)
		if err != nil || n <= 0 {
			return Action{}
		}
		return Action{Kind: k, Lock: n}
	}
	return Action{}
}
