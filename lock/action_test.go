// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  Action
	}{
		{"acq(1)", Acq(1)},
		{"rel(12)", Rel(12)},
		{`"acq(3)"`, Acq(3)},
		{" rel(2) ", Rel(2)},
		{"", Action{}},
		{"noop", Action{}},
		{"acq(0)", Action{}},
		{"acq(-1)", Action{}},
		{"acq(x)", Action{}},
		{"acq(1", Action{}},
		{"take(1)", Action{}},
	} {
		assert.Equal(t, tc.want, ParseAction(tc.label), "label %q", tc.label)
	}
}

func TestActionCode(t *testing.T) {
	for _, a := range []Action{{}, Acq(1), Rel(1), Acq(7), Rel(9)} {
		assert.Equal(t, a, ActionOf(a.Code()))
		assert.Equal(t, a, ParseAction(a.String()))
	}
	assert.Equal(t, "noop", Action{}.String())
	assert.Equal(t, "acq(4)", Acq(4).String())
	assert.Equal(t, "rel(4)", Rel(4).String())
}
