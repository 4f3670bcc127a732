// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lockbmc_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/lockbmc"
)

func TestDefaultConfig(t *testing.T) {
	cfg := lockbmc.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, lockbmc.MethodBoth, cfg.Method)
	assert.Equal(t, "full", cfg.Encoding)
}

func TestValidate(t *testing.T) {
	for name, f := range map[string]func(*lockbmc.Config){
		"bound":    func(c *lockbmc.Config) { c.Bound = -1 },
		"method":   func(c *lockbmc.Config) { c.Method = "guess" },
		"encoding": func(c *lockbmc.Config) { c.Encoding = "partial" },
		"workers":  func(c *lockbmc.Config) { c.Workers = 0 },
		"timeout":  func(c *lockbmc.Config) { c.Timeout = -time.Second },
		"export":   func(c *lockbmc.Config) { c.Export, c.OutputDir = true, "" },
		"automata": func(c *lockbmc.Config) { c.Automata = []string{"a.dot", ""} },
		"level":    func(c *lockbmc.Config) { c.LogLevel = "loud" },
	} {
		cfg := lockbmc.DefaultConfig()
		f(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestLoadConfig(t *testing.T) {
	p := writeFile(t, "lockbmc.yaml", `
bound: 3
max_bound: 6
method: sat
encoding: monotone
timeout: 5s
workers: 2
export: true
output_dir: out
automata:
  - p1.dot
  - p2.dot
log_level: debug
`)
	cfg, err := lockbmc.LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Bound)
	assert.Equal(t, 6, cfg.MaxBound)
	assert.Equal(t, lockbmc.MethodSAT, cfg.Method)
	assert.Equal(t, "monotone", cfg.Encoding)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Export)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, []string{"p1.dot", "p2.dot"}, cfg.Automata)
	assert.Equal(t, "debug", cfg.LogLevel)
	// unset fields keep their defaults
	assert.Equal(t, "deadlock", cfg.Name)

	p = writeFile(t, "bad.yaml", "method: guess\n")
	_, err = lockbmc.LoadConfig(p)
	assert.Error(t, err)

	p = writeFile(t, "export.yaml", "export: true\noutput_dir: \"\"\n")
	_, err = lockbmc.LoadConfig(p)
	assert.Error(t, err)

	p = writeFile(t, "syntax.yaml", "bound: [\n")
	_, err = lockbmc.LoadConfig(p)
	assert.Error(t, err)

	_, err = lockbmc.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
