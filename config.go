// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lockbmc

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/go-air/lockbmc/dot"
)

// Method selects the decision procedure of a Checker.
type Method string

const (
	MethodSearch Method = "search"
	MethodSAT    Method = "sat"
	MethodBoth   Method = "both"
)

// Config configures a Checker.  It can be loaded from YAML.
type Config struct {
	// Bound is the number of steps of a query.
	Bound int `yaml:"bound" validate:"gte=0"`
	// MaxBound is the last bound of a sweep.
	MaxBound int    `yaml:"max_bound" validate:"gte=0"`
	Method   Method `yaml:"method" validate:"oneof=search sat both"`
	// Encoding is "full" or "monotone", see bmc.Mode.
	Encoding string `yaml:"encoding" validate:"oneof=full monotone"`
	// Timeout bounds each SAT solve, 0 for none.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
	// Workers bounds the number of concurrent queries of a sweep.
	Workers int `yaml:"workers" validate:"gte=1"`
	// Export writes every path found to OutputDir/<Name>_<bound>.dot.
	Export    bool   `yaml:"export"`
	OutputDir string `yaml:"output_dir" validate:"required_if=Export true"`
	Name      string `yaml:"name"`
	// Automata lists the Graphviz files of the automata.
	Automata []string `yaml:"automata" validate:"dive,required"`
	LogLevel string   `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Method:    MethodBoth,
		Encoding:  "full",
		Timeout:   30 * time.Second,
		Workers:   4,
		OutputDir: dot.DefaultDir,
		Name:      "deadlock",
		LogLevel:  "info"}
}

var validate = validator.New()

// Validate checks c.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads the YAML file at path over DefaultConfig and validates
// the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
