// Package config loads pokerbot settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerbandit/equity"
	"github.com/lox/pokerbandit/internal/decision"
	"github.com/lox/pokerbandit/poker"
)

// Config represents the complete pokerbot configuration
type Config struct {
	Estimator *EstimatorConfig `hcl:"estimator,block"`
	Decision  *DecisionConfig  `hcl:"decision,block"`
	LogLevel  string           `hcl:"log_level,optional"`
	Scenarios []ScenarioConfig `hcl:"scenario,block"`
}

// EstimatorConfig controls the Monte Carlo estimator
type EstimatorConfig struct {
	Budget      string  `hcl:"budget,optional"`
	Exploration float64 `hcl:"exploration,optional"`
	MaxTrials   int     `hcl:"max_trials,optional"`
	Seed        int64   `hcl:"seed,optional"`
}

// DecisionConfig controls the stay/fold threshold
type DecisionConfig struct {
	Threshold float64 `hcl:"threshold,optional"`
}

// ScenarioConfig is a named hole/board pair evaluated by the batch command
type ScenarioConfig struct {
	Name  string `hcl:"name,label"`
	Hole  string `hcl:"hole"`
	Board string `hcl:"board,optional"`
}

// Default returns the default configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Estimator == nil {
		c.Estimator = &EstimatorConfig{}
	}
	if c.Estimator.Budget == "" {
		c.Estimator.Budget = equity.DefaultBudget.String()
	}
	if c.Estimator.Exploration == 0 {
		c.Estimator.Exploration = equity.DefaultExploration
	}
	if c.Decision == nil {
		c.Decision = &DecisionConfig{}
	}
	if c.Decision.Threshold == 0 {
		c.Decision.Threshold = decision.DefaultThreshold
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks values that cannot be fixed by defaults
func (c *Config) Validate() error {
	if _, err := c.Budget(); err != nil {
		return err
	}
	if c.Estimator.Exploration < 0 {
		return fmt.Errorf("exploration must not be negative, got %v", c.Estimator.Exploration)
	}
	if c.Estimator.MaxTrials < 0 {
		return fmt.Errorf("max_trials must not be negative, got %d", c.Estimator.MaxTrials)
	}
	if t := c.Decision.Threshold; t < 0 || t > 1 {
		return fmt.Errorf("threshold must be within [0, 1], got %v", t)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Scenarios))
	for _, sc := range c.Scenarios {
		if seen[sc.Name] {
			return fmt.Errorf("duplicate scenario %q", sc.Name)
		}
		seen[sc.Name] = true
		if _, _, err := sc.Cards(); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	return nil
}

// Budget parses the estimator budget
func (c *Config) Budget() (time.Duration, error) {
	d, err := time.ParseDuration(c.Estimator.Budget)
	if err != nil {
		return 0, fmt.Errorf("invalid budget %q: %w", c.Estimator.Budget, err)
	}
	return d, nil
}

// Level parses the configured log level
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Cards parses the scenario's hole and board cards
func (s ScenarioConfig) Cards() (hole, board []poker.Card, err error) {
	hole, err = poker.ParseCards(s.Hole)
	if err != nil {
		return nil, nil, fmt.Errorf("hole: %w", err)
	}
	if len(hole) != 2 {
		return nil, nil, fmt.Errorf("hole: need 2 cards, got %d", len(hole))
	}
	board, err = poker.ParseCards(s.Board)
	if err != nil {
		return nil, nil, fmt.Errorf("board: %w", err)
	}
	return hole, board, nil
}
