package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerbandit/equity"
	"github.com/lox/pokerbandit/internal/config"
	"github.com/lox/pokerbandit/internal/display"
	"github.com/lox/pokerbandit/internal/randutil"
)

// CommonFlags are shared by every estimating command. Unset flags fall back to
// the config file, then to built-in defaults.
type CommonFlags struct {
	Config      string         `short:"c" default:"pokerbot.hcl" env:"POKERBOT_CONFIG" help:"HCL config file (ignored if missing)"`
	Debug       bool           `env:"POKERBOT_DEBUG" help:"Enable debug logging"`
	NoColor     bool           `env:"POKERBOT_NO_COLOR" help:"Disable colored output"`
	Budget      *time.Duration `env:"POKERBOT_BUDGET" help:"Wall-clock budget per estimation"`
	Seed        *int64         `env:"POKERBOT_SEED" help:"Random seed for reproducible results"`
	MaxTrials   *int           `env:"POKERBOT_MAX_TRIALS" help:"Stop after this many trials (0 = no cap)"`
	Exploration *float64       `env:"POKERBOT_EXPLORATION" help:"UCB1 exploration coefficient"`
	Threshold   *float64       `env:"POKERBOT_THRESHOLD" help:"Minimum win probability to stay"`
}

// load reads the config file and layers the command-line overrides on top.
func (f *CommonFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, err
	}
	if f.Budget != nil {
		cfg.Estimator.Budget = f.Budget.String()
	}
	if f.Seed != nil {
		cfg.Estimator.Seed = *f.Seed
	}
	if f.MaxTrials != nil {
		cfg.Estimator.MaxTrials = *f.MaxTrials
	}
	if f.Exploration != nil {
		cfg.Estimator.Exploration = *f.Exploration
	}
	if f.Threshold != nil {
		cfg.Decision.Threshold = *f.Threshold
	}
	if f.Debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if f.NoColor {
		display.DisableColor()
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	level, _ := cfg.Level()
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "pokerbot",
	})
}

func newEstimator(cfg *config.Config, seed int64, logger *log.Logger) (*equity.Estimator, error) {
	budget, err := cfg.Budget()
	if err != nil {
		return nil, err
	}
	return equity.New(
		equity.WithBudget(budget),
		equity.WithExploration(cfg.Estimator.Exploration),
		equity.WithMaxTrials(cfg.Estimator.MaxTrials),
		equity.WithRand(randutil.New(seed)),
		equity.WithLogger(logger),
	), nil
}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func stderr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}
