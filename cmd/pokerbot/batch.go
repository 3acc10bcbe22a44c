package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerbandit/internal/config"
	"github.com/lox/pokerbandit/internal/decision"
	"github.com/lox/pokerbandit/internal/display"
	"github.com/lox/pokerbandit/internal/fileutil"
	"github.com/lox/pokerbandit/internal/randutil"
	"github.com/lox/pokerbandit/poker"
)

var errNoScenarios = errors.New("no scenarios to run")

type BatchCmd struct {
	Scenario []string `short:"s" help:"Only run the named scenarios"`
	Parallel int      `short:"p" default:"0" help:"Scenarios to run at once (0 = number of CPUs)"`
	Output   string   `short:"o" type:"path" help:"Also write results as JSON to this file"`

	CommonFlags `embed:""`

	out    io.Writer `kong:"-"`
	errOut io.Writer `kong:"-"`
}

func (c *BatchCmd) Run() error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	logger := newLogger(stderr(c.errOut), cfg)

	scenarios := cfg.Scenarios
	if len(c.Scenario) > 0 {
		scenarios = slices.DeleteFunc(slices.Clone(scenarios), func(sc config.ScenarioConfig) bool {
			return !slices.Contains(c.Scenario, sc.Name)
		})
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("%w in %s", errNoScenarios, c.Config)
	}

	parallel := c.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	seed := randutil.Resolve(cfg.Estimator.Seed)
	logger.Info("Running scenarios", "count", len(scenarios), "parallel", parallel, "seed", seed)

	rows := make([]display.BatchRow, len(scenarios))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(parallel)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hole, board, err := sc.Cards()
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			scLogger := logger.With("scenario", sc.Name)
			est, err := newEstimator(cfg, randutil.Derive(seed, i), scLogger)
			if err != nil {
				return err
			}
			d, err := decision.NewMaker(est, cfg.Decision.Threshold, scLogger).Decide(hole, board)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			rows[i] = display.BatchRow{Name: sc.Name, Hole: hole, Board: board, Decision: d}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	display.Batch(stdout(c.out), rows)

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, newReport(seed, rows)); err != nil {
			return err
		}
		logger.Info("Results written to file", "file", c.Output)
	}
	return nil
}

// scenarioReport is the JSON form of one batch row.
type scenarioReport struct {
	Name        string          `json:"name"`
	Hole        string          `json:"hole"`
	Board       string          `json:"board"`
	RunID       string          `json:"run_id"`
	Probability float64         `json:"probability"`
	Interval95  [2]float64      `json:"interval_95"`
	Pooled      float64         `json:"pooled_win_rate"`
	Trials      int             `json:"trials"`
	Sampled     int             `json:"sampled_candidates"`
	ElapsedMS   int64           `json:"elapsed_ms"`
	Action      decision.Action `json:"action"`
	Threshold   float64         `json:"threshold"`
}

type batchReport struct {
	Seed      int64            `json:"seed"`
	Scenarios []scenarioReport `json:"scenarios"`
}

func newReport(seed int64, rows []display.BatchRow) batchReport {
	report := batchReport{Seed: seed, Scenarios: make([]scenarioReport, len(rows))}
	for i, row := range rows {
		r := row.Decision.Result
		low, high := r.Interval95()
		report.Scenarios[i] = scenarioReport{
			Name:        row.Name,
			Hole:        poker.FormatCards(row.Hole),
			Board:       poker.FormatCards(row.Board),
			RunID:       r.RunID,
			Probability: r.Probability,
			Interval95:  [2]float64{low, high},
			Pooled:      r.PooledWinRate(),
			Trials:      r.Trials,
			Sampled:     r.Sampled(),
			ElapsedMS:   r.Elapsed.Milliseconds(),
			Action:      row.Decision.Action,
			Threshold:   row.Decision.Threshold,
		}
	}
	return report
}
