package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerbandit/internal/display"
	"github.com/lox/pokerbandit/poker"
)

func init() {
	display.DisableColor()
}

func ptr[T any](v T) *T { return &v }

// quickFlags keeps estimations short: the trial cap ends the run long before
// the budget does.
func quickFlags(t *testing.T) CommonFlags {
	t.Helper()
	return CommonFlags{
		Config:    filepath.Join(t.TempDir(), "missing.hcl"),
		Budget:    ptr(time.Minute),
		Seed:      ptr(int64(42)),
		MaxTrials: ptr(300),
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokerbot.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDecideWithGivenCards(t *testing.T) {
	var out bytes.Buffer
	cmd := &DecideCmd{
		Hole:        "AsAh",
		Board:       "Kd7c2s",
		CommonFlags: quickFlags(t),
		out:         &out,
		errOut:      io.Discard,
	}
	require.NoError(t, cmd.Run())

	got := out.String()
	assert.Contains(t, got, "A♠ A♥")
	assert.Contains(t, got, "K♦ 7♣ 2♠")
	assert.Contains(t, got, "Estimated Win Probability: 0.")
	assert.Contains(t, got, "Bot decision: Stay")
}

func TestDecideThresholdForcesFold(t *testing.T) {
	var out bytes.Buffer
	flags := quickFlags(t)
	flags.Threshold = ptr(1.0)
	cmd := &DecideCmd{Hole: "7h2c", Board: "AsKdQc", CommonFlags: flags, out: &out, errOut: io.Discard}
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "Bot decision: Fold")
}

func TestDecideDealsRandomSpot(t *testing.T) {
	for street, n := range streetBoardCards {
		t.Run(street, func(t *testing.T) {
			flags := quickFlags(t)
			cmd := &DecideCmd{Street: street, CommonFlags: flags}
			hole, board, err := cmd.cards(*flags.Seed)
			require.NoError(t, err)
			assert.Len(t, hole, 2)
			assert.Len(t, board, n)
			assert.Equal(t, 2+n, poker.NewHand(append(hole, board...)...).CountCards())

			again, _, err := cmd.cards(*flags.Seed)
			require.NoError(t, err)
			assert.Equal(t, hole, again, "same seed must deal the same spot")
		})
	}
}

func TestDecideRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		hole  string
		board string
	}{
		{"unparseable hole", "AsXx", ""},
		{"one hole card", "As", ""},
		{"board too long", "AsAh", "2c3c4c5c6c7c"},
		{"duplicate", "AsAh", "As7c2d"},
		{"board without hole", "", "Kd7c2s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &DecideCmd{Hole: tt.hole, Board: tt.board, CommonFlags: quickFlags(t), out: io.Discard, errOut: io.Discard}
			assert.Error(t, cmd.Run())
		})
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, `
estimator {
  budget      = "2s"
  exploration = 1.5
  seed        = 7
}

decision {
  threshold = 0.6
}
`)
	flags := CommonFlags{Config: path, Budget: ptr(3 * time.Second), Threshold: ptr(0.4), Debug: true}
	cfg, err := flags.load()
	require.NoError(t, err)

	assert.Equal(t, "3s", cfg.Estimator.Budget)
	assert.Equal(t, 1.5, cfg.Estimator.Exploration)
	assert.Equal(t, int64(7), cfg.Estimator.Seed)
	assert.Equal(t, 0.4, cfg.Decision.Threshold)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFlagsValidateOverrides(t *testing.T) {
	flags := quickFlags(t)
	flags.Threshold = ptr(1.5)
	_, err := flags.load()
	assert.Error(t, err)
}

func TestEval(t *testing.T) {
	var out bytes.Buffer
	cmd := &EvalCmd{Cards: []string{"AsKs", "QsJsTs", "2d"}, out: &out}
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "Royal Flush")

	cmd = &EvalCmd{Cards: []string{"AsKs"}, out: io.Discard}
	assert.ErrorIs(t, cmd.Run(), poker.ErrHandSize)
}

func TestBatch(t *testing.T) {
	path := writeConfig(t, `
estimator {
  budget     = "1m"
  max_trials = 200
  seed       = 99
}

scenario "aces" {
  hole  = "AsAh"
  board = "Kd7c2s"
}

scenario "rags" {
  hole = "7h2c"
}

scenario "set" {
  hole  = "9c9d"
  board = "9s5h2d"
}
`)
	report := filepath.Join(t.TempDir(), "results.json")
	var out bytes.Buffer
	cmd := &BatchCmd{
		Scenario:    []string{"aces", "set"},
		Parallel:    2,
		Output:      report,
		CommonFlags: CommonFlags{Config: path},
		out:         &out,
		errOut:      io.Discard,
	}
	require.NoError(t, cmd.Run())

	got := out.String()
	assert.Contains(t, got, "aces")
	assert.Contains(t, got, "set")
	assert.NotContains(t, got, "rags")
	assert.Equal(t, 3, strings.Count(got, "\n"), "header plus one line per scenario")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var decoded batchReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(99), decoded.Seed)
	require.Len(t, decoded.Scenarios, 2)
	for _, sc := range decoded.Scenarios {
		assert.Equal(t, 200, sc.Trials)
		assert.LessOrEqual(t, sc.Interval95[0], sc.Probability)
		assert.GreaterOrEqual(t, sc.Interval95[1], sc.Probability)
	}
	assert.Equal(t, "9c 9d", decoded.Scenarios[1].Hole)
}

func TestBatchWithoutScenarios(t *testing.T) {
	cmd := &BatchCmd{CommonFlags: quickFlags(t), out: io.Discard, errOut: io.Discard}
	assert.ErrorIs(t, cmd.Run(), errNoScenarios)
}

func TestCLIParses(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("pokerbot"), kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"decide", "--hole", "AsKd", "--budget", "250ms", "--seed", "5", "--street", "turn"})
	require.NoError(t, err)
	assert.Equal(t, "decide", ctx.Command())
	assert.Equal(t, "AsKd", cli.Decide.Hole)
	require.NotNil(t, cli.Decide.Budget)
	assert.Equal(t, 250*time.Millisecond, *cli.Decide.Budget)
	assert.Equal(t, int64(5), *cli.Decide.Seed)
	assert.Nil(t, cli.Decide.MaxTrials)

	_, err = parser.Parse([]string{"decide", "--street", "showdown"})
	assert.Error(t, err)
}
