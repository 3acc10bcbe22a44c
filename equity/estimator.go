// Package equity estimates the probability that a hand wins a heads-up
// showdown. Opponent holdings are chosen with a UCB1 bandit over every
// possible two-card hand and the board is completed at random, until a
// wall-clock budget runs out.
package equity

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerbandit/internal/randutil"
	"github.com/lox/pokerbandit/internal/runid"
	"github.com/lox/pokerbandit/poker"
)

const boardSize = 5

var (
	// ErrHoleCards is returned when the hole cards are not exactly two valid cards.
	ErrHoleCards = errors.New("hole cards must be exactly two valid cards")
	// ErrBoardSize is returned when more than five community cards are given.
	ErrBoardSize = errors.New("board must hold at most five valid cards")
	// ErrDuplicateCard is returned when hole, board and dead cards overlap.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Estimator runs win-probability estimations. Each Estimate call owns fresh
// statistics; an Estimator is not safe for concurrent use because it holds a
// single random source.
type Estimator struct {
	budget      time.Duration
	exploration float64
	maxTrials   int
	dead        poker.Hand
	rng         *rand.Rand
	clock       quartz.Clock
	logger      *log.Logger
	observer    Observer
	ids         *runid.Generator
}

// New creates an Estimator with the default budget and exploration coefficient.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		budget:      DefaultBudget,
		exploration: DefaultExploration,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.New(randutil.Resolve(0))
	}
	if e.clock == nil {
		e.clock = quartz.NewReal()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.logger = e.logger.WithPrefix("equity")
	e.ids = runid.NewGenerator(e.clock, nil)
	return e
}

// EstimateWinProbability is a convenience wrapper returning only the probability.
func EstimateWinProbability(hole, board []poker.Card, opts ...Option) (float64, error) {
	result, err := New(opts...).Estimate(hole, board)
	if err != nil {
		return 0, err
	}
	return result.Probability, nil
}

// run is the per-call simulation state. It is discarded when Estimate returns.
type run struct {
	known       poker.Hand // hole | board
	player      poker.Hand
	board       poker.Hand
	unseen      []poker.Card
	candidates  []Candidate
	explored    int
	trials      int
	boardNeeded int
	pool        []poker.Card
}

// Estimate returns the estimated probability that hole beats a single random
// opponent once board is completed to five cards. Ties count as losses.
func (e *Estimator) Estimate(hole, board []poker.Card) (*Result, error) {
	r, err := e.newRun(hole, board)
	if err != nil {
		return nil, err
	}

	id := e.ids.Generate()
	logger := e.logger.With("run", id)
	logger.Debug("Starting estimation",
		"hole", poker.FormatCards(hole),
		"board", poker.FormatCards(board),
		"candidates", len(r.candidates),
		"budget", e.budget)

	start := e.clock.Now("equity", "start")
	if r.feasible() {
		for e.clock.Since(start, "equity", "deadline") < e.budget {
			if e.maxTrials > 0 && r.trials >= e.maxTrials {
				break
			}
			e.step(r, start)
		}
	}
	elapsed := e.clock.Since(start, "equity", "elapsed")

	result := newResult(id, r.candidates, r.trials, elapsed)
	logger.Debug("Finished estimation",
		"trials", result.Trials,
		"sampled", result.Sampled(),
		"probability", fmt.Sprintf("%.4f", result.Probability),
		"elapsed", elapsed)
	return result, nil
}

func (e *Estimator) newRun(hole, board []poker.Card) (*run, error) {
	if len(hole) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrHoleCards, len(hole))
	}
	if len(board) > boardSize {
		return nil, fmt.Errorf("%w: got %d", ErrBoardSize, len(board))
	}

	r := &run{boardNeeded: boardSize - len(board)}
	for _, c := range hole {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: id %d", ErrHoleCards, c)
		}
		if r.player.HasCard(c) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		r.player.AddCard(c)
	}
	for _, c := range board {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: id %d", ErrBoardSize, c)
		}
		if r.player.HasCard(c) || r.board.HasCard(c) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		r.board.AddCard(c)
	}
	r.known = r.player | r.board
	if r.known&e.dead != 0 {
		return nil, fmt.Errorf("%w: dead cards overlap %s", ErrDuplicateCard, poker.FormatCards((r.known & e.dead).Cards()))
	}

	r.unseen = (r.known | e.dead).Complement().Cards()
	r.candidates = enumerateCandidates(r.unseen)
	r.pool = make([]poker.Card, 0, len(r.unseen))
	return r, nil
}

// feasible reports whether any candidate exists and enough cards remain to
// complete the board around it.
func (r *run) feasible() bool {
	return len(r.candidates) > 0 && len(r.unseen)-2 >= r.boardNeeded
}

// step runs one trial: select, sample, showdown, update.
func (e *Estimator) step(r *run, start time.Time) {
	r.trials++

	idx := selectCandidate(r.candidates, r.explored, r.trials, e.exploration)
	if idx == r.explored {
		r.explored++
	}
	cand := &r.candidates[idx]
	opponent := cand.Hand()

	r.pool = r.pool[:0]
	for _, c := range r.unseen {
		if !opponent.HasCard(c) {
			r.pool = append(r.pool, c)
		}
	}
	runout := r.board | poker.NewHand(poker.Sample(r.pool, r.boardNeeded, e.rng)...)

	playerRank := poker.EvaluateHand(r.player | runout)
	opponentRank := poker.EvaluateHand(opponent | runout)
	won := playerRank.Beats(opponentRank)

	cand.Trials++
	if won {
		cand.Wins++
	}

	if e.observer != nil {
		e.observer(Trial{
			Number:    r.trials,
			Candidate: *cand,
			Won:       won,
			Elapsed:   e.clock.Since(start, "equity", "observer"),
		})
	}
}
