package main

import (
	"fmt"
	"io"

	"github.com/lox/pokerbandit/internal/decision"
	"github.com/lox/pokerbandit/internal/display"
	"github.com/lox/pokerbandit/internal/randutil"
	"github.com/lox/pokerbandit/poker"
)

// streetBoardCards maps a street to the number of community cards dealt by it.
var streetBoardCards = map[string]int{
	"preflop": 0,
	"flop":    3,
	"turn":    4,
	"river":   5,
}

type DecideCmd struct {
	Hole    string `short:"H" help:"Hole cards, e.g. 'AsKd'. Dealt at random when empty."`
	Board   string `short:"b" help:"Community cards, e.g. 'Td7s8h'"`
	Street  string `default:"flop" enum:"preflop,flop,turn,river" help:"Street to deal when hole cards are dealt at random"`
	Verbose bool   `short:"V" help:"Show per-category win rates and the most sampled opponent hands"`

	CommonFlags `embed:""`

	out    io.Writer `kong:"-"`
	errOut io.Writer `kong:"-"`
}

func (c *DecideCmd) Run() error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	logger := newLogger(stderr(c.errOut), cfg)
	seed := randutil.Resolve(cfg.Estimator.Seed)

	hole, board, err := c.cards(seed)
	if err != nil {
		return err
	}

	est, err := newEstimator(cfg, seed, logger)
	if err != nil {
		return err
	}
	maker := decision.NewMaker(est, cfg.Decision.Threshold, logger)
	d, err := maker.Decide(hole, board)
	if err != nil {
		return err
	}
	display.Decision(stdout(c.out), hole, board, d, c.Verbose)
	return nil
}

// cards parses the given hole and board cards, or deals a random spot for the
// chosen street when no hole cards were given.
func (c *DecideCmd) cards(seed int64) (hole, board []poker.Card, err error) {
	if c.Hole == "" {
		if c.Board != "" {
			return nil, nil, fmt.Errorf("--board requires --hole")
		}
		deck := poker.NewDeck(randutil.New(randutil.Derive(seed, 0)))
		hole = deck.Draw(2)
		board = deck.Draw(streetBoardCards[c.Street])
		return hole, board, nil
	}
	hole, err = poker.ParseCards(c.Hole)
	if err != nil {
		return nil, nil, fmt.Errorf("hole cards: %w", err)
	}
	board, err = poker.ParseCards(c.Board)
	if err != nil {
		return nil, nil, fmt.Errorf("board cards: %w", err)
	}
	return hole, board, nil
}
