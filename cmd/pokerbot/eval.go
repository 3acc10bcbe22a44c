package main

import (
	"io"
	"strings"

	"github.com/lox/pokerbandit/internal/display"
	"github.com/lox/pokerbandit/poker"
)

type EvalCmd struct {
	Cards   []string `arg:"" help:"5 to 7 cards, e.g. 'AsKs QsJsTs'"`
	NoColor bool     `env:"POKERBOT_NO_COLOR" help:"Disable colored output"`

	out io.Writer `kong:"-"`
}

func (c *EvalCmd) Run() error {
	if c.NoColor {
		display.DisableColor()
	}
	cards, err := poker.ParseCards(strings.Join(c.Cards, ""))
	if err != nil {
		return err
	}
	hr, err := poker.Evaluate(cards)
	if err != nil {
		return err
	}
	display.Rank(stdout(c.out), cards, hr)
	return nil
}
