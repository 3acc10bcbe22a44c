// Package decision turns a win probability into a stay-or-fold action.
package decision

import (
	"github.com/charmbracelet/log"

	"github.com/lox/pokerbandit/equity"
	"github.com/lox/pokerbandit/poker"
)

// DefaultThreshold is the probability at or above which the bot stays in.
const DefaultThreshold = 0.5

// Action is the outcome of a decision.
type Action string

const (
	Stay Action = "Stay"
	Fold Action = "Fold"
)

// Decide returns Stay when probability is at least threshold, otherwise Fold.
func Decide(probability, threshold float64) Action {
	if probability >= threshold {
		return Stay
	}
	return Fold
}

// Decision is an action together with the estimation behind it.
type Decision struct {
	Action    Action
	Threshold float64
	Result    *equity.Result
}

// Maker runs one estimation per decision point and applies the threshold.
type Maker struct {
	estimator *equity.Estimator
	threshold float64
	logger    *log.Logger
}

// NewMaker creates a Maker. The logger must not be nil.
func NewMaker(estimator *equity.Estimator, threshold float64, logger *log.Logger) *Maker {
	return &Maker{
		estimator: estimator,
		threshold: threshold,
		logger:    logger.WithPrefix("decision"),
	}
}

// Decide estimates the win probability for hole and board and returns the action.
func (m *Maker) Decide(hole, board []poker.Card) (Decision, error) {
	result, err := m.estimator.Estimate(hole, board)
	if err != nil {
		return Decision{}, err
	}
	action := Decide(result.Probability, m.threshold)
	m.logger.Info("Decision made",
		"run", result.RunID,
		"hole", poker.FormatCards(hole),
		"board", poker.FormatCards(board),
		"probability", result.Probability,
		"trials", result.Trials,
		"action", action)
	return Decision{Action: action, Threshold: m.threshold, Result: result}, nil
}
