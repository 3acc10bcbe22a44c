package equity

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerbandit/poker"
)

const (
	// DefaultBudget is the wall-clock budget for one estimation.
	DefaultBudget = 10 * time.Second
	// DefaultExploration is the UCB1 exploration coefficient.
	DefaultExploration = 2.0
)

// Trial describes one completed simulation, passed to an Observer.
type Trial struct {
	Number    int
	Candidate Candidate // statistics after the update
	Won       bool
	Elapsed   time.Duration
}

// Observer is called synchronously after every trial.
type Observer func(Trial)

// Option configures an Estimator.
type Option func(*Estimator)

// WithBudget sets the wall-clock budget. A zero or negative budget runs no trials.
func WithBudget(d time.Duration) Option {
	return func(e *Estimator) { e.budget = d }
}

// WithExploration sets the UCB1 exploration coefficient.
func WithExploration(c float64) Option {
	return func(e *Estimator) { e.exploration = c }
}

// WithMaxTrials stops the run after n trials even if budget remains. Zero means
// no cap.
func WithMaxTrials(n int) Option {
	return func(e *Estimator) { e.maxTrials = n }
}

// WithRand sets the random source used for board completion.
func WithRand(rng *rand.Rand) Option {
	return func(e *Estimator) { e.rng = rng }
}

// WithClock sets the clock the budget is measured against.
func WithClock(clock quartz.Clock) Option {
	return func(e *Estimator) { e.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Estimator) { e.logger = logger }
}

// WithObserver registers a per-trial callback.
func WithObserver(o Observer) Option {
	return func(e *Estimator) { e.observer = o }
}

// WithDeadCards removes cards known to be out of play (burned or exposed)
// from both the opponent universe and board completion.
func WithDeadCards(cards ...poker.Card) Option {
	return func(e *Estimator) { e.dead = poker.NewHand(cards...) }
}
