package equity

import (
	"cmp"
	"slices"
	"time"

	"github.com/lox/pokerbandit/internal/statistics"
	"github.com/lox/pokerbandit/poker"
)

// Result is the outcome of one estimation run.
type Result struct {
	RunID string
	// Probability is the unweighted mean of per-candidate win rates over every
	// candidate sampled at least once, or 0 when none was sampled.
	Probability float64
	Trials      int
	Candidates  []Candidate
	Elapsed     time.Duration
}

func newResult(id string, candidates []Candidate, trials int, elapsed time.Duration) *Result {
	return &Result{
		RunID:       id,
		Probability: meanWinRate(candidates),
		Trials:      trials,
		Candidates:  candidates,
		Elapsed:     elapsed,
	}
}

// spread accumulates the win rates of sampled candidates, each weighted equally.
func spread(candidates []Candidate) *statistics.Statistics {
	stats := &statistics.Statistics{}
	for _, c := range candidates {
		if c.Trials > 0 {
			stats.Add(c.WinRate(), c.Trials)
		}
	}
	return stats
}

func meanWinRate(candidates []Candidate) float64 {
	return spread(candidates).Mean()
}

// Sampled returns the number of candidates with at least one trial.
func (r *Result) Sampled() int {
	n := 0
	for _, c := range r.Candidates {
		if c.Trials > 0 {
			n++
		}
	}
	return n
}

// Interval95 returns a 95% confidence interval around Probability, treating
// each sampled candidate's win rate as one observation.
func (r *Result) Interval95() (low, high float64) {
	return spread(r.Candidates).ConfidenceInterval95()
}

// PooledWinRate returns total wins over total trials. It differs from
// Probability whenever trials are spread unevenly across candidates.
func (r *Result) PooledWinRate() float64 {
	var wins, trials int
	for _, c := range r.Candidates {
		wins += c.Wins
		trials += c.Trials
	}
	if trials == 0 {
		return 0
	}
	return float64(wins) / float64(trials)
}

// ByCategory returns the mean win rate against sampled candidates in each
// hole-card category. Categories with no sampled candidate are omitted.
func (r *Result) ByCategory() map[poker.HoleCardCategory]float64 {
	groups := make(map[poker.HoleCardCategory][]Candidate)
	for _, c := range r.Candidates {
		if c.Trials > 0 {
			cat := c.Category()
			groups[cat] = append(groups[cat], c)
		}
	}
	out := make(map[poker.HoleCardCategory]float64, len(groups))
	for cat, cands := range groups {
		out[cat] = meanWinRate(cands)
	}
	return out
}

// MostSampled returns up to n candidates ordered by trial count, highest first.
// These are the holdings the bandit spent the most effort on.
func (r *Result) MostSampled(n int) []Candidate {
	sorted := slices.Clone(r.Candidates)
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		return cmp.Compare(b.Trials, a.Trials)
	})
	var out []Candidate
	for _, c := range sorted {
		if len(out) == n || c.Trials == 0 {
			break
		}
		out = append(out, c)
	}
	return out
}
