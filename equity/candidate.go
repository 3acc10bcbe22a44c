package equity

import (
	"math"

	"github.com/lox/pokerbandit/poker"
)

// Candidate is one possible opponent holding plus the statistics gathered for
// it during a single estimation run. Wins never exceed Trials.
type Candidate struct {
	Cards  [2]poker.Card
	Wins   int
	Trials int
}

// Hand returns the candidate's two cards as a card set.
func (c Candidate) Hand() poker.Hand {
	return poker.NewHand(c.Cards[0], c.Cards[1])
}

// WinRate returns Wins/Trials, or 0 for an unsampled candidate.
func (c Candidate) WinRate() float64 {
	if c.Trials == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Trials)
}

// Category classifies the candidate's hole cards.
func (c Candidate) Category() poker.HoleCardCategory {
	return poker.CategorizeHoleCards(c.Cards[0], c.Cards[1])
}

// String renders the candidate's cards, e.g. "As Kd".
func (c Candidate) String() string {
	return poker.FormatCards(c.Cards[:])
}

// enumerateCandidates returns every unordered pair drawn from unseen, in
// lexicographic index order, with zeroed statistics.
func enumerateCandidates(unseen []poker.Card) []Candidate {
	n := len(unseen)
	if n < 2 {
		return nil
	}
	candidates := make([]Candidate, 0, n*(n-1)/2)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			candidates = append(candidates, Candidate{Cards: [2]poker.Card{unseen[i], unseen[j]}})
		}
	}
	return candidates
}

// ucbScore is the UCB1 upper bound for a sampled candidate.
func ucbScore(c *Candidate, logTotal, exploration float64) float64 {
	return c.WinRate() + exploration*math.Sqrt(logTotal/float64(c.Trials))
}

// selectCandidate returns the index of the candidate with the highest UCB1
// score. Untried candidates score +Inf and the first one in order wins; since
// candidates are always explored in order, untried candidates form the suffix
// starting at explored.
func selectCandidate(candidates []Candidate, explored, totalTrials int, exploration float64) int {
	if explored < len(candidates) {
		return explored
	}
	logTotal := math.Log(float64(totalTrials))
	best := 0
	bestScore := math.Inf(-1)
	for i := range candidates {
		if score := ucbScore(&candidates[i], logTotal, exploration); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
