package equity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokerbandit/poker"
)

func TestEnumerateCandidates(t *testing.T) {
	unseen := poker.MustParseCards("AsKsQsJs")
	cands := enumerateCandidates(unseen)
	assert.Len(t, cands, 6)
	assert.Equal(t, "As Ks", cands[0].String())
	assert.Equal(t, "Qs Js", cands[5].String())

	assert.Nil(t, enumerateCandidates(unseen[:1]))
	assert.Nil(t, enumerateCandidates(nil))
}

func TestSelectCandidatePrefersUntried(t *testing.T) {
	cands := []Candidate{
		{Wins: 9, Trials: 10},
		{Wins: 0, Trials: 0},
		{Wins: 0, Trials: 0},
	}
	assert.Equal(t, 1, selectCandidate(cands, 1, 11, DefaultExploration))
}

func TestSelectCandidateUCB1(t *testing.T) {
	// total = 25, ln(25) = 3.219
	//   9/10: 0.9 + 2*sqrt(3.219/10) = 2.035
	//   1/10: 0.1 + 2*sqrt(3.219/10) = 1.235
	//   5/5:  1.0 + 2*sqrt(3.219/5)  = 2.605
	cands := []Candidate{
		{Wins: 9, Trials: 10},
		{Wins: 1, Trials: 10},
		{Wins: 5, Trials: 5},
	}
	assert.Equal(t, 2, selectCandidate(cands, len(cands), 25, DefaultExploration))

	// A single losing trial carries the largest exploration bonus: 2*sqrt(3.219) = 3.588
	cands = append(cands, Candidate{Wins: 0, Trials: 1})
	assert.Equal(t, 3, selectCandidate(cands, len(cands), 26, DefaultExploration))

	// Without exploration the best empirical rate wins; ties keep the first
	cands = []Candidate{
		{Wins: 1, Trials: 2},
		{Wins: 3, Trials: 4},
		{Wins: 6, Trials: 8},
	}
	assert.Equal(t, 1, selectCandidate(cands, len(cands), 14, 0))
}

func TestUCBScore(t *testing.T) {
	c := Candidate{Wins: 3, Trials: 4}
	want := 0.75 + 2*math.Sqrt(math.Log(16)/4)
	assert.InDelta(t, want, ucbScore(&c, math.Log(16), 2), 1e-12)
}

func TestCandidateCategory(t *testing.T) {
	c := Candidate{Cards: [2]poker.Card{poker.NewCard(poker.Ace, poker.Spades), poker.NewCard(poker.Ace, poker.Hearts)}}
	assert.Equal(t, poker.CategoryPremium, c.Category())
	assert.Zero(t, c.WinRate())
	assert.Equal(t, 2, c.Hand().CountCards())
}
