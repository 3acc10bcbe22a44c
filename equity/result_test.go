package equity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokerbandit/poker"
)

func cand(cards string, wins, trials int) Candidate {
	cs := poker.MustParseCards(cards)
	return Candidate{Cards: [2]poker.Card{cs[0], cs[1]}, Wins: wins, Trials: trials}
}

// The reported probability is the mean of per-candidate win rates, not the
// pooled rate. With uneven trial counts the two differ, and that is intended.
func TestProbabilityIsPerCandidateMean(t *testing.T) {
	result := newResult("run", []Candidate{
		cand("AsAh", 1, 1),
		cand("7c2d", 0, 3),
		cand("KsQs", 0, 0),
	}, 4, time.Second)

	assert.InDelta(t, 0.5, result.Probability, 1e-12)
	assert.InDelta(t, 0.25, result.PooledWinRate(), 1e-12)
	assert.Equal(t, 2, result.Sampled())
}

func TestEmptyResult(t *testing.T) {
	result := newResult("run", nil, 0, 0)
	assert.Zero(t, result.Probability)
	assert.Zero(t, result.PooledWinRate())
	assert.Zero(t, result.Sampled())
	assert.Empty(t, result.ByCategory())
	assert.Empty(t, result.MostSampled(3))
}

func TestByCategory(t *testing.T) {
	result := newResult("run", []Candidate{
		cand("AsAh", 1, 4),
		cand("KcKd", 3, 4),
		cand("7c2d", 4, 4),
		cand("8c3d", 0, 0),
	}, 12, time.Second)

	byCat := result.ByCategory()
	assert.Len(t, byCat, 2)
	assert.InDelta(t, 0.5, byCat[poker.CategoryPremium], 1e-12)
	assert.InDelta(t, 1.0, byCat[poker.CategoryTrash], 1e-12)
}

func TestMostSampled(t *testing.T) {
	result := newResult("run", []Candidate{
		cand("AsAh", 1, 2),
		cand("KcKd", 3, 9),
		cand("7c2d", 4, 5),
		cand("8c3d", 0, 0),
	}, 16, time.Second)

	top := result.MostSampled(2)
	assert.Len(t, top, 2)
	assert.Equal(t, "Kc Kd", top[0].String())
	assert.Equal(t, "7c 2d", top[1].String())
	assert.Len(t, result.MostSampled(10), 3)
}

func TestInterval95(t *testing.T) {
	result := newResult("run", []Candidate{
		cand("AsAh", 3, 4),
		cand("7c2d", 1, 2),
		cand("KsQs", 1, 4),
		cand("9d8d", 0, 0),
	}, 10, time.Second)

	low, high := result.Interval95()
	assert.InDelta(t, 0.5, result.Probability, 1e-12)
	assert.Less(t, low, result.Probability)
	assert.Greater(t, high, result.Probability)
	assert.InDelta(t, result.Probability-low, high-result.Probability, 1e-12)

	low, high = newResult("run", nil, 0, 0).Interval95()
	assert.Zero(t, low)
	assert.Zero(t, high)
}
