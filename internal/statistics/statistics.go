// Package statistics summarises the spread of per-candidate win rates.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// Statistics accumulates win rates, one value per sampled candidate
type Statistics struct {
	N      int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Kept for median/percentile calculation
	Trials int       // Trials behind all values combined
}

// Add incorporates one candidate's win rate observed over trials simulations
func (s *Statistics) Add(winRate float64, trials int) {
	s.N++
	s.Sum += winRate
	s.SumSq += winRate * winRate
	s.Values = append(s.Values, winRate)
	s.Trials += trials
}

// Mean returns the unweighted mean of all values
func (s *Statistics) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance of all values
func (s *Statistics) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.N)*mean*mean) / float64(s.N-1)
	return max(v, 0)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean,
// clamped to [0, 1]
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return max(mean-margin, 0), min(mean+margin, 1)
}

// Median returns the median value
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbours
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the accumulated data is consistent
func (s *Statistics) Validate() error {
	if len(s.Values) != s.N {
		return fmt.Errorf("values length (%d) does not match count (%d)", len(s.Values), s.N)
	}
	if s.Trials < s.N {
		return fmt.Errorf("trials (%d) fewer than sampled candidates (%d)", s.Trials, s.N)
	}
	for _, v := range s.Values {
		if v < 0 || v > 1 {
			return fmt.Errorf("win rate %v outside [0, 1]", v)
		}
	}
	return nil
}

// String renders the mean with its 95% margin, e.g. "0.612 ± 0.031 (n=300)"
func (s *Statistics) String() string {
	return fmt.Sprintf("%.3f ± %.3f (n=%d)", s.Mean(), 1.96*s.StdError(), s.N)
}
