package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// ProportionInterval returns the normal-approximation interval around
// successes/trials at the given confidence, clamped to [0, 1].
func ProportionInterval(successes, trials int, confidenceInterval float64) (lo, hi float64) {
	if trials == 0 {
		return 0, 0
	}
	p := float64(successes) / float64(trials)
	margin := ZVal(confidenceInterval) * math.Sqrt(p*(1-p)/float64(trials))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}
