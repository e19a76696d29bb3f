package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal returns the two-tailed Z-value for a confidence level given in
// percent, e.g. 95.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidenceInterval/100) / 2)
}

// Interval returns the bounds of the confidence interval around the mean
// of s at the given level in percent.
func (s *Statistic) Interval(confidence float64) (float64, float64) {
	half := ZVal(confidence) * s.StandardError()
	return s.Mean() - half, s.Mean() + half
}
