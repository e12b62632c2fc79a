package matching

import (
	"math"
)

// ROISentinel marks a return-on-investment estimate that could not be
// evaluated (missing inputs, zero cost, or a degenerate candidate set).
const ROISentinel = -99.9

const (
	gradRateFloor    = 0.5
	maxYears         = 8.0
	nominalYears     = 4.0
	selectivityBoost = 0.25
	fullTimeHours    = 40.0
)

// EstimateROI fills in the standardized return-on-investment score for
// each scored candidate. The raw estimate compares expected earnings
// against expected cost under the query's residency rules; raw values are
// then standardized to z-scores across the candidate set. Candidates whose
// estimate is unevaluable get the sentinel and are excluded from the
// mean/std so they cannot poison the rest of the set.
func EstimateROI(scored []Scored, homeState string, residency ResidencyMode) {
	raw := make([]float64, len(scored))
	for i := range scored {
		raw[i] = rawROI(scored[i], homeState, residency)
	}

	mean, std, n := meanStd(raw)
	for i := range scored {
		z := math.NaN()
		if n >= 2 && std > 0 {
			z = (raw[i] - mean) / std
		}
		if math.IsNaN(z) || math.IsInf(z, 0) {
			z = ROISentinel
		}
		scored[i].ROI = z
	}
}

func rawROI(s Scored, homeState string, residency ResidencyMode) float64 {
	grad := normalizeRate(s.GradRate.V())
	retention := normalizeRate(s.RetentionRate.V())
	admit := normalizeRate(s.AdmitRate.V())

	annual := annualCost(s, homeState, residency)

	// Years to completion: low graduation rates stretch the estimate, the
	// floor and cap keep it from diverging.
	years := math.Min(nominalYears/math.Max(grad, gradRateFloor), maxYears)
	expectedCost := annual * years

	// The selectivity term is a deliberate signal boost for harder-to-enter
	// institutions, not a statistical correction.
	expectedEarnings := s.MedianEarnings.V() * grad * retention * (1 + selectivityBoost*(1-admit))

	hours := s.HoursGap.V()
	if math.IsNaN(hours) {
		hours = 0
	}
	workPenalty := clip(hours/fullTimeHours, 0, 1)

	if expectedCost == 0 {
		return math.NaN()
	}
	return (expectedEarnings - expectedCost) / expectedCost * (1 - workPenalty)
}

// normalizeRate coerces a percentage-expressed rate to a 0-1 fraction.
func normalizeRate(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// annualCost selects the cost figure the residency rules imply, with net
// price as the universal fallback when the selected figure is missing.
func annualCost(s Scored, homeState string, residency ResidencyMode) float64 {
	var cost float64
	switch residency {
	case ResidencyInState:
		if s.State == homeState {
			cost = s.CostInState.V()
		} else {
			cost = s.CostOutState.V()
		}
	case ResidencyOutOfState:
		cost = s.CostOutState.V()
	default:
		cost = s.NetPrice.V()
	}
	if math.IsNaN(cost) {
		cost = s.NetPrice.V()
	}
	return cost
}
