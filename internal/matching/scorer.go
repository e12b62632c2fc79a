package matching

import (
	"math"
	"sort"

	"github.com/collegematch/college-match-finder/internal/catalog"
)

// DefaultSteepness is the logistic curvature for the distance-to-similarity
// transform; values between 6 and 10 behave well.
const DefaultSteepness = 6

// Options tunes the aggregate scorer.
type Options struct {
	// Steepness is the logistic curvature k. Zero means DefaultSteepness.
	Steepness float64
	// ExcludeZeroWeights drops zero-weighted attributes from the weighted
	// average's denominator. The default (false) matches the reference
	// behavior: a zero weight contributes nothing to the numerator but its
	// mass still sits in the denominator.
	ExcludeZeroWeights bool
}

func (o Options) steepness() float64 {
	if o.Steepness <= 0 {
		return DefaultSteepness
	}
	return o.Steepness
}

// Scored is a candidate annotated with its raw weighted distance, its
// bounded similarity, and (after ROI estimation) its standardized ROI.
type Scored struct {
	catalog.Candidate
	Distance   float64
	Similarity float64
	ROI        float64
}

// Score computes each candidate's weighted average attribute distance,
// transforms it to a similarity in (0,1), and returns the set ranked by
// similarity descending with ties (and NaN scores) kept in input order.
//
// The transform is an adaptive logistic centered on the candidate set's
// median raw distance: sim = 1 / (1 + exp(k*(d - median))). It is
// monotonically decreasing in distance, so ranking by similarity is
// ranking by distance. All weights zero yields NaN for every candidate,
// never a panic.
func Score(cands []catalog.Candidate, prefs Preferences, w Weights, opts Options) []Scored {
	if len(cands) == 0 {
		return []Scored{}
	}

	enrollBounds := computeBounds(cands, func(c catalog.Candidate) float64 { return c.Enrollment.V() })
	admitBounds := computeBounds(cands, func(c catalog.Candidate) float64 { return c.AdmitRate.V() })
	ratioBounds := computeBounds(cands, func(c catalog.Candidate) float64 { return c.StudentFacultyRatio.V() })

	scored := make([]Scored, len(cands))
	distances := make([]float64, len(cands))
	for i, c := range cands {
		acc := accumulator{excludeZero: opts.ExcludeZeroWeights}
		acc.add(sectorDistance(c.Sector, prefs.Sector), w.Sector)
		acc.add(localityDistance(c.Locality, prefs.Locality), w.Locality)
		acc.add(msiDistance(c.MSI, prefs.PreferredMSI), w.MSI)
		acc.add(numericDistance(c.Enrollment.V(), prefs.Enrollment, enrollBounds), w.Enrollment)
		acc.add(numericDistance(c.AdmitRate.V(), prefs.AdmitRate, admitBounds), w.AdmitRate)
		acc.add(numericDistance(c.StudentFacultyRatio.V(), prefs.StudentFacultyRatio, ratioBounds), w.StudentFacultyRatio)

		d := acc.distance()
		distances[i] = d
		scored[i] = Scored{Candidate: c, Distance: d, ROI: math.NaN()}
	}

	// Center point for the logistic; computed once over the whole set
	// before any per-candidate transform.
	k := opts.steepness()
	m := median(distances)
	for i := range scored {
		scored[i].Similarity = 1 / (1 + math.Exp(k*(scored[i].Distance-m)))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i].Similarity, scored[j].Similarity
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})
	return scored
}

// accumulator folds per-attribute distances into the weighted average.
type accumulator struct {
	weighted    float64
	total       float64
	excludeZero bool
}

func (a *accumulator) add(distance, weight float64) {
	if weight == 0 && a.excludeZero {
		return
	}
	a.weighted += distance * weight
	a.total += weight
}

// distance returns the weighted average, or NaN when no weight mass
// accumulated (the defined all-weights-zero result).
func (a *accumulator) distance() float64 {
	if a.total <= 0 {
		return math.NaN()
	}
	return a.weighted / a.total
}
