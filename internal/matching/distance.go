package matching

import (
	"math"

	"github.com/collegematch/college-match-finder/internal/catalog"
)

// boundsEpsilon keeps the min-max denominator nonzero when a feature has a
// degenerate range in the current candidate set.
const boundsEpsilon = 1e-9

// bounds is the observed [min,max] of one numeric feature across the
// candidate set. Recomputed per query, never a fixed constant.
type bounds struct {
	min, max float64
}

// computeBounds scans the candidate set once, skipping missing values. An
// all-missing feature yields NaN bounds, which pushes every distance on
// that feature to the missing-data penalty.
func computeBounds(cands []catalog.Candidate, value func(catalog.Candidate) float64) bounds {
	b := bounds{min: math.NaN(), max: math.NaN()}
	for _, c := range cands {
		v := value(c)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(b.min) || v < b.min {
			b.min = v
		}
		if math.IsNaN(b.max) || v > b.max {
			b.max = v
		}
	}
	return b
}

// sectorDistance is exact-match categorical: 0 on equality, 1 otherwise.
// An unknown sector never equals a stated target.
func sectorDistance(value, target catalog.Sector) float64 {
	if value == target {
		return 0
	}
	return 1
}

// localityDistance is similarity-matrix categorical: 1 - closeness. A
// missing setting on either side takes the maximum penalty.
func localityDistance(value, target catalog.Locality) float64 {
	if value == "" || target == "" {
		return 1
	}
	return 1 - Closeness(target, value)
}

// msiDistance is the three-tier multi-label distance:
//
//	no preference: 0 for no designations, 1 for any designation
//	preference:    0 carries it, 1 carries none, 2 carries others only
//
// The no-preference penalty for designated institutions is deliberate and
// asymmetric. A preference that names no known category is a degraded
// configuration: the attribute goes neutral rather than failing the query.
func msiDistance(flags catalog.MSIFlags, preferred string) float64 {
	if preferred == "" || preferred == "none" {
		if flags.Any() {
			return 1
		}
		return 0
	}
	cat, ok := catalog.ParseMSICategory(preferred)
	if !ok {
		return 0
	}
	switch {
	case flags.Has(cat):
		return 0
	case !flags.Any():
		return 1
	default:
		return 2
	}
}

// numericDistance is min-max normalized absolute distance over the
// candidate set's own range. A missing value, missing target, or
// all-missing feature scores the maximum penalty.
func numericDistance(value, target float64, b bounds) float64 {
	if math.IsNaN(value) || math.IsNaN(target) || math.IsNaN(b.min) {
		return 1
	}
	// A target outside the observed range could otherwise push the ratio
	// past 1; attribute distances are bounded.
	return clip(math.Abs(value-target)/(b.max-b.min+boundsEpsilon), 0, 1)
}
