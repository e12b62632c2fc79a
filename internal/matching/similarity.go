package matching

import "github.com/collegematch/college-match-finder/internal/catalog"

// localityCloseness is the fixed symmetric closeness table over campus
// settings. Self-closeness is 1; adjacent settings score higher than
// distant ones.
var localityCloseness = map[catalog.Locality]map[catalog.Locality]float64{
	catalog.LocalityCity: {
		catalog.LocalityCity:   1,
		catalog.LocalitySuburb: 0.7,
		catalog.LocalityTown:   0.3,
		catalog.LocalityRural:  0.1,
	},
	catalog.LocalitySuburb: {
		catalog.LocalityCity:   0.7,
		catalog.LocalitySuburb: 1,
		catalog.LocalityTown:   0.5,
		catalog.LocalityRural:  0.3,
	},
	catalog.LocalityTown: {
		catalog.LocalityCity:   0.3,
		catalog.LocalitySuburb: 0.5,
		catalog.LocalityTown:   1,
		catalog.LocalityRural:  0.6,
	},
	catalog.LocalityRural: {
		catalog.LocalityCity:   0.1,
		catalog.LocalitySuburb: 0.3,
		catalog.LocalityTown:   0.6,
		catalog.LocalityRural:  1,
	},
}

// Closeness looks up how close a candidate's campus setting is to the
// target setting, in [0,1]. Unknown pairs score 0.
func Closeness(target, value catalog.Locality) float64 {
	return localityCloseness[target][value]
}
