package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/collegematch/college-match-finder/internal/catalog"
)

// Result is one row of the final projection: display fields only, no
// scoring inputs. Missing numerics become nulls rather than NaN, which
// JSON cannot carry.
type Result struct {
	UnitID        string   `json:"unitid"`
	Name          string   `json:"institution_name"`
	State         string   `json:"state"`
	City          string   `json:"city"`
	MSIType       string   `json:"msi_type"`
	Similarity    string   `json:"similarity_score"`
	ROI           float64  `json:"roi"`
	CostInState   *float64 `json:"coa_in_state"`
	CostOutState  *float64 `json:"coa_out_state"`
	Enrollment    *float64 `json:"total_enrollment"`
	AdmitRate     *float64 `json:"admit_rate"`
	AdmissionsURL string   `json:"admissions_url"`
}

// Present projects the ranked set onto display rows, truncated to n. The
// input is assumed already ranked; this stage adds no scoring logic.
func Present(scored []Scored, n int) []Result {
	if n > len(scored) {
		n = len(scored)
	}
	results := make([]Result, 0, n)
	for _, s := range scored[:n] {
		results = append(results, Result{
			UnitID:        s.Institution.UnitID,
			Name:          s.Name,
			State:         s.State,
			City:          s.City,
			MSIType:       msiLabel(s.MSI),
			Similarity:    formatSimilarity(s.Similarity),
			ROI:           s.ROI,
			CostInState:   nullable(s.CostInState),
			CostOutState:  nullable(s.CostOutState),
			Enrollment:    nullable(s.Enrollment),
			AdmitRate:     nullable(s.AdmitRate),
			AdmissionsURL: s.AdmissionsURL,
		})
	}
	return results
}

// msiLabel derives the single display label for an institution's MSI
// status: the first set flag in the fixed category order, else "None".
func msiLabel(flags catalog.MSIFlags) string {
	for _, cat := range catalog.MSICategories {
		if flags.Has(cat) {
			return strings.ToUpper(cat.String())
		}
	}
	return "None"
}

// formatSimilarity renders a similarity as a rounded percentage string.
// An undefined score (all weights zero) renders as "n/a".
func formatSimilarity(sim float64) string {
	if math.IsNaN(sim) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", sim*100)
}

func nullable(f catalog.Float) *float64 {
	if f.Missing() {
		return nil
	}
	v := f.V()
	return &v
}
