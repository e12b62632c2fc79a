package matching

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/collegematch/college-match-finder/internal/catalog"
)

// ResidencyMode selects how the home state constrains the candidate set.
type ResidencyMode string

const (
	ResidencyInState    ResidencyMode = "in_state"
	ResidencyOutOfState ResidencyMode = "out_of_state"
	ResidencyAny        ResidencyMode = "any"
)

// Preferences holds the user's target value for each scored attribute.
// Numeric targets use NaN for "no target", which maps to maximum distance
// on that attribute for every candidate.
type Preferences struct {
	Sector   catalog.Sector
	Locality catalog.Locality
	// PreferredMSI is the lowercase designation name; "" or "none" means
	// no preference. An unrecognized name neutralizes the attribute
	// instead of failing the query.
	PreferredMSI        string
	Enrollment          float64
	AdmitRate           float64
	StudentFacultyRatio float64
}

// Weights is one non-negative importance weight per scored attribute. A
// zero weight removes the attribute's influence on the numerator; whether
// it also leaves the denominator is an Options choice.
type Weights struct {
	Sector              float64 `validate:"gte=0"`
	Locality            float64 `validate:"gte=0"`
	MSI                 float64 `validate:"gte=0"`
	Enrollment          float64 `validate:"gte=0"`
	AdmitRate           float64 `validate:"gte=0"`
	StudentFacultyRatio float64 `validate:"gte=0"`
}

// Sum returns the total weight mass.
func (w Weights) Sum() float64 {
	return w.Sector + w.Locality + w.MSI + w.Enrollment + w.AdmitRate + w.StudentFacultyRatio
}

// AllZero reports whether every weight is zero, in which case the
// aggregate score is defined to be NaN for every candidate.
func (w Weights) AllZero() bool { return w.Sum() == 0 }

// Query is one complete match request against the catalog.
type Query struct {
	HomeState     string        `validate:"required"`
	Residency     ResidencyMode `validate:"oneof=in_state out_of_state any"`
	Income        *float64      `validate:"omitempty,gte=0"`
	MinCredential *catalog.CredentialLevel
	Prefs         Preferences
	Weights       Weights
	Limit         int `validate:"gte=1,lte=200"`
}

var validate = validator.New()

// Validate checks structural validity of the query. Degenerate but
// well-defined inputs (all-zero weights, targets that match nothing) pass:
// they produce defined degraded output rather than errors.
func (q *Query) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	if w := q.Weights; math.IsNaN(w.Sum()) {
		return fmt.Errorf("invalid weights: NaN weight")
	}
	if q.MinCredential != nil && *q.MinCredential < catalog.CredentialNonDegree {
		return fmt.Errorf("invalid query: minimum credential must be a real level")
	}
	return nil
}
