package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/collegematch/college-match-finder/internal/catalog"
)

func validQuery() Query {
	return Query{
		HomeState: "CA",
		Residency: ResidencyAny,
		Weights:   Weights{Sector: 1, Locality: 1, MSI: 1, Enrollment: 1, AdmitRate: 1, StudentFacultyRatio: 1},
		Limit:     10,
	}
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Query)
		wantErr bool
	}{
		{
			name:    "valid query passes",
			mutate:  func(q *Query) {},
			wantErr: false,
		},
		{
			name:    "missing home state",
			mutate:  func(q *Query) { q.HomeState = "" },
			wantErr: true,
		},
		{
			name:    "unknown residency mode",
			mutate:  func(q *Query) { q.Residency = "commuter" },
			wantErr: true,
		},
		{
			name:    "negative weight",
			mutate:  func(q *Query) { q.Weights.Sector = -1 },
			wantErr: true,
		},
		{
			name:    "NaN weight",
			mutate:  func(q *Query) { q.Weights.MSI = math.NaN() },
			wantErr: true,
		},
		{
			name: "negative income",
			mutate: func(q *Query) {
				income := -5.0
				q.Income = &income
			},
			wantErr: true,
		},
		{
			name:    "zero limit",
			mutate:  func(q *Query) { q.Limit = 0 },
			wantErr: true,
		},
		{
			name:    "limit above ceiling",
			mutate:  func(q *Query) { q.Limit = 500 },
			wantErr: true,
		},
		{
			name: "unknown min credential",
			mutate: func(q *Query) {
				c := catalog.CredentialUnknown
				q.MinCredential = &c
			},
			wantErr: true,
		},
		{
			name:    "all-zero weights are structurally valid",
			mutate:  func(q *Query) { q.Weights = Weights{} },
			wantErr: false,
		},
		{
			name: "zero income is valid",
			mutate: func(q *Query) {
				income := 0.0
				q.Income = &income
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuery()
			tt.mutate(&q)

			err := q.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeights_SumAndAllZero(t *testing.T) {
	assert.True(t, Weights{}.AllZero())
	assert.False(t, Weights{MSI: 0.5}.AllZero())
	assert.Equal(t, 6.0, Weights{Sector: 1, Locality: 1, MSI: 1, Enrollment: 1, AdmitRate: 1, StudentFacultyRatio: 1}.Sum())
}
