package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegematch/college-match-finder/internal/catalog"
)

func testCatalog() ([]catalog.Institution, []catalog.Outcome) {
	insts := []catalog.Institution{
		{
			UnitID: "1", State: "CA", City: "Los Angeles",
			Sector: catalog.SectorPublic, Locality: catalog.LocalityCity,
			Credential: catalog.CredentialDoctoral,
			MSI:        catalog.MSIFlags{HSI: true},
			NetPrice:   catalog.Float(12000),
			CostInState: catalog.Float(9000), CostOutState: catalog.Float(28000),
		},
		{
			UnitID: "2", State: "CA", City: "Chico",
			Sector: catalog.SectorPublic, Locality: catalog.LocalityTown,
			Credential: catalog.CredentialBachelor,
			NetPrice:   catalog.Float(10000),
			CostInState: catalog.Float(8000), CostOutState: catalog.Float(20000),
		},
		{
			UnitID: "3", State: "TX", City: "Austin",
			Sector: catalog.SectorPrivate, Locality: catalog.LocalityCity,
			Credential: catalog.CredentialMaster,
			NetPrice:   catalog.Float(30000),
			CostInState: catalog.Float(30000), CostOutState: catalog.Float(30000),
		},
	}
	outs := []catalog.Outcome{
		{
			UnitID: "1", Name: "Cal Public University",
			Enrollment: catalog.Float(30000), AdmitRate: catalog.Float(40),
			StudentFacultyRatio: catalog.Float(18),
			MedianEarnings:      catalog.Float(65000),
			GradRate:            catalog.Float(70), RetentionRate: catalog.Float(88),
		},
		{
			UnitID: "2", Name: "North Valley State",
			Enrollment: catalog.Float(15000), AdmitRate: catalog.Float(75),
			StudentFacultyRatio: catalog.Float(22),
			MedianEarnings:      catalog.Float(52000),
			GradRate:            catalog.Float(55), RetentionRate: catalog.Float(80),
		},
		{
			UnitID: "3", Name: "Texas Private College",
			Enrollment: catalog.Float(8000), AdmitRate: catalog.Float(20),
			StudentFacultyRatio: catalog.Float(10),
			MedianEarnings:      catalog.Float(70000),
			GradRate:            catalog.Float(85), RetentionRate: catalog.Float(92),
		},
	}
	return insts, outs
}

func equalWeights() Weights {
	return Weights{Sector: 1, Locality: 1, MSI: 1, Enrollment: 1, AdmitRate: 1, StudentFacultyRatio: 1}
}

func TestEngine_Match(t *testing.T) {
	insts, outs := testCatalog()
	engine := NewEngine(insts, outs, Options{})

	q := Query{
		HomeState: "CA",
		Residency: ResidencyAny,
		Prefs: Preferences{
			Sector:              catalog.SectorPublic,
			Locality:            catalog.LocalityCity,
			Enrollment:          25000,
			AdmitRate:           50,
			StudentFacultyRatio: 18,
		},
		Weights: equalWeights(),
		Limit:   10,
	}

	results, err := engine.Match(q)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "1", results[0].UnitID, "the public city campus fits the targets best")
	assert.Equal(t, "HSI", results[0].MSIType)
	for _, r := range results {
		assert.NotEqual(t, ROISentinel, r.ROI)
		assert.NotEmpty(t, r.Similarity)
	}
}

func TestEngine_Match_ResidencyNarrowsSet(t *testing.T) {
	insts, outs := testCatalog()
	engine := NewEngine(insts, outs, Options{})

	q := Query{
		HomeState: "CA",
		Residency: ResidencyInState,
		Weights:   equalWeights(),
		Limit:     10,
	}

	results, err := engine.Match(q)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "CA", r.State)
	}
}

func TestEngine_Match_EmptyResultIsNotAnError(t *testing.T) {
	insts, outs := testCatalog()
	engine := NewEngine(insts, outs, Options{})

	q := Query{
		HomeState: "WY",
		Residency: ResidencyInState,
		Weights:   equalWeights(),
		Limit:     10,
	}

	results, err := engine.Match(q)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestEngine_Match_InvalidQuery(t *testing.T) {
	insts, outs := testCatalog()
	engine := NewEngine(insts, outs, Options{})

	_, err := engine.Match(Query{Residency: ResidencyAny, Weights: equalWeights(), Limit: 10})
	assert.Error(t, err)
}

func TestEngine_Match_LimitTruncates(t *testing.T) {
	insts, outs := testCatalog()
	engine := NewEngine(insts, outs, Options{})

	q := Query{
		HomeState: "CA",
		Residency: ResidencyAny,
		Weights:   equalWeights(),
		Limit:     1,
	}

	results, err := engine.Match(q)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestEngine_Match_MinCredential(t *testing.T) {
	insts, outs := testCatalog()
	engine := NewEngine(insts, outs, Options{})

	min := catalog.CredentialMaster
	q := Query{
		HomeState:     "CA",
		Residency:     ResidencyAny,
		MinCredential: &min,
		Weights:       equalWeights(),
		Limit:         10,
	}

	results, err := engine.Match(q)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, "2", r.UnitID, "bachelor-granting campus filtered out")
	}
}

func TestEngine_Match_AllZeroWeights(t *testing.T) {
	insts, outs := testCatalog()
	engine := NewEngine(insts, outs, Options{})

	q := Query{
		HomeState: "CA",
		Residency: ResidencyAny,
		Weights:   Weights{},
		Limit:     10,
	}

	results, err := engine.Match(q)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, "n/a", r.Similarity)
	}
}

func TestEngine_Counts(t *testing.T) {
	insts, outs := testCatalog()
	engine := NewEngine(insts, outs, Options{})

	assert.Equal(t, 3, engine.InstitutionCount())
	assert.Equal(t, 3, engine.OutcomeCount())
}
