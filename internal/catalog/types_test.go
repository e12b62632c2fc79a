package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeBracket_Contains(t *testing.T) {
	b := IncomeBracket{Low: 30000, High: 48000}

	tests := []struct {
		name     string
		income   float64
		expected bool
	}{
		{"below low bound", 29999, false},
		{"exactly low bound", 30000, true},
		{"inside bracket", 40000, true},
		{"exactly high bound", 48000, true},
		{"above high bound", 48001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.Contains(tt.income))
		})
	}
}

func TestBracketForCeiling(t *testing.T) {
	tests := []struct {
		name     string
		ceiling  Float
		expected *IncomeBracket
	}{
		{
			name:     "lowest bracket",
			ceiling:  Float(30000),
			expected: &IncomeBracket{Low: 0, High: 30000},
		},
		{
			name:     "middle bracket",
			ceiling:  Float(75000),
			expected: &IncomeBracket{Low: 48000, High: 75000},
		},
		{
			name:     "highest bracket",
			ceiling:  Float(150000),
			expected: &IncomeBracket{Low: 110000, High: 150000},
		},
		{
			name:     "unknown ceiling applies to all incomes",
			ceiling:  Float(99999),
			expected: nil,
		},
		{
			name:     "missing ceiling applies to all incomes",
			ceiling:  NaN(),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BracketForCeiling(tt.ceiling)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestCredentialLevel_Ordering(t *testing.T) {
	assert.True(t, CredentialUnknown < CredentialNonDegree)
	assert.True(t, CredentialNonDegree < CredentialAssociate)
	assert.True(t, CredentialAssociate < CredentialBachelor)
	assert.True(t, CredentialBachelor < CredentialMaster)
	assert.True(t, CredentialMaster < CredentialDoctoral)
}

func TestCredentialLevel_String(t *testing.T) {
	assert.Equal(t, "bachelor", CredentialBachelor.String())
	assert.Equal(t, "non-degree", CredentialNonDegree.String())
	assert.Equal(t, "unknown", CredentialUnknown.String())
}

func TestParseMSICategory(t *testing.T) {
	for _, cat := range MSICategories {
		parsed, ok := ParseMSICategory(cat.String())
		assert.True(t, ok)
		assert.Equal(t, cat, parsed)
	}

	_, ok := ParseMSICategory("msi")
	assert.False(t, ok)
}

func TestMSIFlags_HasAndAny(t *testing.T) {
	none := MSIFlags{}
	assert.False(t, none.Any())

	several := MSIFlags{HSI: true, AANAPII: true}
	assert.True(t, several.Any())
	assert.True(t, several.Has(MSIHSI))
	assert.True(t, several.Has(MSIAANAPII))
	assert.False(t, several.Has(MSIHBCU))
}
