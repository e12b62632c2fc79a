package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat_UnmarshalCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		missing bool
		value   float64
	}{
		{
			name:    "parses plain number",
			input:   "42.5",
			missing: false,
			value:   42.5,
		},
		{
			name:    "strips thousands separators",
			input:   "12,345",
			missing: false,
			value:   12345,
		},
		{
			name:    "trims surrounding whitespace",
			input:   "  7 ",
			missing: false,
			value:   7,
		},
		{
			name:    "empty cell is missing",
			input:   "",
			missing: true,
		},
		{
			name:    "malformed cell is missing not an error",
			input:   "N/A",
			missing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Float
			err := f.UnmarshalCSV(tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.missing, f.Missing())
			if !tt.missing {
				assert.Equal(t, tt.value, f.V())
			}
		})
	}
}

func TestFloat_MarshalCSV(t *testing.T) {
	s, err := Float(12.5).MarshalCSV()
	assert.NoError(t, err)
	assert.Equal(t, "12.5", s)

	s, err = NaN().MarshalCSV()
	assert.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestFlag_UnmarshalCSV(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1", true},
		{"1.0", true},
		{"true", true},
		{"YES", true},
		{"0", false},
		{"", false},
		{"0.0", false},
		{"no", false},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			var f Flag
			err := f.UnmarshalCSV(tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, bool(f))
		})
	}
}
