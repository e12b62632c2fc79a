package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Float is a nullable numeric CSV field. Empty or malformed cells decode
// to NaN instead of failing the row: a bad numeric is a data problem to
// absorb locally, not an error to surface.
type Float float64

// NaN returns the missing-value sentinel.
func NaN() Float { return Float(math.NaN()) }

// Missing reports whether the value is absent.
func (f Float) Missing() bool { return math.IsNaN(float64(f)) }

// V returns the value as a plain float64 (NaN when missing).
func (f Float) V() float64 { return float64(f) }

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (f *Float) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		*f = NaN()
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = NaN()
		return nil
	}
	*f = Float(v)
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (f Float) MarshalCSV() (string, error) {
	if f.Missing() {
		return "", nil
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 64), nil
}

// Flag is a 0/1 CSV field used for the MSI designation columns. Anything
// that does not clearly read as true decodes to false.
type Flag bool

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (f *Flag) UnmarshalCSV(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "yes":
		*f = true
	default:
		*f = false
	}
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (f Flag) MarshalCSV() (string, error) {
	if f {
		return "1", nil
	}
	return "0", nil
}
