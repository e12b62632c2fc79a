package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

func init() {
	// A source file that lacks one of the schema columns is unusable;
	// surface it instead of silently decoding zero values.
	gocsv.FailIfUnmatchedStructTags = true
	// Column names contain literal commas ("First-Time, Full-Time Retention
	// Rate"), so the default comma tag separator would split them.
	gocsv.TagSeparator = "|"
}

// affordabilityRow mirrors the raw column layout of the affordability-gap
// file. Columns are renamed and derived into Institution by the loader.
type affordabilityRow struct {
	UnitID          string `csv:"Unit ID"`
	EarningsCeiling Float  `csv:"Student Family Earnings Ceiling"`
	State           string `csv:"State Abbreviation"`
	City            string `csv:"City"`
	Sector          string `csv:"Sector Name"`
	LocalityDegree  Float  `csv:"Degree of Localization Name"`
	CostInState     Float  `csv:"Cost of Attendance: In State"`
	CostOutState    Float  `csv:"Cost of Attendance: Out of State"`
	NetPrice        Float  `csv:"Net Price"`
	HoursGap        Float  `csv:"Weekly Hours to Close Gap"`
	HoursGapCare    Float  `csv:"Weekly Hours to Close Gap: Center-Based Care"`
	AdmissionsURL   string `csv:"Admissions Website"`
	HBCU            Flag   `csv:"HBCU"`
	PBI             Flag   `csv:"PBI"`
	ANNHI           Flag   `csv:"ANNHI"`
	Tribal          Flag   `csv:"TRIBAL"`
	AANAPII         Flag   `csv:"AANAPII"`
	HSI             Flag   `csv:"HSI"`
	NANTI           Flag   `csv:"NANTI"`
	HighestDegree   string `csv:"Highest Degree Offered Name"`
}

// outcomeRow mirrors the raw column layout of the college-results file.
type outcomeRow struct {
	UnitID              string `csv:"UNIQUE_IDENTIFICATION_NUMBER_OF_THE_INSTITUTION"`
	Name                string `csv:"Institution Name"`
	Enrollment          Float  `csv:"Total Enrollment"`
	AdmitRate           Float  `csv:"Total Percent of Applicants Admitted"`
	StudentFacultyRatio Float  `csv:"Student-to-Faculty Ratio"`
	MedianEarnings      Float  `csv:"Median Earnings of Students Working and Not Enrolled 10 Years After Entry"`
	GradRate            Float  `csv:"Bachelor's Degree Graduation Rate Within 4 Years - Total"`
	RetentionRate       Float  `csv:"First-Time, Full-Time Retention Rate"`
}

// NormalizeDegree maps a free-text highest-degree description onto the
// credential ordinal using keyword rules. Anything unrecognized, including
// "Not available", is CredentialUnknown.
func NormalizeDegree(s string) CredentialLevel {
	x := strings.ToLower(s)
	switch {
	case strings.Contains(x, "associate"):
		return CredentialAssociate
	case strings.Contains(x, "bachelor"):
		return CredentialBachelor
	case strings.Contains(x, "master"):
		return CredentialMaster
	case strings.Contains(x, "doctor"), strings.Contains(x, "phd"):
		return CredentialDoctoral
	case strings.Contains(x, "non-degree"):
		return CredentialNonDegree
	default:
		return CredentialUnknown
	}
}

// localityFromDegree resolves the numeric localization-degree code; out of
// range or missing codes yield the unknown setting.
func localityFromDegree(code Float) Locality {
	if code.Missing() {
		return ""
	}
	return localityByDegree[int(code)]
}

// LoadAffordability reads the affordability-gap file into institution
// records. Malformed numeric cells become missing values; a missing schema
// column fails the load.
func LoadAffordability(path string) ([]Institution, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("affordability data: %w", err)
	}
	defer f.Close()

	var rows []affordabilityRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("affordability data %s: %w", path, err)
	}

	insts := make([]Institution, 0, len(rows))
	for _, r := range rows {
		insts = append(insts, Institution{
			UnitID:       strings.TrimSpace(r.UnitID),
			State:        strings.TrimSpace(r.State),
			City:         strings.TrimSpace(r.City),
			Sector:       Sector(strings.TrimSpace(r.Sector)),
			Locality:     localityFromDegree(r.LocalityDegree),
			Credential:   NormalizeDegree(r.HighestDegree),
			Bracket:      BracketForCeiling(r.EarningsCeiling),
			CostInState:  r.CostInState,
			CostOutState: r.CostOutState,
			NetPrice:     r.NetPrice,
			HoursGap:     r.HoursGap,
			HoursGapCare: r.HoursGapCare,
			MSI: MSIFlags{
				HBCU:    bool(r.HBCU),
				AANAPII: bool(r.AANAPII),
				NANTI:   bool(r.NANTI),
				HSI:     bool(r.HSI),
				Tribal:  bool(r.Tribal),
				PBI:     bool(r.PBI),
				ANNHI:   bool(r.ANNHI),
			},
			AdmissionsURL: strings.TrimSpace(r.AdmissionsURL),
		})
	}

	slog.Info("Loaded affordability data", "path", path, "records", len(insts))
	return insts, nil
}

// LoadOutcomes reads the college-results file into outcome records.
func LoadOutcomes(path string) ([]Outcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("outcome data: %w", err)
	}
	defer f.Close()

	var rows []outcomeRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("outcome data %s: %w", path, err)
	}

	outs := make([]Outcome, 0, len(rows))
	for _, r := range rows {
		outs = append(outs, Outcome{
			UnitID:              strings.TrimSpace(r.UnitID),
			Name:                strings.TrimSpace(r.Name),
			Enrollment:          r.Enrollment,
			AdmitRate:           r.AdmitRate,
			StudentFacultyRatio: r.StudentFacultyRatio,
			MedianEarnings:      r.MedianEarnings,
			GradRate:            r.GradRate,
			RetentionRate:       r.RetentionRate,
		})
	}

	slog.Info("Loaded outcome data", "path", path, "records", len(outs))
	return outs, nil
}
