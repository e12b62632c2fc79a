package catalog

// Sector is the institutional control category.
type Sector string

const (
	SectorPublic    Sector = "Public"
	SectorPrivate   Sector = "Private"
	SectorForProfit Sector = "For-Profit"
)

// Locality is the campus setting category. The empty string means unknown.
type Locality string

const (
	LocalityCity   Locality = "City"
	LocalitySuburb Locality = "Suburb"
	LocalityTown   Locality = "Town"
	LocalityRural  Locality = "Rural"
)

// localityByDegree maps the numeric degree-of-localization code from the
// affordability file onto the four setting categories.
var localityByDegree = map[int]Locality{
	1: LocalityCity,
	2: LocalitySuburb,
	3: LocalityTown,
	4: LocalityRural,
}

// CredentialLevel is the ordinal rank of the highest credential an
// institution offers. CredentialUnknown sorts below every real level and
// never satisfies a minimum-credential requirement.
type CredentialLevel int

const (
	CredentialUnknown   CredentialLevel = -1
	CredentialNonDegree CredentialLevel = 0
	CredentialAssociate CredentialLevel = 1
	CredentialBachelor  CredentialLevel = 2
	CredentialMaster    CredentialLevel = 3
	CredentialDoctoral  CredentialLevel = 4
)

// String returns the canonical lowercase name for the level.
func (c CredentialLevel) String() string {
	switch c {
	case CredentialNonDegree:
		return "non-degree"
	case CredentialAssociate:
		return "associate"
	case CredentialBachelor:
		return "bachelor"
	case CredentialMaster:
		return "master"
	case CredentialDoctoral:
		return "doctoral"
	default:
		return "unknown"
	}
}

// MSICategory identifies one of the seven federal minority-serving
// institution designations.
type MSICategory int

const (
	MSIHBCU MSICategory = iota
	MSIAANAPII
	MSINANTI
	MSIHSI
	MSITribal
	MSIPBI
	MSIANNHI
)

// MSICategories lists every designation in display-label precedence order.
// The order is load-bearing: the presentation layer picks the first true
// flag in this order when an institution carries several.
var MSICategories = []MSICategory{
	MSIHBCU, MSIAANAPII, MSINANTI, MSIHSI, MSITribal, MSIPBI, MSIANNHI,
}

var msiNames = map[MSICategory]string{
	MSIHBCU:    "hbcu",
	MSIAANAPII: "aanapii",
	MSINANTI:   "nanti",
	MSIHSI:     "hsi",
	MSITribal:  "tribal",
	MSIPBI:     "pbi",
	MSIANNHI:   "annhi",
}

func (m MSICategory) String() string { return msiNames[m] }

// ParseMSICategory maps a lowercase designation name to its category.
func ParseMSICategory(s string) (MSICategory, bool) {
	for cat, name := range msiNames {
		if name == s {
			return cat, true
		}
	}
	return 0, false
}

// MSIFlags holds the seven designation flags. They are independent
// booleans, not an enum: an institution may carry zero, one, or several.
type MSIFlags struct {
	HBCU    bool `json:"hbcu"`
	AANAPII bool `json:"aanapii"`
	NANTI   bool `json:"nanti"`
	HSI     bool `json:"hsi"`
	Tribal  bool `json:"tribal"`
	PBI     bool `json:"pbi"`
	ANNHI   bool `json:"annhi"`
}

// Has reports whether the given designation flag is set.
func (f MSIFlags) Has(cat MSICategory) bool {
	switch cat {
	case MSIHBCU:
		return f.HBCU
	case MSIAANAPII:
		return f.AANAPII
	case MSINANTI:
		return f.NANTI
	case MSIHSI:
		return f.HSI
	case MSITribal:
		return f.Tribal
	case MSIPBI:
		return f.PBI
	case MSIANNHI:
		return f.ANNHI
	default:
		return false
	}
}

// Any reports whether at least one designation flag is set.
func (f MSIFlags) Any() bool {
	for _, cat := range MSICategories {
		if f.Has(cat) {
			return true
		}
	}
	return false
}

// IncomeBracket is a family-earnings eligibility interval. The five
// brackets tile [0, 150000] end to end; containment is inclusive of both
// bounds, so an income sitting exactly on a shared bound is eligible under
// either adjacent bracket.
type IncomeBracket struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether the income falls inside the bracket.
func (b IncomeBracket) Contains(income float64) bool {
	return b.Low <= income && income <= b.High
}

// incomeBrackets maps the raw earnings-ceiling value in the affordability
// file to its bracket interval.
var incomeBrackets = map[float64]IncomeBracket{
	30000:  {Low: 0, High: 30000},
	48000:  {Low: 30000, High: 48000},
	75000:  {Low: 48000, High: 75000},
	110000: {Low: 75000, High: 110000},
	150000: {Low: 110000, High: 150000},
}

// BracketForCeiling resolves a raw earnings-ceiling value to its bracket.
// Unknown ceilings (including NaN) yield nil, meaning the record applies
// to all incomes.
func BracketForCeiling(ceiling Float) *IncomeBracket {
	if ceiling.Missing() {
		return nil
	}
	if b, ok := incomeBrackets[float64(ceiling)]; ok {
		return &b
	}
	return nil
}

// Institution is one affordability-gap record: identity, location,
// categorical attributes, eligibility bracket, and cost figures. Numeric
// fields use Float so that missing values stay NaN rather than zero.
type Institution struct {
	UnitID        string
	State         string
	City          string
	Sector        Sector
	Locality      Locality
	MSI           MSIFlags
	Credential    CredentialLevel
	Bracket       *IncomeBracket
	CostInState   Float
	CostOutState  Float
	NetPrice      Float
	HoursGap      Float
	HoursGapCare  Float
	AdmissionsURL string
}

// Outcome is one academic-outcome record keyed by the same unit ID.
type Outcome struct {
	UnitID              string
	Name                string
	Enrollment          Float
	AdmitRate           Float
	StudentFacultyRatio Float
	MedianEarnings      Float
	GradRate            Float
	RetentionRate       Float
}

// Candidate is an institution joined with its outcome record. The join is
// inner: institutions without outcomes never become candidates.
type Candidate struct {
	Institution
	Outcome
}

// ID returns the shared identity key of the joined pair.
func (c Candidate) ID() string { return c.Institution.UnitID }
