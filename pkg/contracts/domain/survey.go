package domain

// Column names expected in every survey input file. The header row of a
// source file must match this set exactly (case-sensitive) or the file is
// rejected.
const (
	ColumnRespondentID  = "respondent_id"
	ColumnAgeGroup      = "age_group"
	ColumnGender        = "gender"
	ColumnRace          = "race"
	ColumnEducation     = "education"
	ColumnIncome        = "income"
	ColumnPolicySupport = "policy_support"
)

// SurveyColumns lists the required columns in canonical order.
var SurveyColumns = []string{
	ColumnRespondentID,
	ColumnAgeGroup,
	ColumnGender,
	ColumnRace,
	ColumnEducation,
	ColumnIncome,
	ColumnPolicySupport,
}

// SurveyRecord represents a single respondent's answers. Categorical fields
// are restricted to the declared finite sets via validation tags;
// PolicySupport is the 0/1 encoding of the policy-support answer.
type SurveyRecord struct {
	RespondentID  string `json:"respondent_id" validate:"required"`
	AgeGroup      string `json:"age_group" validate:"required,oneof=18-29 30-44 45-59 60+"`
	Gender        string `json:"gender" validate:"required,oneof=Male Female Nonbinary"`
	Race          string `json:"race" validate:"required,oneof=White Black Hispanic Asian Other"`
	Education     string `json:"education" validate:"required,oneof=HighSchool SomeCollege Bachelors Graduate"`
	Income        string `json:"income" validate:"required,oneof=Low Middle High"`
	PolicySupport int    `json:"policy_support" validate:"min=0,max=1"`
}

// Dimension identifies one demographic breakdown axis.
type Dimension string

const (
	DimensionGender    Dimension = "gender"
	DimensionRace      Dimension = "race"
	DimensionAgeGroup  Dimension = "age_group"
	DimensionEducation Dimension = "education"
	DimensionIncome    Dimension = "income"
)

// Dimensions lists the breakdown axes in report declaration order.
var Dimensions = []Dimension{
	DimensionGender,
	DimensionRace,
	DimensionAgeGroup,
	DimensionEducation,
	DimensionIncome,
}

// Value returns the record's value for the given dimension.
func (r SurveyRecord) Value(dim Dimension) string {
	switch dim {
	case DimensionGender:
		return r.Gender
	case DimensionRace:
		return r.Race
	case DimensionAgeGroup:
		return r.AgeGroup
	case DimensionEducation:
		return r.Education
	case DimensionIncome:
		return r.Income
	default:
		return ""
	}
}

// Supports reports whether the respondent supports the policy.
func (r SurveyRecord) Supports() bool {
	return r.PolicySupport == 1
}

// SurveyDataset is the union of all records parsed from the discovered
// source files, in file discovery order. It is constructed once per run and
// never mutated afterwards.
type SurveyDataset struct {
	Records   []SurveyRecord `json:"records"`
	FileCount int            `json:"file_count"`
}

// Len returns the number of records in the dataset.
func (d *SurveyDataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// IsEmpty reports whether the dataset contains no records.
func (d *SurveyDataset) IsEmpty() bool {
	return d.Len() == 0
}

// DuplicateRespondentIDs returns respondent IDs that occur more than once,
// in first-occurrence order. Duplicates are tolerated by the pipeline;
// deduplication is the data producer's concern, not ours.
func (d *SurveyDataset) DuplicateRespondentIDs() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]int, len(d.Records))
	var dups []string
	for _, rec := range d.Records {
		seen[rec.RespondentID]++
		if seen[rec.RespondentID] == 2 {
			dups = append(dups, rec.RespondentID)
		}
	}
	return dups
}
