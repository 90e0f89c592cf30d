package domain

// Field is a logical attribute resolved from either record shape.
type Field int

// Logical fields understood by the normaliser.
const (
	FieldApplicationID Field = iota
	FieldApplicantName
	FieldCompanyName
	FieldInnovationTitle
	FieldSegment
	FieldTRL
	FieldFundingAmount
	FieldFundingStatus
	FieldTeamSize
	FieldAbout
	FieldFundingSummary
	FieldPatents
	FieldAwardsSummary
	FieldTeamSummary
)

// NotAvailable is the display placeholder for a field with no value.
const NotAvailable = "N/A"

// String returns the string representation of the field.
func (f Field) String() string {
	switch f {
	case FieldApplicationID:
		return "application_id"
	case FieldApplicantName:
		return "applicant_name"
	case FieldCompanyName:
		return "company_name"
	case FieldInnovationTitle:
		return "innovation_title"
	case FieldSegment:
		return "segment"
	case FieldTRL:
		return "trl"
	case FieldFundingAmount:
		return "funding_amount"
	case FieldFundingStatus:
		return "funding_status"
	case FieldTeamSize:
		return "team_size"
	case FieldAbout:
		return "about"
	case FieldFundingSummary:
		return "funding_summary"
	case FieldPatents:
		return "patents"
	case FieldAwardsSummary:
		return "awards_summary"
	case FieldTeamSummary:
		return "team_summary"
	default:
		return "unknown"
	}
}

// IsNumeric returns true for fields that sort as numbers.
func (f Field) IsNumeric() bool {
	return f == FieldFundingAmount || f == FieldTeamSize || f == FieldTRL
}
