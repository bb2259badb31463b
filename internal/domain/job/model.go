package job

import (
	"strings"
	"time"
)

// Field names, in canonical column order.
const (
	FieldCompanyName        = "companyName"
	FieldTitle              = "title"
	FieldNumberOfApplicants = "numberOfApplicants"
	FieldJobLink            = "jobLink"
	FieldHiringManager      = "hiringManager"
	FieldStatus             = "status"
	FieldApplicationDate    = "applicationDate"
	FieldResponseDate       = "responseDate"
	FieldFollowUpDate       = "followUpDate"
	FieldFollowUpStatus     = "followUpStatus"
	FieldReferral           = "referral"
)

// FieldNames returns the canonical field order of a job record.
func FieldNames() []string {
	return []string{
		FieldCompanyName,
		FieldTitle,
		FieldNumberOfApplicants,
		FieldJobLink,
		FieldHiringManager,
		FieldStatus,
		FieldApplicationDate,
		FieldResponseDate,
		FieldFollowUpDate,
		FieldFollowUpStatus,
		FieldReferral,
	}
}

// Fields is the editable field set of one job application. All values are
// kept as trimmed strings, the way the grid edits them; dates are ISO
// calendar dates (2006-01-02) and numberOfApplicants is a decimal integer.
type Fields struct {
	CompanyName        string `json:"companyName"`
	Title              string `json:"title"`
	NumberOfApplicants string `json:"numberOfApplicants"`
	JobLink            string `json:"jobLink"`
	HiringManager      string `json:"hiringManager"`
	Status             string `json:"status"`
	ApplicationDate    string `json:"applicationDate"`
	ResponseDate       string `json:"responseDate"`
	FollowUpDate       string `json:"followUpDate"`
	FollowUpStatus     string `json:"followUpStatus"`
	Referral           string `json:"referral"`
}

// Get returns the value of the named field, "" for an unknown name.
func (f Fields) Get(name string) string {
	switch name {
	case FieldCompanyName:
		return f.CompanyName
	case FieldTitle:
		return f.Title
	case FieldNumberOfApplicants:
		return f.NumberOfApplicants
	case FieldJobLink:
		return f.JobLink
	case FieldHiringManager:
		return f.HiringManager
	case FieldStatus:
		return f.Status
	case FieldApplicationDate:
		return f.ApplicationDate
	case FieldResponseDate:
		return f.ResponseDate
	case FieldFollowUpDate:
		return f.FollowUpDate
	case FieldFollowUpStatus:
		return f.FollowUpStatus
	case FieldReferral:
		return f.Referral
	}
	return ""
}

// Set stores a trimmed value into the named field. Unknown names are
// reported so a caller can reject them before any store call.
func (f *Fields) Set(name, value string) error {
	value = strings.TrimSpace(value)
	switch name {
	case FieldCompanyName:
		f.CompanyName = value
	case FieldTitle:
		f.Title = value
	case FieldNumberOfApplicants:
		f.NumberOfApplicants = value
	case FieldJobLink:
		f.JobLink = value
	case FieldHiringManager:
		f.HiringManager = value
	case FieldStatus:
		f.Status = value
	case FieldApplicationDate:
		f.ApplicationDate = value
	case FieldResponseDate:
		f.ResponseDate = value
	case FieldFollowUpDate:
		f.FollowUpDate = value
	case FieldFollowUpStatus:
		f.FollowUpStatus = value
	case FieldReferral:
		f.Referral = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Diff returns the names of fields whose values differ from other, in
// canonical order. An empty result means there is nothing to save.
func (f Fields) Diff(other Fields) []string {
	var changed []string
	for _, name := range FieldNames() {
		if f.Get(name) != other.Get(name) {
			changed = append(changed, name)
		}
	}
	return changed
}

// IsEmpty reports whether every field is blank.
func (f Fields) IsEmpty() bool {
	for _, name := range FieldNames() {
		if f.Get(name) != "" {
			return false
		}
	}
	return true
}

// Record is one persisted job application. ID is an opaque identifier
// assigned by the store on first create; a Record with an empty ID exists
// only client-side. Once assigned the ID never changes.
type Record struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"userId"`
	Fields    Fields    `json:"fields"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
