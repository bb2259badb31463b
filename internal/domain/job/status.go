package job

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type Status string

const (
	StatusPending      Status = "Pending"
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusOffered      Status = "Offered"
	StatusRejected     Status = "Rejected"
	StatusGhosted      Status = "Ghosted"
)

// Statuses returns the status domain in display order.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusApplied,
		StatusInterviewing,
		StatusOffered,
		StatusRejected,
		StatusGhosted,
	}
}

func (Status) Schema() huma.Schema {
	return huma.Schema{
		Type: "string",
		Enum: []any{
			string(StatusPending),
			string(StatusApplied),
			string(StatusInterviewing),
			string(StatusOffered),
			string(StatusRejected),
			string(StatusGhosted),
		},
		Description: "Application status",
		Examples:    []any{StatusApplied},
	}
}

func (s Status) Validate() error {
	if s == "" {
		return nil
	}
	for _, v := range Statuses() {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("invalid status: %s", s)
}

func (s Status) String() string {
	return string(s)
}

type FollowUpStatus string

const (
	FollowUpPending    FollowUpStatus = "Pending"
	FollowUpFirstSent  FollowUpStatus = "1st Follow Up Sent"
	FollowUpSecondSent FollowUpStatus = "2nd Follow Up Sent"
	FollowUpGhosted    FollowUpStatus = "Ghosted"
)

func FollowUpStatuses() []FollowUpStatus {
	return []FollowUpStatus{
		FollowUpPending,
		FollowUpFirstSent,
		FollowUpSecondSent,
		FollowUpGhosted,
	}
}

func (FollowUpStatus) Schema() huma.Schema {
	return huma.Schema{
		Type: "string",
		Enum: []any{
			string(FollowUpPending),
			string(FollowUpFirstSent),
			string(FollowUpSecondSent),
			string(FollowUpGhosted),
		},
		Description: "Follow-up progression",
		Examples:    []any{FollowUpPending},
	}
}

func (s FollowUpStatus) Validate() error {
	if s == "" {
		return nil
	}
	for _, v := range FollowUpStatuses() {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("invalid follow-up status: %s", s)
}

func (s FollowUpStatus) String() string {
	return string(s)
}

type Referral string

const (
	ReferralSearching Referral = "Searching"
	ReferralReferred  Referral = "Referred"
	ReferralNo        Referral = "No"
)

func Referrals() []Referral {
	return []Referral{ReferralSearching, ReferralReferred, ReferralNo}
}

func (Referral) Schema() huma.Schema {
	return huma.Schema{
		Type: "string",
		Enum: []any{
			string(ReferralSearching),
			string(ReferralReferred),
			string(ReferralNo),
		},
		Description: "Referral state",
		Examples:    []any{ReferralSearching},
	}
}

func (r Referral) Validate() error {
	if r == "" {
		return nil
	}
	for _, v := range Referrals() {
		if r == v {
			return nil
		}
	}
	return fmt.Errorf("invalid referral: %s", r)
}

func (r Referral) String() string {
	return string(r)
}
