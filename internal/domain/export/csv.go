// Package export renders a job record snapshot as a CSV document.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"applytrack/internal/domain/job"
)

// ErrNoRecords signals that the snapshot holds nothing to export.
var ErrNoRecords = errors.New("no jobs to export")

// MIMEType is the content type of the produced document.
const MIMEType = "text/csv"

// NotPresent is the literal rendered for any empty or unparsable field.
const NotPresent = "NOT PRESENT"

var header = []string{
	"No.",
	"Company Name",
	"Title",
	"Number of Applicants",
	"Job Link",
	"Hiring Manager",
	"Status",
	"Application Date",
	"Response Date",
	"Follow Up Date",
	"Follow Up Status",
	"Referral",
}

// ToCSV encodes the snapshot. Rows are numbered 1..N independent of any
// record id; every field is quoted with embedded quotes doubled; date
// columns are reformatted DD-MM-YYYY.
func ToCSV(records []job.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))

	for i, r := range records {
		cells := []string{
			strconv.Itoa(i + 1),
			cell(r.Fields.CompanyName),
			cell(r.Fields.Title),
			cell(r.Fields.NumberOfApplicants),
			cell(r.Fields.JobLink),
			cell(r.Fields.HiringManager),
			cell(r.Fields.Status),
			dateCell(r.Fields.ApplicationDate),
			dateCell(r.Fields.ResponseDate),
			dateCell(r.Fields.FollowUpDate),
			cell(r.Fields.FollowUpStatus),
			cell(r.Fields.Referral),
		}

		b.WriteByte('\n')
		for j, c := range cells {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(c, `"`, `""`))
			b.WriteByte('"')
		}
	}

	return b.String(), nil
}

func cell(v string) string {
	if v == "" {
		return NotPresent
	}
	return v
}

func dateCell(v string) string {
	t, ok := job.ParseDate(v)
	if !ok {
		return NotPresent
	}
	return t.Format(job.ExportDateLayout)
}

// Filename names an export taken at t, e.g. job_applications_2024-06-01.csv.
func Filename(t time.Time) string {
	return fmt.Sprintf("job_applications_%s.csv", t.Format(job.DateLayout))
}
