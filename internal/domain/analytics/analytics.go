// Package analytics derives aggregate views from a job record snapshot.
// Every function is pure; the table controller re-runs them after each
// settled mutation.
package analytics

import (
	"sort"

	"applytrack/internal/domain/job"
)

// Summary holds per-status counts plus the total record count.
type Summary struct {
	Total    int
	ByStatus map[job.Status]int
}

// StatusCounts tallies records per status value.
func StatusCounts(records []job.Record) Summary {
	s := Summary{
		Total:    len(records),
		ByStatus: make(map[job.Status]int, len(job.Statuses())),
	}
	for _, st := range job.Statuses() {
		s.ByStatus[st] = 0
	}
	for _, r := range records {
		st := job.Status(r.Fields.Status)
		if _, ok := s.ByStatus[st]; ok {
			s.ByStatus[st]++
		}
	}
	return s
}

// FollowUpsDue counts records whose followUpDate is a valid calendar date
// on or before today (ISO date string). Blank and unparsable dates are
// excluded.
func FollowUpsDue(records []job.Record, today string) int {
	due := 0
	for _, r := range records {
		if job.OnOrBefore(r.Fields.FollowUpDate, today) {
			due++
		}
	}
	return due
}

// MonthCount is one month's application total, keyed "YYYY-MM".
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyHistogram buckets records by applicationDate year-month, newest
// month first. Records with an unparsable date are skipped.
func MonthlyHistogram(records []job.Record) []MonthCount {
	byMonth := make(map[string]int)
	for _, r := range records {
		t, ok := job.ParseDate(r.Fields.ApplicationDate)
		if !ok {
			continue
		}
		byMonth[t.Format("2006-01")]++
	}

	out := make([]MonthCount, 0, len(byMonth))
	for month, count := range byMonth {
		out = append(out, MonthCount{Month: month, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month > out[j].Month
	})
	return out
}
