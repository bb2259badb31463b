package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"applytrack/internal/domain/job"
)

func rec(fields job.Fields) job.Record {
	return job.Record{Fields: fields}
}

func TestStatusCounts(t *testing.T) {
	records := []job.Record{
		rec(job.Fields{Status: "Applied"}),
		rec(job.Fields{Status: "Applied"}),
		rec(job.Fields{Status: "Interviewing"}),
		rec(job.Fields{Status: "Rejected"}),
		rec(job.Fields{Status: ""}),
	}

	s := StatusCounts(records)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.ByStatus[job.StatusApplied])
	assert.Equal(t, 1, s.ByStatus[job.StatusInterviewing])
	assert.Equal(t, 1, s.ByStatus[job.StatusRejected])
	assert.Equal(t, 0, s.ByStatus[job.StatusGhosted])
}

func TestFollowUpsDue(t *testing.T) {
	records := []job.Record{
		rec(job.Fields{FollowUpDate: "2024-05-30"}), // due
		rec(job.Fields{FollowUpDate: "2024-06-01"}), // due, inclusive
		rec(job.Fields{FollowUpDate: "2024-06-02"}), // not due
		rec(job.Fields{FollowUpDate: ""}),           // excluded
	}

	assert.Equal(t, 2, FollowUpsDue(records, "2024-06-01"))
}

func TestMonthlyHistogram(t *testing.T) {
	records := []job.Record{
		rec(job.Fields{ApplicationDate: "2024-05-01"}),
		rec(job.Fields{ApplicationDate: "2024-05-20"}),
		rec(job.Fields{ApplicationDate: "2024-06-02"}),
		rec(job.Fields{ApplicationDate: "2023-12-31"}),
		rec(job.Fields{ApplicationDate: "soon"}), // skipped
		rec(job.Fields{ApplicationDate: ""}),     // skipped
	}

	got := MonthlyHistogram(records)
	assert.Equal(t, []MonthCount{
		{Month: "2024-06", Count: 1},
		{Month: "2024-05", Count: 2},
		{Month: "2023-12", Count: 1},
	}, got)
}

func TestMonthlyHistogram_Empty(t *testing.T) {
	assert.Empty(t, MonthlyHistogram(nil))
}
