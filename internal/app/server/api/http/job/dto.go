package job

import (
	"time"

	"applytrack/internal/domain/analytics"
	"applytrack/internal/domain/job"
)

type JobResponse struct {
	ID string `json:"id"`
	job.Fields
	CreatedAt time.Time `json:"created_at"`
}

type listInput struct {
	Limit int `query:"limit" minimum:"0" maximum:"500" doc:"Maximum number of jobs to return"`
}

type listOutput struct {
	Body []JobResponse
}

type createInput struct {
	Body job.Fields
}

type createOutput struct {
	Body MutationResponse
}

type updateInput struct {
	ID   string `path:"id" doc:"Job id"`
	Body job.Fields
}

type updateOutput struct {
	Body MutationResponse
}

type deleteInput struct {
	ID string `path:"id" doc:"Job id"`
}

type deleteOutput struct {
	Body MutationResponse
}

type MutationResponse struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type exportInput struct{}

type exportOutput struct {
	ContentType string `header:"Content-Type"`
	Disposition string `header:"Content-Disposition"`
	Body        []byte
}

type statsInput struct{}

type statsOutput struct {
	Body StatsResponse
}

type StatsResponse struct {
	Total        int                     `json:"total"`
	ByStatus     map[string]int          `json:"by_status"`
	Monthly      []analytics.MonthCount  `json:"monthly"`
	FollowUpsDue int                     `json:"follow_ups_due"`
}
