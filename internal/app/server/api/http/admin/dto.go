package admin

import (
	"time"

	"applytrack/internal/domain/job"
)

type usersInput struct{}

type usersOutput struct {
	Body UsersResponse
}

type UsersResponse struct {
	Users []UserInfo `json:"users"`
	Total int        `json:"total"`
}

type UserInfo struct {
	ID           string     `json:"id"`
	Login        string     `json:"login"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

type userJobsInput struct {
	ID string `path:"id" doc:"Account id"`
}

type userJobsOutput struct {
	Body UserJobsResponse
}

type UserJobsResponse struct {
	UserID string    `json:"user_id"`
	Jobs   []JobInfo `json:"jobs"`
	Total  int       `json:"total"`
}

type JobInfo struct {
	ID string `json:"id"`
	job.Fields
	CreatedAt time.Time `json:"created_at"`
}
