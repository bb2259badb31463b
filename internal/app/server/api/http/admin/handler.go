package admin

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"applytrack/internal/app/server/api/http/middleware/auth"
	"applytrack/internal/domain/job"
	"applytrack/internal/domain/user"
)

// Handler exposes the operator-only surface. Every operation re-checks
// the caller's role; the auth middleware only establishes identity.
type Handler struct {
	users      user.Servicer
	jobs       job.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(users user.Servicer, jobs job.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		users:      users,
		jobs:       jobs,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.usersOp(), h.listUsers)
	huma.Register(api, h.userJobsOp(), h.listUserJobs)
}

func (h *Handler) listUsers(ctx context.Context, _ *usersInput) (*usersOutput, error) {
	caller, err := h.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	users, err := h.users.List(ctx)
	if err != nil {
		h.log.Error("failed to list users", "caller_id", caller.ID, "error", err)
		return nil, huma.Error500InternalServerError("Failed to list users")
	}

	out := make([]UserInfo, len(users))
	for i, u := range users {
		info := UserInfo{
			ID:        u.ID,
			Login:     u.Login,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		}
		if !u.LastLogin.IsZero() {
			t := u.LastLogin
			info.LastLogin = &t
		}
		if !u.LastActivity.IsZero() {
			t := u.LastActivity
			info.LastActivity = &t
		}
		out[i] = info
	}

	return &usersOutput{Body: UsersResponse{Users: out, Total: len(out)}}, nil
}

func (h *Handler) listUserJobs(ctx context.Context, input *userJobsInput) (*userJobsOutput, error) {
	caller, err := h.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := h.users.Get(ctx, input.ID); err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	records, err := h.jobs.ListByOwner(ctx, input.ID, job.MaxListLimit)
	if err != nil {
		h.log.Error("failed to list user jobs",
			"caller_id", caller.ID, "user_id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("Failed to list jobs")
	}

	jobs := make([]JobInfo, len(records))
	for i, r := range records {
		jobs[i] = JobInfo{ID: r.ID, Fields: r.Fields, CreatedAt: r.CreatedAt}
	}

	return &userJobsOutput{
		Body: UserJobsResponse{UserID: input.ID, Jobs: jobs, Total: len(jobs)},
	}, nil
}

func (h *Handler) requireAdmin(ctx context.Context) (user.User, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return user.User{}, huma.Error401Unauthorized("Unauthorized")
	}

	caller, err := h.users.Get(ctx, userID)
	if err != nil {
		return user.User{}, huma.Error401Unauthorized("Unauthorized")
	}

	if !caller.IsAdmin() {
		return user.User{}, huma.Error403Forbidden("Admin access required")
	}

	return caller, nil
}
