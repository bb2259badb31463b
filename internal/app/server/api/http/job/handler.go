package job

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"applytrack/internal/app/server/api/http/middleware/auth"
	"applytrack/internal/domain/analytics"
	"applytrack/internal/domain/export"
	"applytrack/internal/domain/job"
)

type Handler struct {
	service    job.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	now        func() time.Time
}

func NewHandler(service job.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
		now:        time.Now,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.exportOp(), h.export)
	huma.Register(api, h.statsOp(), h.stats)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	limit := input.Limit
	if limit == 0 {
		limit = job.MaxListLimit
	}

	records, err := h.service.ListByOwner(ctx, userID, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list jobs")
	}

	out := make([]JobResponse, len(records))
	for i, rec := range records {
		out[i] = JobResponse{ID: rec.ID, Fields: rec.Fields, CreatedAt: rec.CreatedAt}
	}
	return &listOutput{Body: out}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.Create(ctx, input.Body, userID)
	if err != nil {
		return &createOutput{
			Body: MutationResponse{Status: "Error", Error: err.Error()},
		}, nil
	}

	return &createOutput{
		Body: MutationResponse{ID: id, Status: "Ok"},
	}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	if _, ok := auth.GetUserID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Update(ctx, input.ID, input.Body); err != nil {
		return &updateOutput{
			Body: MutationResponse{ID: input.ID, Status: "Error", Error: err.Error()},
		}, nil
	}

	return &updateOutput{
		Body: MutationResponse{ID: input.ID, Status: "Ok"},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	if _, ok := auth.GetUserID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, input.ID); err != nil {
		return &deleteOutput{
			Body: MutationResponse{ID: input.ID, Status: "Error", Error: err.Error()},
		}, nil
	}

	return &deleteOutput{
		Body: MutationResponse{ID: input.ID, Status: "Ok"},
	}, nil
}

func (h *Handler) export(ctx context.Context, _ *exportInput) (*exportOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	records, err := h.service.ListByOwner(ctx, userID, job.MaxListLimit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list jobs")
	}

	csv, err := export.ToCSV(records)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("No jobs to export")
	}

	return &exportOutput{
		ContentType: export.MIMEType,
		Disposition: `attachment; filename="` + export.Filename(h.now()) + `"`,
		Body:        []byte(csv),
	}, nil
}

func (h *Handler) stats(ctx context.Context, _ *statsInput) (*statsOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	records, err := h.service.ListByOwner(ctx, userID, job.MaxListLimit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list jobs")
	}

	summary := analytics.StatusCounts(records)
	byStatus := make(map[string]int, len(summary.ByStatus))
	for status, count := range summary.ByStatus {
		byStatus[status.String()] = count
	}

	return &statsOutput{
		Body: StatsResponse{
			Total:        summary.Total,
			ByStatus:     byStatus,
			Monthly:      analytics.MonthlyHistogram(records),
			FollowUpsDue: analytics.FollowUpsDue(records, job.FormatDate(h.now())),
		},
	}, nil
}
