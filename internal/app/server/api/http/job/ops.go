package job

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "jobs-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs",
		Summary:     "List the caller's job applications",
		Tags:        []string{"jobs"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "jobs-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/jobs",
		Summary:     "Create a job application",
		Tags:        []string{"jobs"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "jobs-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/jobs/{id}",
		Summary:     "Update a job application",
		Description: "Replaces the full field map of the job.",
		Tags:        []string{"jobs"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "jobs-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/jobs/{id}",
		Summary:     "Delete a job application",
		Tags:        []string{"jobs"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) exportOp() huma.Operation {
	return huma.Operation{
		OperationID: "jobs-export",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs/export",
		Summary:     "Export the caller's jobs as CSV",
		Tags:        []string{"jobs"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) statsOp() huma.Operation {
	return huma.Operation{
		OperationID: "jobs-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs/stats",
		Summary:     "Status, monthly and follow-up statistics",
		Tags:        []string{"jobs"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
