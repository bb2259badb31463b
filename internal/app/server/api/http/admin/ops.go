package admin

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) usersOp() huma.Operation {
	return huma.Operation{
		OperationID: "admin-users",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users",
		Summary:     "List all accounts with activity timestamps",
		Tags:        []string{"admin"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) userJobsOp() huma.Operation {
	return huma.Operation{
		OperationID: "admin-user-jobs",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users/{id}/jobs",
		Summary:     "List one account's job applications",
		Tags:        []string{"admin"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
