package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slog"

	"applytrack/internal/app/client/config"
	"applytrack/internal/domain/job"
)

// httpStore talks to the server API. It satisfies job.Servicer so the
// grid can persist straight over the wire; the owner id argument is
// carried by the bearer token, not the request body.
type httpStore struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func newHTTPStore(cfg *config.Config, log *slog.Logger) *httpStore {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpStore{
		client:    client,
		log:       log.With("component", "http_store"),
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "ApplyTrack-Client/1.0",
	}
}

func (h *httpStore) SetToken(token string) {
	h.token = token
}

func (h *httpStore) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

type authResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

func (h *httpStore) Register(ctx context.Context, login, password string) error {
	body := map[string]string{"login": login, "password": password}
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/register", body)
	if err != nil {
		return err
	}

	var out authResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return err
	}
	if out.Status != "Ok" {
		return fmt.Errorf("registration failed: %s", out.Error)
	}
	return nil
}

// Login returns the bearer token and the account role.
func (h *httpStore) Login(ctx context.Context, login, password string) (string, string, error) {
	body := map[string]string{"login": login, "password": password}
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/login", body)
	if err != nil {
		return "", "", err
	}

	var out authResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return "", "", err
	}
	if out.Status != "Ok" {
		return "", "", fmt.Errorf("login failed: %s", out.Error)
	}

	h.token = out.Token
	return out.Token, out.Role, nil
}

func (h *httpStore) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/logout", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

type mutationResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

func (h *httpStore) Create(ctx context.Context, fields job.Fields, _ string) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/jobs", fields)
	if err != nil {
		return "", err
	}

	var out mutationResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}
	if out.Status != "Ok" {
		return "", fmt.Errorf("%w: %s", job.ErrWrite, out.Error)
	}
	return out.ID, nil
}

func (h *httpStore) Update(ctx context.Context, id string, fields job.Fields) error {
	resp, err := h.doRequest(ctx, http.MethodPut, "/api/v1/jobs/"+id, fields)
	if err != nil {
		return err
	}

	var out mutationResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return err
	}
	if out.Status != "Ok" {
		return fmt.Errorf("%w: %s", job.ErrWrite, out.Error)
	}
	return nil
}

func (h *httpStore) Delete(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/v1/jobs/"+id, nil)
	if err != nil {
		return err
	}

	var out mutationResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return err
	}
	if out.Status != "Ok" {
		return fmt.Errorf("%w: %s", job.ErrWrite, out.Error)
	}
	return nil
}

type jobResponse struct {
	ID string `json:"id"`
	job.Fields
	CreatedAt time.Time `json:"created_at"`
}

func (h *httpStore) ListByOwner(ctx context.Context, _ string, limit int) ([]job.Record, error) {
	path := fmt.Sprintf("/api/v1/jobs?limit=%d", limit)
	resp, err := h.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out []jobResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}

	records := make([]job.Record, len(out))
	for i, jr := range out {
		records[i] = job.Record{ID: jr.ID, Fields: jr.Fields, CreatedAt: jr.CreatedAt}
	}
	return records, nil
}

type StatsReport struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"by_status"`
	Monthly      []MonthCount   `json:"monthly"`
	FollowUpsDue int            `json:"follow_ups_due"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

func (h *httpStore) Stats(ctx context.Context) (*StatsReport, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/jobs/stats", nil)
	if err != nil {
		return nil, err
	}

	var out StatsReport
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpStore) ExportCSV(ctx context.Context) ([]byte, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/jobs/export", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("export failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type UsersReport struct {
	Users []UserSummary `json:"users"`
	Total int           `json:"total"`
}

type UserSummary struct {
	ID           string     `json:"id"`
	Login        string     `json:"login"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
	LastActivity *time.Time `json:"last_activity"`
}

func (h *httpStore) AdminUsers(ctx context.Context) (*UsersReport, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/admin/users", nil)
	if err != nil {
		return nil, err
	}

	var out UsersReport
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUserJobs fetches one account's job records. Admin role required
// server-side.
func (h *httpStore) AdminUserJobs(ctx context.Context, userID string) ([]job.Record, error) {
	path := fmt.Sprintf("/api/v1/admin/users/%s/jobs", url.PathEscape(userID))
	resp, err := h.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		UserID string        `json:"user_id"`
		Jobs   []jobResponse `json:"jobs"`
		Total  int           `json:"total"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}

	records := make([]job.Record, len(out.Jobs))
	for i, jr := range out.Jobs {
		records[i] = job.Record{ID: jr.ID, UserID: out.UserID, Fields: jr.Fields, CreatedAt: jr.CreatedAt}
	}
	return records, nil
}

func (h *httpStore) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func (h *httpStore) parseResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("unauthorized, log in first")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
