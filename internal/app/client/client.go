// Package client is the terminal application: it owns the editable job
// table, the server connection and the offline store, and exposes the
// operations the CLI commands run.
package client

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/slog"

	"applytrack/internal/app/client/config"
	"applytrack/internal/domain/analytics"
	"applytrack/internal/domain/export"
	"applytrack/internal/domain/grid"
	"applytrack/internal/domain/job"
)

// localOwner scopes offline rows in the local database.
const localOwner = "local"

type App struct {
	config *config.Config
	log    *slog.Logger

	http  *httpStore
	local *SQLiteStorage

	notify        grid.Notifier
	table         *grid.Table
	authenticated bool
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{
		config: cfg,
		log:    log,
		http:   newHTTPStore(cfg, log),
		notify: NewNotifier(os.Stdout),
	}

	if token, err := app.loadToken(); err == nil && token != "" {
		app.http.SetToken(token)
		app.authenticated = true
		log.Debug("token loaded from file")
	}

	return app, nil
}

// Close releases the table and the local database.
func (a *App) Close() error {
	if a.table != nil {
		a.table.Close()
	}
	if a.local != nil {
		return a.local.Close()
	}
	return nil
}

func (a *App) IsAuthenticated() bool {
	return a.authenticated
}

// Offline reports whether the app persists to the local database instead
// of the server.
func (a *App) Offline() bool {
	return !a.authenticated
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.http.HealthCheck(ctx)
}

func (a *App) Register(ctx context.Context, login, password string) error {
	return a.http.Register(ctx, login, password)
}

// Login authenticates against the server and persists the token. Returns
// the account role.
func (a *App) Login(ctx context.Context, login, password string) (string, error) {
	token, role, err := a.http.Login(ctx, login, password)
	if err != nil {
		return "", err
	}

	if err := a.saveToken(token); err != nil {
		a.log.Warn("failed to persist token", "error", err)
	}
	a.authenticated = true
	return role, nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.http.Logout(ctx); err != nil {
		a.log.Warn("failed to revoke session on server", "error", err)
	}

	a.authenticated = false
	a.http.SetToken("")
	return a.clearToken()
}

// store picks the job backend: the server API when logged in, the local
// database otherwise.
func (a *App) store() (job.Servicer, string, error) {
	if a.authenticated {
		return a.http, "remote", nil
	}

	if a.local == nil {
		local, err := NewSQLiteStorage(a.config.DataPath)
		if err != nil {
			return nil, "", fmt.Errorf("open local storage: %w", err)
		}
		a.local = local
	}
	return job.NewService(a.local, a.log), localOwner, nil
}

// Table loads the editable job table over the active backend. The table
// is cached; a second call returns the same instance.
func (a *App) Table(ctx context.Context) (*grid.Table, error) {
	if a.table != nil {
		return a.table, nil
	}

	store, owner, err := a.store()
	if err != nil {
		return nil, err
	}

	cfg := grid.Config{}
	if a.config.SaveDelayMS > 0 {
		cfg.SaveDelay = time.Duration(a.config.SaveDelayMS) * time.Millisecond
	}

	table := grid.New(store, cfg, nil, a.log, a.notify)
	if err := table.Load(ctx, owner); err != nil {
		table.Close()
		return nil, err
	}

	a.table = table
	return table, nil
}

// Stats returns the analytics summary from the active backend.
func (a *App) Stats(ctx context.Context) (*StatsReport, error) {
	if a.authenticated {
		return a.http.Stats(ctx)
	}

	store, owner, err := a.store()
	if err != nil {
		return nil, err
	}

	records, err := store.ListByOwner(ctx, owner, job.MaxListLimit)
	if err != nil {
		return nil, err
	}

	summary := analytics.StatusCounts(records)
	byStatus := make(map[string]int, len(summary.ByStatus))
	for status, count := range summary.ByStatus {
		byStatus[status.String()] = count
	}

	var monthly []MonthCount
	for _, mc := range analytics.MonthlyHistogram(records) {
		monthly = append(monthly, MonthCount{Month: mc.Month, Count: mc.Count})
	}

	return &StatsReport{
		Total:        summary.Total,
		ByStatus:     byStatus,
		Monthly:      monthly,
		FollowUpsDue: analytics.FollowUpsDue(records, job.FormatDate(time.Now())),
	}, nil
}

// ExportCSV renders the active backend's jobs as CSV and returns the
// download filename alongside the payload.
func (a *App) ExportCSV(ctx context.Context) (string, []byte, error) {
	filename := export.Filename(time.Now())

	if a.authenticated {
		data, err := a.http.ExportCSV(ctx)
		if err != nil {
			return "", nil, err
		}
		return filename, data, nil
	}

	store, owner, err := a.store()
	if err != nil {
		return "", nil, err
	}

	records, err := store.ListByOwner(ctx, owner, job.MaxListLimit)
	if err != nil {
		return "", nil, err
	}

	csv, err := export.ToCSV(records)
	if err != nil {
		return "", nil, err
	}
	return filename, []byte(csv), nil
}

// AdminUsers fetches the account list; the server enforces the role.
func (a *App) AdminUsers(ctx context.Context) (*UsersReport, error) {
	return a.http.AdminUsers(ctx)
}

// AdminUserJobs returns another account's job records. Admin only.
func (a *App) AdminUserJobs(ctx context.Context, userID string) ([]job.Record, error) {
	return a.http.AdminUserJobs(ctx, userID)
}

func (a *App) saveToken(token string) error {
	return os.WriteFile(a.config.TokenPath, []byte(token), 0600)
}

func (a *App) loadToken() (string, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *App) clearToken() error {
	err := os.Remove(a.config.TokenPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
