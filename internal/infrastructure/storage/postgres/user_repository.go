package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"applytrack/internal/domain/user"
)

type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, login, passwordHash string, role user.Role) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id::text`,
		login, passwordHash, string(role)).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (user.User, error) {
	const query = `
		SELECT id::text, login, password_hash, role, created_at, last_login, last_activity
		FROM users WHERE login = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, login))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (user.User, error) {
	const query = `
		SELECT id::text, login, password_hash, role, created_at, last_login, last_activity
		FROM users WHERE id = $1::bigint`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login = $2, last_activity = $2 WHERE id = $1::bigint`,
		id, at)
	return err
}

func (r *UserRepository) TouchActivity(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_activity = $2 WHERE id = $1::bigint`,
		id, at)
	return err
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	const query = `
		SELECT id::text, login, password_hash, role, created_at, last_login, last_activity
		FROM users ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) scanUser(row interface {
	Scan(dest ...interface{}) error
}) (user.User, error) {
	var u user.User
	var role string
	var lastLogin, lastActivity sql.NullTime

	err := row.Scan(&u.ID, &u.Login, &u.Password, &role, &u.CreatedAt, &lastLogin, &lastActivity)
	if err != nil {
		return u, fmt.Errorf("user not found")
	}

	u.Role = user.Role(role)
	if lastLogin.Valid {
		u.LastLogin = lastLogin.Time
	}
	if lastActivity.Valid {
		u.LastActivity = lastActivity.Time
	}
	return u, nil
}
