package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, login, passwordHash string, role Role) (string, error)
	FindByLogin(ctx context.Context, login string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
	TouchActivity(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context) ([]User, error)
}
