package user

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, login, password string) (User, error)
	Authenticate(ctx context.Context, login, password string) (User, error)
	Get(ctx context.Context, id string) (User, error)
	TouchActivity(ctx context.Context, id string) error
	List(ctx context.Context) ([]User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With("component", "user_service"),
		now:       time.Now,
	}
}

func (s *Service) Register(ctx context.Context, login, password string) (User, error) {
	if err := s.validator.ValidateRegister(login, password); err != nil {
		s.log.Debug("validation failed", "login", login, "error", err)
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	role := Classify(login)
	id, err := s.repo.Create(ctx, login, string(hash), role)
	if err != nil {
		return User{}, fmt.Errorf("register user: %w", err)
	}

	s.log.Info("user registered", "user_id", id, "login", login, "role", role)
	return User{
		ID:    id,
		Login: login,
		Role:  role,
	}, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (User, error) {
	if err := s.validator.ValidateLogin(login); err != nil {
		return User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return User{}, ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	now := s.now()
	if err := s.repo.TouchLogin(ctx, u.ID, now); err != nil {
		// Login still succeeds; the timestamp is bookkeeping.
		s.log.Warn("failed to record login time", "user_id", u.ID, "error", err)
	} else {
		u.LastLogin = now
	}

	if u.Role == "" {
		u.Role = RoleUser
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u, nil
}

// TouchActivity stamps the user's last-seen time. Called from the request
// path, so failures are logged and swallowed.
func (s *Service) TouchActivity(ctx context.Context, id string) error {
	if err := s.repo.TouchActivity(ctx, id, s.now()); err != nil {
		s.log.Warn("failed to record activity", "user_id", id, "error", err)
		return fmt.Errorf("touch activity: %w", err)
	}
	return nil
}

// List returns every account, for the admin surface.
func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		if users[i].Role == "" {
			users[i].Role = RoleUser
		}
	}
	return users, nil
}
