package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"applytrack/internal/app/server/api/http/middleware/auth"
	"applytrack/internal/domain/session"
	"applytrack/internal/domain/user"
)

type Handler struct {
	service user.Servicer
	session session.Servicer
	log     *slog.Logger
	// register/login are open; me requires the auth middleware chain.
	middleware huma.Middlewares
	authed     huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware, authed huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
		authed:     authed,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	u, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return &registerOutput{
			Body: RegisterResponse{Status: "Error", Error: err.Error()},
		}, nil
	}

	return &registerOutput{
		Body: RegisterResponse{ID: u.ID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return &loginOutput{
			Body: LoginResponse{Status: "Error", Error: "Invalid credentials"},
		}, nil
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("failed to create session", "user_id", u.ID, "error", err)
		return &loginOutput{
			Body: LoginResponse{Status: "Error", Error: "Failed to create session"},
		}, nil
	}

	return &loginOutput{
		Body: LoginResponse{
			Token:  token,
			Role:   string(u.Role),
			Status: "Ok",
		},
	}, nil
}

func (h *Handler) me(ctx context.Context, _ *meInput) (*meOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	u, err := h.service.Get(ctx, userID)
	if err != nil {
		h.log.Warn("failed to load profile", "user_id", userID, "error", err)
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	profile := ProfileResponse{
		ID:        u.ID,
		Login:     u.Login,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if !u.LastLogin.IsZero() {
		t := u.LastLogin
		profile.LastLogin = &t
	}
	if !u.LastActivity.IsZero() {
		t := u.LastActivity
		profile.LastActivity = &t
	}

	return &meOutput{Body: profile}, nil
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	token, ok := auth.GetToken(input.Authorization)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.session.Revoke(ctx, token); err != nil {
		h.log.Warn("failed to revoke session", "error", err)
	}

	return &logoutOutput{Body: LogoutResponse{Status: "Ok"}}, nil
}
