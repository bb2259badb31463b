package user

import "time"

type credentials struct {
	Login    string `json:"login" minLength:"3" maxLength:"32" doc:"Account login"`
	Password string `json:"password" minLength:"8" doc:"Account password"`
}

type registerInput struct {
	Body credentials
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     string `json:"user_id,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type loginInput struct {
	Body credentials
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type meInput struct{}

type meOutput struct {
	Body ProfileResponse
}

type ProfileResponse struct {
	ID           string     `json:"id"`
	Login        string     `json:"login"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

type logoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token to revoke"`
}

type logoutOutput struct {
	Body LogoutResponse
}

type LogoutResponse struct {
	Status string `json:"status"`
}
