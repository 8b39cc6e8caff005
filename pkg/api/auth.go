package api

import (
	"context"

	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates with username and password.
func Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	logger.Debug("Attempting login", "username", username)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(LoginRequest{Username: username, Password: password}).
		Post("/api/auth/login")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := decode(resp, &authResp); err != nil {
		return nil, err
	}

	logger.Debug("Login successful", "username", authResp.User.Username)
	return &authResp, nil
}

// Register creates an account and returns an authenticated session,
// same contract as Login.
func Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	logger.Debug("Registering account", "username", req.Username)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/register")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := decode(resp, &authResp); err != nil {
		return nil, err
	}

	logger.Debug("Registration successful", "username", authResp.User.Username)
	return &authResp, nil
}

// Logout invalidates the server-side session. Callers treat failure as
// non-fatal; the local session is cleared regardless.
func Logout(ctx context.Context) error {
	logger.Debug("Logging out")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Post("/api/auth/logout")

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}

// Me fetches the current authenticated user.
func Me(ctx context.Context) (*User, error) {
	logger.Debug("Fetching current user")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get("/api/auth/me")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		User User `json:"user"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
