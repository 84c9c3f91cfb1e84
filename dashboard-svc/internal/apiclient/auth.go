package apiclient

import (
	"context"
	"net/http"

	"restodash/dashboard-svc/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	OrganizationName     string `json:"organization_name"`
}

type ChangePasswordRequest struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// AuthResult is what login and register hand back.
type AuthResult struct {
	Token        string               `json:"token"`
	User         domain.User          `json:"user"`
	Organization *domain.Organization `json:"organization,omitempty"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	var out AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var out AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	return err
}

func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/password", nil, req, nil)
	return err
}
