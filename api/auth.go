package api

import (
	"context"
	"net/http"

	"github.com/Juan-JM/aulasdk/session"
)

// Credentials is the login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the token-obtain payload: both tokens plus the
// authenticated profile in one round-trip.
type LoginResponse struct {
	Access  string        `json:"access"`
	Refresh string        `json:"refresh"`
	User    *session.User `json:"user"`
}

// ProfileInput is the editable slice of the authenticated profile.
type ProfileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

// AuthService binds the authentication endpoints. Login and RefreshAccess
// are expected to travel over a bare (non-authorized) transport; the rest
// ride the authorized client like any resource call.
type AuthService struct {
	c *Client
}

// Auth returns the authentication service.
func (c *Client) Auth() AuthService {
	return AuthService{c: c}
}

// Login exchanges credentials for a token pair and the user profile.
func (s AuthService) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := s.c.do(ctx, http.MethodPost, "/api/token/", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshAccess exchanges the refresh token for a new access token.
func (s AuthService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	var out refreshResponse
	err := s.c.do(ctx, http.MethodPost, "/api/token/refresh/", nil, refreshRequest{Refresh: refreshToken}, &out)
	if err != nil {
		return "", err
	}
	return out.Access, nil
}

// Logout asks the backend to invalidate the refresh token.
func (s AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.c.do(ctx, http.MethodPost, "/api/logout/", nil, logoutRequest{Refresh: refreshToken}, nil)
}

// Me fetches the authenticated user's profile.
func (s AuthService) Me(ctx context.Context) (*session.User, error) {
	var out session.User
	if err := s.c.do(ctx, http.MethodGet, "/api/users/me/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMe edits the authenticated user's profile and returns the stored
// representation.
func (s AuthService) UpdateMe(ctx context.Context, in ProfileInput) (*session.User, error) {
	var out session.User
	if err := s.c.do(ctx, http.MethodPut, "/api/users/me/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
