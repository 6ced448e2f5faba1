package client

import (
	"context"

	"github.com/blossomapp/client/api/transport"
	"github.com/blossomapp/client/domain"
)

// Register creates an account and returns the issued token with its profile.
func (c *Client) Register(ctx context.Context, req transport.RegisterRequest) (*transport.TokenResponse, error) {
	var out transport.TokenResponse
	if err := c.post(ctx, "/auth/register", callOpts{}, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginUser exchanges email/password credentials for a token and profile.
func (c *Client) LoginUser(ctx context.Context, email, password string) (*transport.TokenResponse, error) {
	var out transport.TokenResponse
	req := transport.LoginRequest{Email: email, Password: password}
	if err := c.post(ctx, "/auth/login", callOpts{}, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SessionData exchanges an OAuth session ID for an opaque session token.
func (c *Client) SessionData(ctx context.Context, sessionID string) (*transport.SessionDataResponse, error) {
	var out transport.SessionDataResponse
	opts := callOpts{headers: map[string]string{"X-Session-ID": sessionID}}
	if err := c.get(ctx, "/auth/session-data", opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the profile the current credential belongs to.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/auth/me", callOpts{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogoutUser tells the backend to retire the credential. Callers treat this
// as best-effort: local sign-out proceeds whether or not it succeeds.
func (c *Client) LogoutUser(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", callOpts{}, nil, nil)
}

// UpdateProfile applies the allowed profile updates and returns the result.
func (c *Client) UpdateProfile(ctx context.Context, req transport.ProfileUpdateRequest) (*domain.User, error) {
	var out domain.User
	if err := c.put(ctx, "/users/me", callOpts{}, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
