package transport

import "github.com/blossomapp/client/domain"

// TokenResponse is returned by register and login: a bearer token plus the
// profile it authenticates.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// SessionDataResponse is the OAuth session exchange result.
type SessionDataResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture,omitempty"`
	SessionToken string `json:"session_token"`
}

// ErrorResponse is the backend's structured error payload.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// StatusResponse wraps endpoints that answer with a plain message.
type StatusResponse struct {
	Message string `json:"message"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}

type PremiumStatusResponse struct {
	IsPremium bool   `json:"is_premium"`
	Message   string `json:"message,omitempty"`
}
