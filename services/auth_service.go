package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/kendall-kelly/inventory-dashboard/models"
)

// AuthService calls the login and register endpoints. Token issuance itself
// belongs to the inventory API.
type AuthService struct {
	client *Client
}

// NewAuthService creates an auth service on client
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a bearer token and user summary
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := s.client.DoPublic(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &MalformedResponseError{Err: errors.New("login response has no token")}
	}
	return &resp, nil
}

// Register creates an account and returns its summary
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var raw struct {
		models.User
		Wrapped *models.User `json:"user"`
	}
	if err := s.client.DoPublic(ctx, http.MethodPost, "/api/auth/register", req, &raw); err != nil {
		return nil, err
	}
	if raw.Wrapped != nil {
		return raw.Wrapped, nil
	}
	return &raw.User, nil
}
