package services

import (
	"context"
	"fmt"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/kendall-kelly/inventory-dashboard/models"
)

// TokenClaims contains the custom claims the inventory API puts in its tokens
type TokenClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Validate does nothing, but we need it to satisfy validator.CustomClaims.
func (c *TokenClaims) Validate(ctx context.Context) error {
	return nil
}

// InspectedToken is what a valid credential tells us without calling the API
type InspectedToken struct {
	Subject   string
	Role      models.Role
	Email     string
	ExpiresAt time.Time
}

// TokenInspector validates HS256 tokens issued by the inventory API so an expired
// credential can be dropped at restore and a missing role can be read from claims.
type TokenInspector struct {
	validator *validator.Validator
}

// NewTokenInspector creates an inspector for tokens signed with secret
func NewTokenInspector(secret, issuer, audience string) (*TokenInspector, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}

	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(secret), nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		issuer,
		[]string{audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &TokenClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	return &TokenInspector{validator: jwtValidator}, nil
}

// ValidateToken validates token and returns the raw validated claims. Its
// signature matches jwtmiddleware.ValidateToken.
func (i *TokenInspector) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	return i.validator.ValidateToken(ctx, token)
}

// Inspect validates token and returns its claims
func (i *TokenInspector) Inspect(ctx context.Context, token string) (*InspectedToken, error) {
	claims, err := i.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return FromValidatedClaims(claims)
}

// FromValidatedClaims converts claims returned by ValidateToken
func FromValidatedClaims(claims interface{}) (*InspectedToken, error) {
	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, fmt.Errorf("claims are not in the expected format")
	}

	inspected := &InspectedToken{
		Subject: validated.RegisteredClaims.Subject,
	}
	if validated.RegisteredClaims.Expiry != 0 {
		inspected.ExpiresAt = time.Unix(validated.RegisteredClaims.Expiry, 0)
	}
	if custom, ok := validated.CustomClaims.(*TokenClaims); ok {
		inspected.Role = models.ParseRole(custom.Role)
		inspected.Email = custom.Email
	}

	return inspected, nil
}
