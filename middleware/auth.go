package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/services"
	"github.com/kendall-kelly/inventory-dashboard/session"
)

const (
	sessionStateKey = "session_state"
	tokenClaimsKey  = "token_claims"
)

// RequireSession rejects requests while the session holds no credential.
// With an inspector the stored token is also validated on every request, so an
// expired credential is refused before any upstream call is made.
func RequireSession(sess *session.Session, inspector *services.TokenInspector, log *slog.Logger) gin.HandlerFunc {
	if inspector == nil {
		return func(c *gin.Context) {
			state := sess.State()
			if !state.Authenticated() {
				abortWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Please log in first")
				return
			}
			c.Set(sessionStateKey, state)
			c.Next()
		}
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		code, message := "SESSION_EXPIRED", "Session expired, please log in again"
		if errors.Is(err, jwtmiddleware.ErrJWTMissing) {
			code, message = "UNAUTHENTICATED", "Please log in first"
		} else {
			log.Warn("Stored token rejected", "error", err)
		}
		writeError(w, http.StatusUnauthorized, code, message)
	}

	// The credential lives in the session, not in the browser's request
	tokenExtractor := func(r *http.Request) (string, error) {
		return sess.Token(), nil
	}

	middleware := jwtmiddleware.New(
		inspector.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithTokenExtractor(tokenExtractor),
		jwtmiddleware.WithValidateOnOptions(false),
	)

	return func(c *gin.Context) {
		passed := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Set(sessionStateKey, sess.State())
			if inspected, err := services.FromValidatedClaims(r.Context().Value(jwtmiddleware.ContextKey{})); err == nil {
				c.Set(tokenClaimsKey, inspected)
			}
			c.Next()
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// RequireRole allows only sessions whose role is one of roles
func RequireRole(sess *session.Session, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, sess.Role()) {
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this resource")
			return
		}
		c.Next()
	}
}

// GetSessionState returns the session state captured by RequireSession
func GetSessionState(c *gin.Context) (session.State, error) {
	value, exists := c.Get(sessionStateKey)
	if !exists {
		return session.State{}, &AuthError{Code: "MISSING_SESSION", Message: "Session not found in context"}
	}

	state, ok := value.(session.State)
	if !ok {
		return session.State{}, &AuthError{Code: "INVALID_SESSION", Message: "Session is not in the expected format"}
	}

	return state, nil
}

// GetTokenClaims returns the claims of the stored token when an inspector is configured
func GetTokenClaims(c *gin.Context) (*services.InspectedToken, error) {
	value, exists := c.Get(tokenClaimsKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	claims, ok := value.(*services.InspectedToken)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return claims, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
