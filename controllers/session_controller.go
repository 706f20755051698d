package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/session"
)

func (a *App) sessionBody() gin.H {
	state := a.session.State()
	_, mounted := a.Workspace()
	return gin.H{
		"authenticated": state.Authenticated(),
		"role":          state.Role,
		"email":         state.Email,
		"mounted":       mounted,
	}
}

// Login handles POST /api/session/login - logs in upstream and mounts the workspace
func (a *App) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}

	resp, err := a.auth.Login(c.Request.Context(), req)
	if err != nil {
		a.log.Warn("Login failed", "email", req.Email, "error", err)
		respondFailure(c, err)
		return
	}

	state := session.State{Token: resp.Token, Email: req.Email}
	if resp.User != nil {
		state.Role = models.ParseRole(resp.User.Role)
		if resp.User.Email != "" {
			state.Email = resp.User.Email
		}
	}
	if state.Role == models.RoleUnresolved && a.inspector != nil {
		if inspected, err := a.inspector.Inspect(c.Request.Context(), resp.Token); err == nil {
			state = withClaims(state, inspected)
		}
	}

	if err := a.startSession(c.Request.Context(), state); err != nil {
		a.log.Error("Failed to start session", "error", err)
		respondError(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to start session")
		return
	}

	a.log.Info("Logged in", "email", state.Email, "role", state.Role)
	body := a.sessionBody()
	body["user"] = resp.User
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    body,
	})
}

// Register handles POST /api/session/register - creates an upstream account
func (a *App) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name, a valid email and password are required")
		return
	}

	user, err := a.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// LogoutHandler handles POST /api/session/logout
func (a *App) LogoutHandler(c *gin.Context) {
	if err := a.Logout(c.Request.Context()); err != nil {
		a.log.Error("Logout failed", "error", err)
		respondError(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// GetSession handles GET /api/session
func (a *App) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.sessionBody(),
	})
}
