package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ejoh/storefront-backend/internal/app/model"
	"github.com/ejoh/storefront-backend/internal/app/service"
	"github.com/ejoh/storefront-backend/internal/errors"
	"github.com/ejoh/storefront-backend/internal/events"
	"github.com/ejoh/storefront-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
	hub         *events.Hub
}

func NewAuthController(authService service.AuthService, hub *events.Hub) *AuthController {
	return &AuthController{
		authService: authService,
		hub:         hub,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
}

func sessionPayload(session model.Session) gin.H {
	return gin.H{
		"id":     session.ID,
		"email":  session.Email,
		"name":   session.Name,
		"avatar": session.Avatar,
	}
}

// Login authenticates the demo credential pair and establishes the
// session.
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Email and password are required")
		return
	}

	session, token, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Warn("Login failed", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	log.Info("User logged in", map[string]interface{}{
		"session_id": session.ID,
		"email":      session.Email,
	})
	ctrl.hub.Publish(events.EventSessionChanged, gin.H{"active": true})

	c.JSON(http.StatusOK, gin.H{
		"user":  sessionPayload(session),
		"token": token,
	})
}

// Register creates a fresh session from the submitted identity. All three
// fields must be non-empty; any current session is replaced.
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	session, token, err := ctrl.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		log.Warn("Registration failed", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	log.Info("User registered", map[string]interface{}{
		"session_id": session.ID,
		"email":      session.Email,
	})
	ctrl.hub.Publish(events.EventSessionChanged, gin.H{"active": true})

	c.JSON(http.StatusCreated, gin.H{
		"user":  sessionPayload(session),
		"token": token,
	})
}

// Logout clears the session. Logging out without one succeeds.
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.authService.Logout(c.Request.Context()); err != nil {
		log.Error("Logout failed", err, nil)
		errors.RespondWithServiceError(c, err)
		return
	}

	ctrl.hub.Publish(events.EventSessionChanged, gin.H{"active": false})

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}

// Me returns the current session. The token's session id must match the
// active session; a token from a replaced session is rejected.
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	session, ok := ctrl.authService.Current()
	if !ok {
		errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthNoActiveSession, "No active session")
		return
	}

	if tokenSessionID, ok := middleware.GetSessionID(c); ok && tokenSessionID != session.ID {
		log.Warn("Token session does not match active session", map[string]interface{}{
			"token_session_id":  tokenSessionID,
			"active_session_id": session.ID,
		})
		errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Token does not match the active session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": sessionPayload(session),
	})
}

// UpdateProfile merges the provided fields into the current session.
// Fields absent from the body keep their values.
// PUT /api/v1/auth/me
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid profile update request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	session, err := ctrl.authService.UpdateProfile(c.Request.Context(), model.ProfileUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	if err != nil {
		log.Warn("Profile update failed", map[string]interface{}{
			"error": err.Error(),
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	tokenEmail, _ := middleware.GetSessionEmail(c)
	log.Info("Profile updated", map[string]interface{}{
		"session_id":  session.ID,
		"token_email": tokenEmail,
	})
	ctrl.hub.Publish(events.EventSessionChanged, gin.H{"active": true})

	c.JSON(http.StatusOK, gin.H{
		"user": sessionPayload(session),
	})
}
