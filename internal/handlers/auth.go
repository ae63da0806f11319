package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/auth"
	dom "storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, register, logout and the current user.
type AuthHandler struct {
	sessions     SessionStore
	userSvc      UserService
	cookieSecure bool
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions SessionStore, userSvc UserService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, userSvc: userSvc, cookieSecure: cookieSecure}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		writeError(c, err)
		return
	}
	if !h.startSession(c, user) {
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{OK: true, User: userToResponse(user)})
}

// Register godoc
// @Summary      Register a customer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Account"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.startSession(c, user) {
		return
	}
	c.JSON(http.StatusCreated, dto.AuthResponse{OK: true, User: userToResponse(user)})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(auth.SessionCookieName)
	if err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", h.cookieSecure, true)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.userSvc.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *AuthHandler) startSession(c *gin.Context, user dom.User) bool {
	sessionID, err := h.sessions.Create(c.Request.Context(), auth.Session{UserID: user.ID, Role: user.Role})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return false
	}
	c.SetCookie(auth.SessionCookieName, sessionID, int(h.sessions.TTL().Seconds()), "/", "", h.cookieSecure, true)
	return true
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), CreatedAt: u.CreatedAt}
}
